package domain

import "strings"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

func (r LoginRequest) Validate() error {
	var fields []string

	if strings.TrimSpace(r.Username) == "" {
		fields = append(fields, "username: Username is mandatory")
	} else if len(r.Username) > 50 {
		fields = append(fields, "username: size must be between 0 and 50")
	}

	if strings.TrimSpace(r.Password) == "" {
		fields = append(fields, "password: Password is mandatory")
	} else if len(r.Password) > 100 {
		fields = append(fields, "password: size must be between 0 and 100")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
