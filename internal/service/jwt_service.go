package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature, malformed
// structure, or expiration. Callers never see a partial result.
var ErrInvalidToken = errors.New("Could not extract username from token")

// JWTService issues and verifies HMAC-SHA256 signed tokens carrying the
// username as subject.
type JWTService struct {
	secret     []byte
	expiration time.Duration
}

// NewJWTService builds the service from the configured signing secret and
// expiration in seconds. Secret length is validated at config load.
func NewJWTService(secret string, expirationSeconds int64) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		expiration: time.Duration(expirationSeconds) * time.Second,
	}
}

// GenerateToken signs a token with subject=username, issued now and expiring
// after the configured duration.
func (s *JWTService) GenerateToken(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ExtractUsername verifies signature and expiration and returns the subject.
func (s *JWTService) ExtractUsername(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// ExpiresInMillis reports the token lifetime in milliseconds for login
// responses.
func (s *JWTService) ExpiresInMillis() int64 {
	return s.expiration.Milliseconds()
}
