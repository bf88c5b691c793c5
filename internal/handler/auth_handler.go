package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meli-backend-challenge/product-catalog/internal/domain"
	"github.com/meli-backend-challenge/product-catalog/internal/problem"
	"github.com/meli-backend-challenge/product-catalog/internal/service"
	"go.uber.org/zap"
)

// AuthHandler issues access tokens against the single configured admin
// identity.
type AuthHandler struct {
	jwtService    *service.JWTService
	adminUsername string
	adminPassword string
	logger        *zap.Logger
}

func NewAuthHandler(jwtService *service.JWTService, adminUsername, adminPassword string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		jwtService:    jwtService,
		adminUsername: adminUsername,
		adminPassword: adminPassword,
		logger:        logger,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", zap.Error(err))
		problem.MalformedJSON(c)
		return
	}

	if err := req.Validate(); err != nil {
		problem.FromError(c, err)
		return
	}

	h.logger.Info("Authentication attempt", zap.String("username", req.Username))

	if req.Username != h.adminUsername || req.Password != h.adminPassword {
		h.logger.Error("Login failed: invalid credentials", zap.String("username", req.Username))
		problem.FromError(c, &service.BadRequestError{Message: "Invalid username or password"})
		return
	}

	token, err := h.jwtService.GenerateToken(req.Username)
	if err != nil {
		problem.FromError(c, err)
		return
	}

	h.logger.Info("Login successful", zap.String("username", req.Username))

	c.JSON(http.StatusOK, domain.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   h.jwtService.ExpiresInMillis(),
	})
}
