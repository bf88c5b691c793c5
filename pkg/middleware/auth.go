package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/meli-backend-challenge/product-catalog/internal/service"
	"go.uber.org/zap"
)

const (
	bearerPrefix = "Bearer "
	identityKey  = "authenticated_user"
)

// Authenticate extracts a bearer token from the Authorization header and, on
// successful verification, attaches the username to the request context. It
// never rejects by itself: a missing, malformed, or invalid token leaves the
// request anonymous and the authorization policy decides downstream.
func Authenticate(jwtService *service.JWTService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			c.Next()
			return
		}

		token := strings.TrimPrefix(authHeader, bearerPrefix)
		username, err := jwtService.ExtractUsername(token)
		if err != nil {
			logger.Error("Security context assignment failed", zap.Error(err))
			c.Next()
			return
		}

		c.Set(identityKey, username)
		c.Next()
	}
}

// CurrentUser returns the authenticated username attached by Authenticate.
func CurrentUser(c *gin.Context) (string, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return "", false
	}
	username, ok := value.(string)
	return username, ok
}
