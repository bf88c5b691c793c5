package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/meli-backend-challenge/product-catalog/internal/problem"
	"github.com/meli-backend-challenge/product-catalog/pkg/ratelimit"
	"go.uber.org/zap"
)

const productPathPrefix = "/products"

// RateLimit applies token-bucket limiting per client IP to the product
// resource. Other paths bypass the limiter entirely. Exhaustion
// short-circuits the pipeline with 429 before any handler runs.
func RateLimit(store *ratelimit.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.Request.URL.Path, productPathPrefix) {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if !store.TryConsume(clientIP, 1) {
			logger.Warn("Rate limit exceeded",
				zap.String("client_ip", clientIP),
				zap.String("path", c.Request.URL.Path))
			problem.RateLimited(c)
			return
		}

		c.Next()
	}
}
