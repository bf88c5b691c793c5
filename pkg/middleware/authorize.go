package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/meli-backend-challenge/product-catalog/internal/problem"
)

// Policy is the access decision a rule applies.
type Policy int

const (
	Allow Policy = iota
	RequireAuth
)

// Rule matches requests by method and path prefix. An empty method matches
// every method.
type Rule struct {
	Method string
	Prefix string
	Policy Policy
}

func (r Rule) matches(method, path string) bool {
	if r.Method != "" && r.Method != method {
		return false
	}
	return strings.HasPrefix(path, r.Prefix)
}

// DefaultRules is the ordered access table: documentation and health paths
// are public, login is public, product reads are public, everything else
// requires an authenticated identity.
func DefaultRules() []Rule {
	return []Rule{
		{Prefix: "/api-docs", Policy: Allow},
		{Prefix: "/swagger-ui", Policy: Allow},
		{Prefix: "/auth", Policy: Allow},
		{Prefix: "/health", Policy: Allow},
		{Method: http.MethodGet, Prefix: productPathPrefix, Policy: Allow},
	}
}

// Authorize evaluates rules in order, first match wins. Requests matching no
// rule require authentication.
func Authorize(rules []Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		policy := RequireAuth
		for _, rule := range rules {
			if rule.matches(c.Request.Method, c.Request.URL.Path) {
				policy = rule.Policy
				break
			}
		}

		if policy == RequireAuth {
			if _, ok := CurrentUser(c); !ok {
				problem.Unauthorized(c)
				return
			}
		}

		c.Next()
	}
}
