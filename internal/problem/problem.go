// Package problem renders RFC 7807 style error bodies and is the single
// place where internal failures are translated to HTTP responses.
package problem

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meli-backend-challenge/product-catalog/internal/domain"
	"github.com/meli-backend-challenge/product-catalog/internal/repository"
	"github.com/meli-backend-challenge/product-catalog/internal/service"
)

type Problem struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Status    int       `json:"status"`
	Detail    string    `json:"detail"`
	Instance  string    `json:"instance,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func New(status int, title, detail string) Problem {
	return Problem{
		Type:      "about:blank",
		Title:     title,
		Status:    status,
		Detail:    detail,
		Timestamp: time.Now(),
	}
}

// Abort writes the problem body and stops the handler chain.
func Abort(c *gin.Context, status int, title, detail string) {
	c.AbortWithStatusJSON(status, New(status, title, detail))
}

// FromError maps a raised condition to its HTTP status and problem body.
func FromError(c *gin.Context, err error) {
	var notFound *service.NotFoundError
	var badRequest *service.BadRequestError
	var validation *domain.ValidationError
	var sortField *repository.SortFieldError

	switch {
	case errors.As(err, &notFound):
		Abort(c, http.StatusNotFound, "Resource Not Found", notFound.Message)
	case errors.Is(err, service.ErrInvalidToken):
		Abort(c, http.StatusUnauthorized, "Security Error", service.ErrInvalidToken.Error())
	case errors.As(err, &badRequest):
		Abort(c, http.StatusBadRequest, "Bad Request", badRequest.Message)
	case errors.As(err, &validation):
		Abort(c, http.StatusBadRequest, "Validation Error", validation.Error())
	case errors.Is(err, domain.ErrInvalidCondition):
		Abort(c, http.StatusBadRequest, "Invalid JSON", domain.ErrInvalidCondition.Error())
	case errors.As(err, &sortField):
		Abort(c, http.StatusBadRequest, "Sorting Error", sortField.Error())
	default:
		Abort(c, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
	}
}

// TypeMismatch reports a path or query parameter that failed numeric parsing.
func TypeMismatch(c *gin.Context, param string) {
	Abort(c, http.StatusBadRequest, "Type Mismatch",
		fmt.Sprintf("Invalid parameter: '%s' must be a numeric", param))
}

// MalformedJSON reports an unreadable request body.
func MalformedJSON(c *gin.Context) {
	Abort(c, http.StatusBadRequest, "Invalid JSON", "Malformed JSON request or invalid field values")
}

// Unauthorized reports a request that reached a protected route without an
// authenticated identity.
func Unauthorized(c *gin.Context) {
	Abort(c, http.StatusUnauthorized, "Unauthorized Access", "Token is missing or invalid")
}

// RateLimited reports an exhausted token bucket on the product resource.
func RateLimited(c *gin.Context) {
	p := New(http.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded. Try again in a minute.")
	p.Instance = "/products"
	c.AbortWithStatusJSON(http.StatusTooManyRequests, p)
}
