package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/meli-backend-challenge/product-catalog/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// SortFieldError reports a sort parameter referencing a field the store
// cannot order by.
type SortFieldError struct {
	Field string
}

func (e *SortFieldError) Error() string {
	return fmt.Sprintf("Sorting field '%s' does not exist", e.Field)
}

// sortableFields are the product attributes a paged scan can order by.
var sortableFields = map[string]struct{}{
	"id":        {},
	"title":     {},
	"price":     {},
	"stock":     {},
	"condition": {},
}

// PageRequest describes a paged, sorted scan. Sort uses the "field" or
// "field,desc" form.
type PageRequest struct {
	Page       int
	Size       int
	SortField  string
	Descending bool
}

// ParseSort splits a sort expression into field and direction. An empty
// expression falls back to ascending id order.
func ParseSort(sort string) (field string, descending bool) {
	field = "id"
	if sort == "" {
		return field, false
	}

	parts := strings.SplitN(sort, ",", 2)
	field = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		descending = strings.EqualFold(strings.TrimSpace(parts[1]), "desc")
	}
	return field, descending
}

// ValidateSortField checks the field against the sortable attribute set.
func ValidateSortField(field string) error {
	if _, ok := sortableFields[field]; !ok {
		return &SortFieldError{Field: field}
	}
	return nil
}

// Page is one slice of a scan plus the total record count.
type Page struct {
	Items         []domain.Product
	TotalElements int64
}

// ProductStore is the persistence contract for product records. Save assigns
// a new surrogate id when the product's id is zero and overwrites the stored
// record otherwise.
type ProductStore interface {
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	FindAll(ctx context.Context, page PageRequest) (*Page, error)
	DeleteAll(ctx context.Context) error
}
