package domain

import (
	"errors"
	"math"
	"strings"
	"time"
)

// Condition is the physical state of a product. Wire values are case-sensitive.
type Condition string

const (
	ConditionNew  Condition = "NEW"
	ConditionUsed Condition = "USED"
)

func (c Condition) Valid() bool {
	return c == ConditionNew || c == ConditionUsed
}

// ErrInvalidCondition is raised when a request carries a condition value
// outside the allowed enum.
var ErrInvalidCondition = errors.New("Invalid value for 'condition'. Allowed values are: [NEW, USED]")

type Product struct {
	ID        int64     `json:"id"        dynamodbav:"id"`
	Title     string    `json:"title"     dynamodbav:"title"`
	Price     float64   `json:"price"     dynamodbav:"price"`
	Stock     int       `json:"stock"     dynamodbav:"stock"`
	Condition Condition `json:"condition" dynamodbav:"condition"`
	ImageURLs []string  `json:"imageUrls" dynamodbav:"image_urls"`
	CreatedAt time.Time `json:"-"         dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"-"         dynamodbav:"updated_at"`
}

// ProductRequest is the create/update contract. Pointer fields distinguish
// missing values from zero values so validation can report each one.
type ProductRequest struct {
	Title     string     `json:"title"`
	Price     *float64   `json:"price"`
	Stock     *int       `json:"stock"`
	Condition *Condition `json:"condition"`
	ImageURLs []string   `json:"imageUrls"`
}

type ProductResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	Condition Condition `json:"condition"`
	ImageURLs []string  `json:"imageUrls"`
}

type PaginatedResponse struct {
	Content       []ProductResponse `json:"content"`
	TotalElements int64             `json:"totalElements"`
	TotalPages    int               `json:"totalPages"`
	PageNumber    int               `json:"pageNumber"`
	PageSize      int               `json:"pageSize"`
}

// ValidationError aggregates every failed field check of a request body.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "Validation failed: " + strings.Join(e.Fields, "; ")
}

// Validate checks format and range constraints. It returns ErrInvalidCondition
// for an unrecognized condition value and a *ValidationError aggregating all
// other field failures.
func (r ProductRequest) Validate() error {
	if r.Condition != nil && !r.Condition.Valid() {
		return ErrInvalidCondition
	}

	var fields []string

	if strings.TrimSpace(r.Title) == "" {
		fields = append(fields, "title: Title is mandatory and cannot be empty")
	} else if len(r.Title) > 100 {
		fields = append(fields, "title: Title must not exceed 100 characters")
	}

	switch {
	case r.Price == nil:
		fields = append(fields, "price: Price is mandatory")
	case *r.Price <= 0:
		fields = append(fields, "price: Price must be greater than zero")
	case !priceDigitsValid(*r.Price):
		fields = append(fields, "price: Price format must be up to 12 digits and 2 decimals")
	}

	switch {
	case r.Stock == nil:
		fields = append(fields, "stock: Stock is mandatory")
	case *r.Stock < 0:
		fields = append(fields, "stock: Stock cannot be negative")
	}

	if r.Condition == nil {
		fields = append(fields, "condition: Condition is mandatory (NEW or USED)")
	}

	for _, url := range r.ImageURLs {
		if strings.TrimSpace(url) == "" {
			fields = append(fields, "imageUrls: Image URL cannot be blank")
			break
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// priceDigitsValid enforces up to 12 integer digits and 2 fraction digits.
func priceDigitsValid(price float64) bool {
	if price >= 1e12 {
		return false
	}
	cents := price * 100
	return math.Abs(cents-math.Round(cents)) < 1e-6
}

// ToProduct maps a validated request onto a new product record.
func (r ProductRequest) ToProduct() *Product {
	imageURLs := r.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}
	return &Product{
		Title:     r.Title,
		Price:     *r.Price,
		Stock:     *r.Stock,
		Condition: *r.Condition,
		ImageURLs: imageURLs,
	}
}

// ToResponse maps a stored product to its API view.
func (p *Product) ToResponse() ProductResponse {
	imageURLs := p.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}
	return ProductResponse{
		ID:        p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Stock:     p.Stock,
		Condition: p.Condition,
		ImageURLs: imageURLs,
	}
}
