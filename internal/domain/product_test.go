package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meli-backend-challenge/product-catalog/internal/domain"
)

func validRequest() domain.ProductRequest {
	price := 1250.50
	stock := 50
	condition := domain.ConditionNew
	return domain.ProductRequest{
		Title:     "iPhone 15 Pro Max 256GB",
		Price:     &price,
		Stock:     &stock,
		Condition: &condition,
		ImageURLs: []string{"https://cdn.meli.com/p1.jpg"},
	}
}

func TestProductRequest_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid request passes", func(t *testing.T) {
		assert.NoError(t, validRequest().Validate())
	})

	t.Run("blank title", func(t *testing.T) {
		req := validRequest()
		req.Title = "   "

		err := req.Validate()
		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "Validation failed: title: Title is mandatory and cannot be empty", err.Error())
	})

	t.Run("title too long", func(t *testing.T) {
		req := validRequest()
		long := make([]byte, 101)
		for i := range long {
			long[i] = 'x'
		}
		req.Title = string(long)

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "title: Title must not exceed 100 characters")
	})

	t.Run("missing price", func(t *testing.T) {
		req := validRequest()
		req.Price = nil

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "price: Price is mandatory")
	})

	t.Run("non-positive price", func(t *testing.T) {
		req := validRequest()
		zero := 0.0
		req.Price = &zero

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "price: Price must be greater than zero")
	})

	t.Run("price with too many decimals", func(t *testing.T) {
		req := validRequest()
		price := 9.999
		req.Price = &price

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "price: Price format must be up to 12 digits and 2 decimals")
	})

	t.Run("price with too many integer digits", func(t *testing.T) {
		req := validRequest()
		price := 1e13
		req.Price = &price

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "price: Price format must be up to 12 digits and 2 decimals")
	})

	t.Run("negative stock", func(t *testing.T) {
		req := validRequest()
		negative := -1
		req.Stock = &negative

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stock: Stock cannot be negative")
	})

	t.Run("missing condition", func(t *testing.T) {
		req := validRequest()
		req.Condition = nil

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "condition: Condition is mandatory (NEW or USED)")
	})

	t.Run("unrecognized condition value", func(t *testing.T) {
		req := validRequest()
		bogus := domain.Condition("REFURBISHED")
		req.Condition = &bogus

		err := req.Validate()
		assert.ErrorIs(t, err, domain.ErrInvalidCondition)
	})

	t.Run("blank image url", func(t *testing.T) {
		req := validRequest()
		req.ImageURLs = []string{"https://cdn.meli.com/p1.jpg", " "}

		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "imageUrls: Image URL cannot be blank")
	})

	t.Run("empty image list is allowed", func(t *testing.T) {
		req := validRequest()
		req.ImageURLs = []string{}

		assert.NoError(t, req.Validate())
	})

	t.Run("multiple failures are aggregated with semicolons", func(t *testing.T) {
		price := -5.0
		stock := -1
		req := domain.ProductRequest{Title: "", Price: &price, Stock: &stock}

		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t,
			"Validation failed: title: Title is mandatory and cannot be empty; "+
				"price: Price must be greater than zero; "+
				"stock: Stock cannot be negative; "+
				"condition: Condition is mandatory (NEW or USED)",
			err.Error())
	})
}

func TestLoginRequest_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials pass", func(t *testing.T) {
		req := domain.LoginRequest{Username: "admin", Password: "admin123"}
		assert.NoError(t, req.Validate())
	})

	t.Run("blank fields are aggregated", func(t *testing.T) {
		req := domain.LoginRequest{}

		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t,
			"Validation failed: username: Username is mandatory; password: Password is mandatory",
			err.Error())
	})
}
