package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meli-backend-challenge/product-catalog/internal/domain"
	"github.com/meli-backend-challenge/product-catalog/internal/repository"
	"github.com/meli-backend-challenge/product-catalog/internal/service"
)

func newProductService() *service.ProductService {
	return service.NewProductService(repository.NewMemoryStore(), nil, zap.NewNop())
}

func productRequest(title string, price float64, stock int, condition domain.Condition, imageURLs ...string) domain.ProductRequest {
	return domain.ProductRequest{
		Title:     title,
		Price:     &price,
		Stock:     &stock,
		Condition: &condition,
		ImageURLs: imageURLs,
	}
}

func defaultPage() repository.PageRequest {
	return repository.PageRequest{Page: 0, Size: 10, SortField: "id"}
}

func TestProductService_CreateProduct(t *testing.T) {
	t.Parallel()

	t.Run("assigns distinct ids", func(t *testing.T) {
		svc := newProductService()
		ctx := context.Background()

		seen := make(map[int64]bool)
		for i := 0; i < 5; i++ {
			created, err := svc.CreateProduct(ctx, productRequest("Widget", 9.99, 3, domain.ConditionNew))
			require.NoError(t, err)
			require.NotZero(t, created.ID)
			assert.False(t, seen[created.ID], "id %d assigned twice", created.ID)
			seen[created.ID] = true
		}
	})

	t.Run("returns the stored fields", func(t *testing.T) {
		svc := newProductService()

		created, err := svc.CreateProduct(context.Background(),
			productRequest("Keyboard", 59.90, 12, domain.ConditionUsed, "https://cdn.example.com/kb.jpg"))
		require.NoError(t, err)

		assert.Equal(t, "Keyboard", created.Title)
		assert.Equal(t, 59.90, created.Price)
		assert.Equal(t, 12, created.Stock)
		assert.Equal(t, domain.ConditionUsed, created.Condition)
		assert.Equal(t, []string{"https://cdn.example.com/kb.jpg"}, created.ImageURLs)
	})
}

func TestProductService_GetProductByID(t *testing.T) {
	t.Parallel()

	t.Run("unknown id yields not found with the id in the message", func(t *testing.T) {
		svc := newProductService()

		_, err := svc.GetProductByID(context.Background(), 999)
		require.Error(t, err)

		var notFound *service.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "Product with id 999 not found", notFound.Message)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	t.Parallel()

	t.Run("overwrites every mutable field", func(t *testing.T) {
		svc := newProductService()
		ctx := context.Background()

		created, err := svc.CreateProduct(ctx,
			productRequest("Old Title", 10.00, 1, domain.ConditionNew, "https://cdn.example.com/old.jpg"))
		require.NoError(t, err)

		req := productRequest("New Title", 20.50, 7, domain.ConditionUsed, "https://cdn.example.com/new.jpg")
		updated, err := svc.UpdateProduct(ctx, created.ID, req)
		require.NoError(t, err)

		fetched, err := svc.GetProductByID(ctx, created.ID)
		require.NoError(t, err)

		assert.Equal(t, updated, fetched)
		assert.Equal(t, created.ID, fetched.ID)
		assert.Equal(t, "New Title", fetched.Title)
		assert.Equal(t, 20.50, fetched.Price)
		assert.Equal(t, 7, fetched.Stock)
		assert.Equal(t, domain.ConditionUsed, fetched.Condition)
		assert.Equal(t, []string{"https://cdn.example.com/new.jpg"}, fetched.ImageURLs)
	})

	t.Run("unknown id yields not found", func(t *testing.T) {
		svc := newProductService()

		_, err := svc.UpdateProduct(context.Background(), 42,
			productRequest("Anything", 1.00, 1, domain.ConditionNew))

		var notFound *service.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "Cannot update: Product not found", notFound.Message)
	})
}

func TestProductService_DeleteProductByID(t *testing.T) {
	t.Parallel()

	t.Run("delete then get yields not found", func(t *testing.T) {
		svc := newProductService()
		ctx := context.Background()

		created, err := svc.CreateProduct(ctx, productRequest("Gone Soon", 5.00, 1, domain.ConditionNew))
		require.NoError(t, err)

		require.NoError(t, svc.DeleteProductByID(ctx, created.ID))

		_, err = svc.GetProductByID(ctx, created.ID)
		var notFound *service.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("second delete yields not found", func(t *testing.T) {
		svc := newProductService()
		ctx := context.Background()

		created, err := svc.CreateProduct(ctx, productRequest("Once Only", 5.00, 1, domain.ConditionNew))
		require.NoError(t, err)

		require.NoError(t, svc.DeleteProductByID(ctx, created.ID))

		err = svc.DeleteProductByID(ctx, created.ID)
		var notFound *service.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "Cannot delete: Product not found", notFound.Message)
	})

	t.Run("deleting an id that never existed yields not found", func(t *testing.T) {
		svc := newProductService()

		err := svc.DeleteProductByID(context.Background(), 12345)
		var notFound *service.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestProductService_GetAllProducts(t *testing.T) {
	t.Parallel()

	t.Run("empty store returns the empty page shape", func(t *testing.T) {
		svc := newProductService()

		result, err := svc.GetAllProducts(context.Background(), defaultPage())
		require.NoError(t, err)

		assert.Equal(t, []domain.ProductResponse{}, result.Content)
		assert.Equal(t, int64(0), result.TotalElements)
		assert.Equal(t, 0, result.TotalPages)
		assert.Equal(t, 0, result.PageNumber)
		assert.Equal(t, 10, result.PageSize)
	})

	t.Run("computes total pages from total elements", func(t *testing.T) {
		svc := newProductService()
		ctx := context.Background()

		for i := 0; i < 25; i++ {
			_, err := svc.CreateProduct(ctx, productRequest("Item", 1.00, 1, domain.ConditionNew))
			require.NoError(t, err)
		}

		result, err := svc.GetAllProducts(ctx, defaultPage())
		require.NoError(t, err)

		assert.Len(t, result.Content, 10)
		assert.Equal(t, int64(25), result.TotalElements)
		assert.Equal(t, 3, result.TotalPages)
	})

	t.Run("unknown sort field yields a sorting error", func(t *testing.T) {
		svc := newProductService()

		page := defaultPage()
		page.SortField = "nonexistent"

		_, err := svc.GetAllProducts(context.Background(), page)
		require.Error(t, err)

		var sortErr *repository.SortFieldError
		require.ErrorAs(t, err, &sortErr)
		assert.Equal(t, "Sorting field 'nonexistent' does not exist", sortErr.Error())
	})
}

func TestProductService_DeleteAllProducts(t *testing.T) {
	t.Parallel()

	svc := newProductService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.CreateProduct(ctx, productRequest("Item", 1.00, 1, domain.ConditionNew))
		require.NoError(t, err)
	}

	require.NoError(t, svc.DeleteAllProducts(ctx))

	result, err := svc.GetAllProducts(ctx, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.TotalElements)
}
