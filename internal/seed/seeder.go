// Package seed loads the initial catalog fixtures for development and
// staging environments.
package seed

import (
	"context"

	"github.com/meli-backend-challenge/product-catalog/internal/domain"
	"github.com/meli-backend-challenge/product-catalog/internal/repository"
	"github.com/meli-backend-challenge/product-catalog/internal/service"
	"go.uber.org/zap"
)

func fixtures() []domain.ProductRequest {
	return []domain.ProductRequest{
		request("iPhone 15 Pro Max 256GB", 1199.99, 15, domain.ConditionNew,
			"https://example.com/iphone15-1.jpg", "https://example.com/iphone15-2.jpg"),
		request("MacBook Pro M3 14\"", 1599.00, 8, domain.ConditionNew,
			"https://example.com/macbook-1.jpg"),
		request("PlayStation 5 Console (Used - Like New)", 450.00, 2, domain.ConditionUsed,
			"https://example.com/ps5-used.jpg"),
		request("Logitech MX Master 3S", 99.00, 50, domain.ConditionNew,
			"https://example.com/mouse-1.jpg"),
	}
}

// Run creates the fixture products when the store is empty. Existing data is
// left untouched.
func Run(ctx context.Context, productService *service.ProductService, logger *zap.Logger) error {
	existing, err := productService.GetAllProducts(ctx, repository.PageRequest{Page: 0, Size: 1, SortField: "id"})
	if err != nil {
		return err
	}
	if existing.TotalElements > 0 {
		logger.Info("Store already contains data, skipping seeding")
		return nil
	}

	logger.Info("Starting initial product seeding")

	products := fixtures()
	for _, req := range products {
		if _, err := productService.CreateProduct(ctx, req); err != nil {
			return err
		}
	}

	logger.Info("Seeding completed successfully", zap.Int("products_created", len(products)))
	return nil
}

func request(title string, price float64, stock int, condition domain.Condition, imageURLs ...string) domain.ProductRequest {
	return domain.ProductRequest{
		Title:     title,
		Price:     &price,
		Stock:     &stock,
		Condition: &condition,
		ImageURLs: imageURLs,
	}
}
