package service

import (
	"context"
	"fmt"

	"github.com/meli-backend-challenge/product-catalog/internal/domain"
	"github.com/meli-backend-challenge/product-catalog/internal/events"
	"github.com/meli-backend-challenge/product-catalog/internal/repository"
	"go.uber.org/zap"
)

// NotFoundError reports a product lookup that matched no record.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// BadRequestError reports a request the business layer refuses to process.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

// ProductService implements catalog business logic on top of a ProductStore.
// It never caches records across calls. Request validation is a precondition
// enforced at the HTTP boundary.
type ProductService struct {
	store     repository.ProductStore
	publisher events.Publisher
	logger    *zap.Logger
}

func NewProductService(store repository.ProductStore, publisher events.Publisher, logger *zap.Logger) *ProductService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ProductService{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, req domain.ProductRequest) (*domain.ProductResponse, error) {
	saved, err := s.store.Save(ctx, req.ToProduct())
	if err != nil {
		s.logger.Error("Failed to save product", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product created successfully",
		zap.Int64("product_id", saved.ID),
		zap.String("title", saved.Title))

	s.publish(ctx, events.ProductCreated, saved)

	response := saved.ToResponse()
	return &response, nil
}

func (s *ProductService) GetProductByID(ctx context.Context, id int64) (*domain.ProductResponse, error) {
	product, err := s.store.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return nil, &NotFoundError{Message: fmt.Sprintf("Product with id %d not found", id)}
		}
		return nil, err
	}

	response := product.ToResponse()
	return &response, nil
}

// UpdateProduct overwrites every mutable field with the request values.
// Partial updates are not supported.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, req domain.ProductRequest) (*domain.ProductResponse, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return nil, &NotFoundError{Message: "Cannot update: Product not found"}
		}
		return nil, err
	}

	updated := req.ToProduct()
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	saved, err := s.store.Save(ctx, updated)
	if err != nil {
		s.logger.Error("Failed to update product",
			zap.Int64("product_id", id),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product updated successfully", zap.Int64("product_id", id))

	s.publish(ctx, events.ProductUpdated, saved)

	response := saved.ToResponse()
	return &response, nil
}

// DeleteProductByID removes a record. Deleting twice yields not-found the
// second time, consistent with lookup semantics.
func (s *ProductService) DeleteProductByID(ctx context.Context, id int64) error {
	product, err := s.store.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return &NotFoundError{Message: "Cannot delete: Product not found"}
		}
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if err == repository.ErrProductNotFound {
			return &NotFoundError{Message: "Cannot delete: Product not found"}
		}
		s.logger.Error("Failed to delete product",
			zap.Int64("product_id", id),
			zap.Error(err))
		return err
	}

	s.logger.Info("Product deleted successfully", zap.Int64("product_id", id))

	s.publish(ctx, events.ProductDeleted, product)

	return nil
}

func (s *ProductService) GetAllProducts(ctx context.Context, page repository.PageRequest) (*domain.PaginatedResponse, error) {
	result, err := s.store.FindAll(ctx, page)
	if err != nil {
		return nil, err
	}

	content := make([]domain.ProductResponse, 0, len(result.Items))
	for i := range result.Items {
		content = append(content, result.Items[i].ToResponse())
	}

	totalPages := 0
	if result.TotalElements > 0 {
		totalPages = int((result.TotalElements + int64(page.Size) - 1) / int64(page.Size))
	}

	return &domain.PaginatedResponse{
		Content:       content,
		TotalElements: result.TotalElements,
		TotalPages:    totalPages,
		PageNumber:    page.Page,
		PageSize:      page.Size,
	}, nil
}

// DeleteAllProducts wipes the catalog. Used by seed and test fixtures.
func (s *ProductService) DeleteAllProducts(ctx context.Context) error {
	if err := s.store.DeleteAll(ctx); err != nil {
		s.logger.Error("Failed to delete all products", zap.Error(err))
		return err
	}
	s.logger.Info("All products deleted")
	return nil
}

// publish sends a lifecycle event best-effort. Publishing failures never fail
// the request.
func (s *ProductService) publish(ctx context.Context, eventType events.EventType, product *domain.Product) {
	if err := s.publisher.PublishProductEvent(ctx, events.NewProductEvent(eventType, product)); err != nil {
		s.logger.Error("Failed to publish product event",
			zap.String("event_type", string(eventType)),
			zap.Int64("product_id", product.ID),
			zap.Error(err))
	}
}
