package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/meli-backend-challenge/product-catalog/internal/domain"
)

// MemoryStore keeps product records in process memory. It backs local mode
// and tests, and mirrors the behavior of an auto-incrementing table.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[int64]domain.Product
	nextID   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[int64]domain.Product),
		nextID:   1,
	}
}

func (s *MemoryStore) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return cloneProduct(product), nil
}

func (s *MemoryStore) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	saved := *product
	if saved.ID == 0 {
		saved.ID = s.nextID
		s.nextID++
		saved.CreatedAt = now
	}
	saved.UpdatedAt = now

	s.products[saved.ID] = *cloneProduct(saved)
	return cloneProduct(saved), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *MemoryStore) FindAll(ctx context.Context, page PageRequest) (*Page, error) {
	if err := ValidateSortField(page.SortField); err != nil {
		return nil, err
	}

	s.mu.RLock()
	items := make([]domain.Product, 0, len(s.products))
	for _, product := range s.products {
		items = append(items, *cloneProduct(product))
	}
	s.mu.RUnlock()

	sortProducts(items, page.SortField, page.Descending)

	total := int64(len(items))
	start := page.Page * page.Size
	if start >= len(items) {
		return &Page{Items: []domain.Product{}, TotalElements: total}, nil
	}
	end := start + page.Size
	if end > len(items) {
		end = len(items)
	}
	return &Page{Items: items[start:end], TotalElements: total}, nil
}

func (s *MemoryStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = make(map[int64]domain.Product)
	return nil
}

// sortProducts orders items by the requested field. Id order breaks ties so
// pagination stays stable across calls.
func sortProducts(items []domain.Product, field string, descending bool) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	sort.SliceStable(items, func(i, j int) bool {
		var less bool
		switch field {
		case "title":
			less = items[i].Title < items[j].Title
		case "price":
			less = items[i].Price < items[j].Price
		case "stock":
			less = items[i].Stock < items[j].Stock
		case "condition":
			less = items[i].Condition < items[j].Condition
		default:
			less = items[i].ID < items[j].ID
		}
		if descending {
			return !less && !equalField(items[i], items[j], field)
		}
		return less
	})
}

func equalField(a, b domain.Product, field string) bool {
	switch field {
	case "title":
		return a.Title == b.Title
	case "price":
		return a.Price == b.Price
	case "stock":
		return a.Stock == b.Stock
	case "condition":
		return a.Condition == b.Condition
	default:
		return a.ID == b.ID
	}
}

func cloneProduct(p domain.Product) *domain.Product {
	clone := p
	if p.ImageURLs != nil {
		clone.ImageURLs = append([]string(nil), p.ImageURLs...)
	}
	return &clone
}
