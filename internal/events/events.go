package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/meli-backend-challenge/product-catalog/internal/domain"
)

type EventType string

const (
	ProductCreated EventType = "product.created"
	ProductUpdated EventType = "product.updated"
	ProductDeleted EventType = "product.deleted"
)

// ProductEvent is published after every successful catalog mutation.
type ProductEvent struct {
	EventID   string           `json:"event_id"`
	Type      EventType        `json:"type"`
	ProductID int64            `json:"product_id"`
	Title     string           `json:"title"`
	Price     float64          `json:"price"`
	Stock     int              `json:"stock"`
	Condition domain.Condition `json:"condition"`
	Timestamp time.Time        `json:"timestamp"`
}

func NewProductEvent(eventType EventType, product *domain.Product) ProductEvent {
	return ProductEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		ProductID: product.ID,
		Title:     product.Title,
		Price:     product.Price,
		Stock:     product.Stock,
		Condition: product.Condition,
		Timestamp: time.Now(),
	}
}

// Publisher delivers product events to the message broker.
type Publisher interface {
	PublishProductEvent(ctx context.Context, event ProductEvent) error
}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishProductEvent(context.Context, ProductEvent) error {
	return nil
}
