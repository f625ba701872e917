package service

import (
	"context"
	"time"
)

// StoreEventType names a committed store mutation
type StoreEventType string

const (
	EventSaleRecorded StoreEventType = "sale.recorded"
	EventSaleUpdated  StoreEventType = "sale.updated"
	EventSaleRefunded StoreEventType = "sale.refunded"
	EventSaleDeleted  StoreEventType = "sale.deleted"
	EventStockLow     StoreEventType = "stock.low"
)

// IsValid reports whether t is one of the published event types.
func (t StoreEventType) IsValid() bool {
	switch t {
	case EventSaleRecorded, EventSaleUpdated, EventSaleRefunded, EventSaleDeleted, EventStockLow:
		return true
	default:
		return false
	}
}

// StoreEvent represents a committed store mutation published for downstream consumers
type StoreEvent struct {
	RequestID  string            `json:"request_id,omitempty"` // For distributed tracing
	Type       StoreEventType    `json:"type"`
	EntityID   string            `json:"entity_id"`
	OccurredAt time.Time         `json:"occurred_at"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishStoreEvent publishes a store event
	PublishStoreEvent(ctx context.Context, event *StoreEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
