// Package events publishes order lifecycle notifications to RabbitMQ.
package events

import (
	"context"
	"time"
)

// Routing keys
const (
	OrderCreatedKey       = "order.created"
	OrderStatusChangedKey = "order.status_changed"
)

// Publisher delivers a JSON-encodable payload under a routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

// OrderLine is one line of an OrderCreated event.
type OrderLine struct {
	BookID   uint  `json:"book_id"`
	Quantity int   `json:"quantity"`
	Price    int64 `json:"price"`
}

// OrderCreated is emitted after the order and its items are committed.
type OrderCreated struct {
	OrderID     uint        `json:"order_id"`
	UserID      uint        `json:"user_id"`
	TotalAmount int64       `json:"total_amount"`
	Items       []OrderLine `json:"items"`
	OccurredAt  time.Time   `json:"occurred_at"`
}

// OrderStatusChanged is emitted after an admin moves an order.
type OrderStatusChanged struct {
	OrderID    uint      `json:"order_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurred_at"`
}
