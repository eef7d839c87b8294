package models

import (
	"database/sql/driver"
	"errors"
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// orderTransitions lists every legal move; anything absent is rejected.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:    {OrderStatusShipped},
}

// ParseOrderStatus validates a caller-supplied status string.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch st := OrderStatus(s); st {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCancelled:
		return st, true
	}
	return "", false
}

// CanTransition reports whether an order may move from s to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// Scan implements the sql.Scanner interface for OrderStatus
func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*s = OrderStatus(v)
	case string:
		*s = OrderStatus(v)
	default:
		return errors.New("invalid order status type")
	}
	return nil
}

// Value implements the driver.Valuer interface for OrderStatus
func (s OrderStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Order is the aggregate header. TotalAmount is fixed at creation time.
type Order struct {
	ID          uint        `gorm:"primarykey" json:"order_id"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	TotalAmount int64       `gorm:"not null" json:"total_amount"`
	Status      OrderStatus `gorm:"type:varchar(16);not null;default:PENDING;index" json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// TableName overrides the table name
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order with the unit price captured at
// creation time.
type OrderItem struct {
	ID       uint  `gorm:"primarykey" json:"order_item_id"`
	OrderID  uint  `gorm:"not null;index" json:"order_id"`
	BookID   uint  `gorm:"not null;index" json:"book_id"`
	Quantity int   `gorm:"not null" json:"quantity"`
	Price    int64 `gorm:"not null" json:"price"`

	// BookTitle is joined at read time and never stored.
	BookTitle string `gorm:"->;-:migration" json:"book_title"`
}

// TableName overrides the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal returns price × quantity for the line.
func (i OrderItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}
