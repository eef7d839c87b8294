package models

import "time"

// Cart belongs to exactly one user; user_id is unique.
type Cart struct {
	ID        uint      `gorm:"primarykey" json:"cart_id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Cart) TableName() string {
	return "carts"
}

// CartItem is one book line in a cart. (cart_id, book_id) is unique.
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"cart_item_id"`
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_items_cart_book" json:"cart_id"`
	BookID    uint      `gorm:"not null;uniqueIndex:idx_cart_items_cart_book" json:"book_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}
