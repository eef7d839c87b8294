package models

import "time"

// Wishlist is a single favorited book; (user_id, book_id) is unique.
type Wishlist struct {
	ID        uint      `gorm:"primarykey" json:"wishlist_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlists_user_book" json:"user_id"`
	BookID    uint      `gorm:"not null;uniqueIndex:idx_wishlists_user_book" json:"book_id"`
	CreatedAt time.Time `json:"created_at"`

	// BookTitle is joined from books at read time.
	BookTitle string `gorm:"->;-:migration" json:"book_title,omitempty"`
}

// TableName overrides the table name
func (Wishlist) TableName() string {
	return "wishlists"
}
