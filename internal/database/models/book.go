package models

import "time"

// Book is a catalog entry. Price is in the store currency's smallest unit.
type Book struct {
	ID        uint      `gorm:"primarykey" json:"book_id"`
	Title     string    `gorm:"not null;size:255;index" json:"title"`
	Author    string    `gorm:"not null;size:255;index" json:"author"`
	Publisher string    `gorm:"not null;size:255" json:"publisher"`
	Summary   *string   `gorm:"type:text" json:"summary,omitempty"`
	Price     int64     `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Book) TableName() string {
	return "books"
}
