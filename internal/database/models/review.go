package models

import "time"

// Review is a user's rating of a book. Likes is a denormalized counter kept
// in step with the review_likes rows.
type Review struct {
	ID        uint      `gorm:"primarykey" json:"review_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	BookID    uint      `gorm:"not null;index" json:"book_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Content   string    `gorm:"type:text" json:"content"`
	Likes     int64     `gorm:"not null;default:0" json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Username is joined from users at read time.
	Username string `gorm:"->;-:migration" json:"username,omitempty"`
}

// TableName overrides the table name
func (Review) TableName() string {
	return "reviews"
}

// ReviewLike records that a user liked a review; the pair is the key.
type ReviewLike struct {
	ReviewID  uint      `gorm:"primaryKey" json:"review_id"`
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (ReviewLike) TableName() string {
	return "review_likes"
}
