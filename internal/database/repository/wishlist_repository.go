package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
)

// WishlistRepository defines the interface for favorite book operations
type WishlistRepository interface {
	Create(ctx context.Context, entry *models.Wishlist) error
	FindByID(ctx context.Context, id uint) (*models.Wishlist, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Wishlist, error)
	Delete(ctx context.Context, id uint) error
	DeleteByBook(ctx context.Context, bookID uint) error
	DeleteByUser(ctx context.Context, userID uint) error
}

type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository creates a new wishlist repository instance
func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Create(ctx context.Context, entry *models.Wishlist) error {
	err := r.db.WithContext(ctx).Create(entry).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrWishlistExists
	}
	return err
}

func (r *wishlistRepository) FindByID(ctx context.Context, id uint) (*models.Wishlist, error) {
	var entry models.Wishlist
	err := r.db.WithContext(ctx).First(&entry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWishlistNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *wishlistRepository) ListByUser(ctx context.Context, userID uint) ([]models.Wishlist, error) {
	var entries []models.Wishlist
	err := r.db.WithContext(ctx).Model(&models.Wishlist{}).
		Select("wishlists.*, books.title AS book_title").
		Joins("LEFT JOIN books ON books.id = wishlists.book_id").
		Where("wishlists.user_id = ?", userID).
		Order("wishlists.created_at DESC").
		Order("wishlists.id DESC").
		Find(&entries).Error
	return entries, err
}

func (r *wishlistRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Wishlist{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWishlistNotFound
	}
	return nil
}

func (r *wishlistRepository) DeleteByBook(ctx context.Context, bookID uint) error {
	return r.db.WithContext(ctx).Where("book_id = ?", bookID).Delete(&models.Wishlist{}).Error
}

func (r *wishlistRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Wishlist{}).Error
}

// Repository errors
var (
	ErrWishlistNotFound = errors.New("wishlist entry not found")
	ErrWishlistExists   = errors.New("book already in wishlist")
)
