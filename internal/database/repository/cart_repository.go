package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
)

// CartLine is a cart item joined with the book's current catalog data.
type CartLine struct {
	CartItemID uint   `json:"cart_item_id"`
	BookID     uint   `json:"book_id"`
	Title      string `json:"book_title"`
	Price      int64  `json:"price"`
	Quantity   int    `json:"quantity"`
}

// CartRepository defines the interface for cart data operations
type CartRepository interface {
	// GetOrCreate returns the user's cart, creating it if needed. Concurrent
	// callers converge on the same row.
	GetOrCreate(ctx context.Context, userID uint) (*models.Cart, error)
	FindByUser(ctx context.Context, userID uint) (*models.Cart, error)
	// AddItem inserts a line or adds quantity to the existing line for the book.
	AddItem(ctx context.Context, cartID, bookID uint, quantity int) (*models.CartItem, error)
	FindItem(ctx context.Context, cartID, itemID uint) (*models.CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error
	DeleteItem(ctx context.Context, itemID uint) error
	ListLines(ctx context.Context, cartID uint) ([]CartLine, error)
	DeleteItemsByBook(ctx context.Context, bookID uint) error
	DeleteByUser(ctx context.Context, userID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository instance
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) GetOrCreate(ctx context.Context, userID uint) (*models.Cart, error) {
	db := r.db.WithContext(ctx)

	err := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&models.Cart{UserID: userID}).Error
	if err != nil {
		return nil, err
	}

	return r.FindByUser(ctx, userID)
}

func (r *cartRepository) FindByUser(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) AddItem(ctx context.Context, cartID, bookID uint, quantity int) (*models.CartItem, error) {
	db := r.db.WithContext(ctx)

	item := &models.CartItem{CartID: cartID, BookID: bookID, Quantity: quantity}
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "book_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
		}),
	}).Create(item).Error
	if err != nil {
		return nil, err
	}

	var stored models.CartItem
	if err := db.Where("cart_id = ? AND book_id = ?", cartID, bookID).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// FindItem only matches lines in the given cart.
func (r *cartRepository) FindItem(ctx context.Context, cartID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).Where("id = ? AND cart_id = ?", itemID, cartID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	result := r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, itemID uint) error {
	result := r.db.WithContext(ctx).Delete(&models.CartItem{}, itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *cartRepository) ListLines(ctx context.Context, cartID uint) ([]CartLine, error) {
	var lines []CartLine
	err := r.db.WithContext(ctx).Table("cart_items").
		Select("cart_items.id AS cart_item_id, cart_items.book_id, books.title, books.price, cart_items.quantity").
		Joins("JOIN books ON books.id = cart_items.book_id").
		Where("cart_items.cart_id = ?", cartID).
		Order("cart_items.id").
		Scan(&lines).Error
	return lines, err
}

func (r *cartRepository) DeleteItemsByBook(ctx context.Context, bookID uint) error {
	return r.db.WithContext(ctx).Where("book_id = ?", bookID).Delete(&models.CartItem{}).Error
}

func (r *cartRepository) DeleteByUser(ctx context.Context, userID uint) error {
	db := r.db.WithContext(ctx)
	carts := db.Model(&models.Cart{}).Select("id").Where("user_id = ?", userID)
	if err := db.Where("cart_id IN (?)", carts).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return db.Where("user_id = ?", userID).Delete(&models.Cart{}).Error
}

// Repository errors
var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
)
