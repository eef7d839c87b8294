package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// RepositoryFactory hands out repositories bound to one open transaction.
type RepositoryFactory interface {
	NewUserRepository() UserRepository
	NewBookRepository() BookRepository
	NewReviewRepository() ReviewRepository
	NewCartRepository() CartRepository
	NewOrderRepository() OrderRepository
	NewWishlistRepository() WishlistRepository
}

// TransactionManager runs a unit of work: every repository obtained from the
// factory shares one transaction, committed only if fn returns nil.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(repos RepositoryFactory) error) error
}

type gormTransactionManager struct {
	db *gorm.DB
}

type gormRepositoryFactory struct {
	tx *gorm.DB
}

func (f *gormRepositoryFactory) NewUserRepository() UserRepository {
	return NewUserRepository(f.tx)
}

func (f *gormRepositoryFactory) NewBookRepository() BookRepository {
	return NewBookRepository(f.tx)
}

func (f *gormRepositoryFactory) NewReviewRepository() ReviewRepository {
	return NewReviewRepository(f.tx)
}

func (f *gormRepositoryFactory) NewCartRepository() CartRepository {
	return NewCartRepository(f.tx)
}

func (f *gormRepositoryFactory) NewOrderRepository() OrderRepository {
	return NewOrderRepository(f.tx)
}

func (f *gormRepositoryFactory) NewWishlistRepository() WishlistRepository {
	return NewWishlistRepository(f.tx)
}

// NewTransactionManager creates a new transaction manager instance
func NewTransactionManager(db *gorm.DB) TransactionManager {
	return &gormTransactionManager{db: db}
}

func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repos RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&gormRepositoryFactory{tx: tx}); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return fmt.Errorf("transaction rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
