package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/EgehanKilicarslan/bookstore/internal/apperror"
	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
	"github.com/EgehanKilicarslan/bookstore/internal/database/repository"
)

// WishlistService defines the interface for wishlist business logic
type WishlistService interface {
	Add(ctx context.Context, userID, bookID uint) (*models.Wishlist, error)
	List(ctx context.Context, userID uint) ([]models.Wishlist, error)
	Remove(ctx context.Context, userID, wishlistID uint) error
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	bookRepo     repository.BookRepository
	logger       *slog.Logger
}

// NewWishlistService creates a new wishlist service instance
func NewWishlistService(wishlistRepo repository.WishlistRepository, bookRepo repository.BookRepository, logger *slog.Logger) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		bookRepo:     bookRepo,
		logger:       logger,
	}
}

func (s *wishlistService) Add(ctx context.Context, userID, bookID uint) (*models.Wishlist, error) {
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, apperror.ErrBookNotFound
		}
		return nil, apperror.Wrap(err, "load book")
	}

	entry := &models.Wishlist{UserID: userID, BookID: bookID}
	if err := s.wishlistRepo.Create(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrWishlistExists) {
			return nil, apperror.ErrAlreadyExists.WithMessage("Book is already in the wishlist.")
		}
		s.logger.Error("❌ [WishlistService] Failed to add entry", "user_id", userID, "book_id", bookID, "error", err)
		return nil, apperror.Wrap(err, "add wishlist entry")
	}
	return entry, nil
}

func (s *wishlistService) List(ctx context.Context, userID uint) ([]models.Wishlist, error) {
	entries, err := s.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Wrap(err, "list wishlist")
	}
	return entries, nil
}

func (s *wishlistService) Remove(ctx context.Context, userID, wishlistID uint) error {
	entry, err := s.wishlistRepo.FindByID(ctx, wishlistID)
	if err != nil {
		if errors.Is(err, repository.ErrWishlistNotFound) {
			return apperror.ErrResourceNotFound.WithMessage("Wishlist entry not found.")
		}
		return apperror.Wrap(err, "load wishlist entry")
	}
	if entry.UserID != userID {
		return apperror.ErrResourceNotFound.WithMessage("Wishlist entry not found.")
	}

	if err := s.wishlistRepo.Delete(ctx, wishlistID); err != nil {
		if errors.Is(err, repository.ErrWishlistNotFound) {
			return apperror.ErrResourceNotFound.WithMessage("Wishlist entry not found.")
		}
		return apperror.Wrap(err, "delete wishlist entry")
	}
	return nil
}
