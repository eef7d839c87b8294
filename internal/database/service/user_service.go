package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/EgehanKilicarslan/bookstore/internal/apperror"
	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
	"github.com/EgehanKilicarslan/bookstore/internal/database/repository"
)

// UserService defines the interface for account management
type UserService interface {
	Get(ctx context.Context, userID uint) (*models.User, error)
	UpdateUsername(ctx context.Context, userID uint, username string) (*models.User, error)
	// Withdraw soft-deletes the account; the row and email stay reserved.
	Withdraw(ctx context.Context, userID uint) error
	// Purge hard-deletes a user and everything they own. Users with orders
	// cannot be purged.
	Purge(ctx context.Context, userID uint) error
}

type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	logger    *slog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(txManager repository.TransactionManager, userRepo repository.UserRepository, logger *slog.Logger) UserService {
	return &userService{
		txManager: txManager,
		userRepo:  userRepo,
		logger:    logger,
	}
}

func (s *userService) Get(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrResourceNotFound.WithMessage("User not found.")
		}
		return nil, apperror.Wrap(err, "load user")
	}
	return user, nil
}

func (s *userService) UpdateUsername(ctx context.Context, userID uint, username string) (*models.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Username = username
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("❌ [UserService] Failed to update user", "user_id", userID, "error", err)
		return nil, apperror.Wrap(err, "update user")
	}

	s.logger.Info("✅ [UserService] Username updated", "user_id", userID)
	return user, nil
}

func (s *userService) Withdraw(ctx context.Context, userID uint) error {
	if err := s.userRepo.SoftDelete(ctx, userID, time.Now().UTC()); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperror.ErrAccountWithdrawn
		}
		s.logger.Error("❌ [UserService] Failed to withdraw user", "user_id", userID, "error", err)
		return apperror.Wrap(err, "withdraw user")
	}

	s.logger.Info("👋 [UserService] User withdrawn", "user_id", userID)
	return nil
}

func (s *userService) Purge(ctx context.Context, userID uint) error {
	s.logger.Info("🗑️ [UserService] Purging user", "user_id", userID)

	err := s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		users := repos.NewUserRepository()
		if _, err := users.FindByID(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return apperror.ErrResourceNotFound.WithMessage("User not found.")
			}
			return apperror.Wrap(err, "load user")
		}

		orders, err := repos.NewOrderRepository().CountByUser(ctx, userID)
		if err != nil {
			return apperror.Wrap(err, "count user orders")
		}
		if orders > 0 {
			return apperror.ErrConflict.WithMessage("User has orders and cannot be purged.")
		}

		if err := repos.NewReviewRepository().DeleteByUser(ctx, userID); err != nil {
			return apperror.Wrap(err, "delete user reviews")
		}
		if err := repos.NewCartRepository().DeleteByUser(ctx, userID); err != nil {
			return apperror.Wrap(err, "delete user cart")
		}
		if err := repos.NewWishlistRepository().DeleteByUser(ctx, userID); err != nil {
			return apperror.Wrap(err, "delete user wishlist")
		}
		if err := users.Delete(ctx, userID); err != nil {
			return apperror.Wrap(err, "delete user")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("✅ [UserService] User purged", "user_id", userID)
	return nil
}
