package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/EgehanKilicarslan/bookstore/internal/apperror"
	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
	"github.com/EgehanKilicarslan/bookstore/internal/database/repository"
)

// ReviewPatch carries optional replacements; nil leaves a field unchanged.
type ReviewPatch struct {
	Rating  *int
	Content *string
}

// ReviewService defines the interface for review and like business logic
type ReviewService interface {
	Create(ctx context.Context, userID, bookID uint, rating int, content string) (*models.Review, error)
	ListByBook(ctx context.Context, bookID uint) ([]models.Review, error)
	ListMine(ctx context.Context, userID uint) ([]models.Review, error)
	// Update is allowed for the author only.
	Update(ctx context.Context, actor *models.User, reviewID uint, patch ReviewPatch) (*models.Review, error)
	// Delete is allowed for the author and for administrators.
	Delete(ctx context.Context, actor *models.User, reviewID uint) error
	// Like and Unlike return the review's like count after the change.
	Like(ctx context.Context, userID, reviewID uint) (int64, error)
	Unlike(ctx context.Context, userID, reviewID uint) (int64, error)
}

type reviewService struct {
	txManager  repository.TransactionManager
	reviewRepo repository.ReviewRepository
	bookRepo   repository.BookRepository
	logger     *slog.Logger
}

// NewReviewService creates a new review service instance
func NewReviewService(
	txManager repository.TransactionManager,
	reviewRepo repository.ReviewRepository,
	bookRepo repository.BookRepository,
	logger *slog.Logger,
) ReviewService {
	return &reviewService{
		txManager:  txManager,
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
		logger:     logger,
	}
}

func (s *reviewService) Create(ctx context.Context, userID, bookID uint, rating int, content string) (*models.Review, error) {
	if err := validRating(rating); err != nil {
		return nil, err
	}

	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, apperror.ErrBookNotFound
		}
		return nil, apperror.Wrap(err, "load book")
	}

	review := &models.Review{
		UserID:  userID,
		BookID:  bookID,
		Rating:  rating,
		Content: content,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		s.logger.Error("❌ [ReviewService] Failed to create review", "book_id", bookID, "error", err)
		return nil, apperror.Wrap(err, "create review")
	}

	s.logger.Info("✅ [ReviewService] Review created", "review_id", review.ID, "book_id", bookID, "user_id", userID)
	return review, nil
}

func (s *reviewService) ListByBook(ctx context.Context, bookID uint) ([]models.Review, error) {
	reviews, err := s.reviewRepo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, apperror.Wrap(err, "list book reviews")
	}
	return reviews, nil
}

func (s *reviewService) ListMine(ctx context.Context, userID uint) ([]models.Review, error) {
	reviews, err := s.reviewRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Wrap(err, "list user reviews")
	}
	return reviews, nil
}

func (s *reviewService) Update(ctx context.Context, actor *models.User, reviewID uint, patch ReviewPatch) (*models.Review, error) {
	review, err := s.load(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != actor.ID {
		return nil, apperror.ErrAccessDenied.WithMessage("Only the author can edit this review.")
	}

	if patch.Rating != nil {
		if err := validRating(*patch.Rating); err != nil {
			return nil, err
		}
		review.Rating = *patch.Rating
	}
	if patch.Content != nil && *patch.Content != "" {
		review.Content = *patch.Content
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		s.logger.Error("❌ [ReviewService] Failed to update review", "review_id", reviewID, "error", err)
		return nil, apperror.Wrap(err, "update review")
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, actor *models.User, reviewID uint) error {
	review, err := s.load(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != actor.ID && !actor.IsAdmin() {
		return apperror.ErrAccessDenied.WithMessage("Only the author or an administrator can delete this review.")
	}

	err = s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		return repos.NewReviewRepository().Delete(ctx, reviewID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return apperror.ErrResourceNotFound.WithMessage("Review not found.")
		}
		s.logger.Error("❌ [ReviewService] Failed to delete review", "review_id", reviewID, "error", err)
		return apperror.Wrap(err, "delete review")
	}

	s.logger.Info("🗑️ [ReviewService] Review deleted", "review_id", reviewID, "by", actor.ID)
	return nil
}

func (s *reviewService) Like(ctx context.Context, userID, reviewID uint) (int64, error) {
	return s.toggleLike(ctx, userID, reviewID, true)
}

func (s *reviewService) Unlike(ctx context.Context, userID, reviewID uint) (int64, error) {
	return s.toggleLike(ctx, userID, reviewID, false)
}

func (s *reviewService) toggleLike(ctx context.Context, userID, reviewID uint, like bool) (int64, error) {
	var likes int64

	err := s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		reviews := repos.NewReviewRepository()

		var err error
		if like {
			err = reviews.AddLike(ctx, reviewID, userID)
		} else {
			err = reviews.RemoveLike(ctx, reviewID, userID)
		}
		if err != nil {
			return err
		}

		review, err := reviews.FindByID(ctx, reviewID)
		if err != nil {
			return err
		}
		likes = review.Likes
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrReviewNotFound):
			return 0, apperror.ErrResourceNotFound.WithMessage("Review not found.")
		case errors.Is(err, repository.ErrAlreadyLiked):
			return 0, apperror.ErrAlreadyExists.WithMessage("Review already liked.")
		case errors.Is(err, repository.ErrLikeNotFound):
			return 0, apperror.ErrResourceNotFound.WithMessage("Like not found.")
		}
		s.logger.Error("❌ [ReviewService] Failed to update like", "review_id", reviewID, "user_id", userID, "error", err)
		return 0, apperror.Wrap(err, "update review like")
	}

	return likes, nil
}

func (s *reviewService) load(ctx context.Context, reviewID uint) (*models.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, apperror.ErrResourceNotFound.WithMessage("Review not found.")
		}
		return nil, apperror.Wrap(err, "load review")
	}
	return review, nil
}

func validRating(rating int) error {
	if rating < 1 || rating > 5 {
		return apperror.ErrInvalidInput.WithDetails(map[string]string{"rating": "must be between 1 and 5"})
	}
	return nil
}
