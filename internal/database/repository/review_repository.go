package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
)

// ReviewRepository defines the interface for review and like operations
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id uint) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error
	ListByBook(ctx context.Context, bookID uint) ([]models.Review, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Review, error)

	// AddLike and RemoveLike keep reviews.likes in step with review_likes
	// using in-place increments. Call them inside a transaction.
	AddLike(ctx context.Context, reviewID, userID uint) error
	RemoveLike(ctx context.Context, reviewID, userID uint) error

	DeleteByBook(ctx context.Context, bookID uint) error
	DeleteByUser(ctx context.Context, userID uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository instance
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	err := r.withAuthor(ctx).Where("reviews.id = ?", id).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Model(review).
		Select("rating", "content", "updated_at").
		Updates(review).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("review_id = ?", id).Delete(&models.ReviewLike{}).Error; err != nil {
		return err
	}
	result := db.Delete(&models.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) ListByBook(ctx context.Context, bookID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.withAuthor(ctx).
		Where("reviews.book_id = ?", bookID).
		Order("reviews.created_at DESC").
		Order("reviews.id DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.withAuthor(ctx).
		Where("reviews.user_id = ?", userID).
		Order("reviews.created_at DESC").
		Order("reviews.id DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) AddLike(ctx context.Context, reviewID, userID uint) error {
	db := r.db.WithContext(ctx)

	like := &models.ReviewLike{ReviewID: reviewID, UserID: userID}
	if err := db.Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyLiked
		}
		return err
	}

	result := db.Model(&models.Review{}).
		Where("id = ?", reviewID).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) RemoveLike(ctx context.Context, reviewID, userID uint) error {
	db := r.db.WithContext(ctx)

	result := db.Where("review_id = ? AND user_id = ?", reviewID, userID).Delete(&models.ReviewLike{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLikeNotFound
	}

	return db.Model(&models.Review{}).
		Where("id = ? AND likes > 0", reviewID).
		UpdateColumn("likes", gorm.Expr("likes - ?", 1)).Error
}

func (r *reviewRepository) DeleteByBook(ctx context.Context, bookID uint) error {
	db := r.db.WithContext(ctx)
	reviewIDs := db.Model(&models.Review{}).Select("id").Where("book_id = ?", bookID)
	if err := db.Where("review_id IN (?)", reviewIDs).Delete(&models.ReviewLike{}).Error; err != nil {
		return err
	}
	return db.Where("book_id = ?", bookID).Delete(&models.Review{}).Error
}

// DeleteByUser removes the user's reviews and likes, and takes the user's
// likes back off other people's counters.
func (r *reviewRepository) DeleteByUser(ctx context.Context, userID uint) error {
	db := r.db.WithContext(ctx)

	liked := db.Model(&models.ReviewLike{}).Select("review_id").Where("user_id = ?", userID)
	if err := db.Model(&models.Review{}).
		Where("id IN (?) AND likes > 0", liked).
		UpdateColumn("likes", gorm.Expr("likes - ?", 1)).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", userID).Delete(&models.ReviewLike{}).Error; err != nil {
		return err
	}

	own := db.Model(&models.Review{}).Select("id").Where("user_id = ?", userID)
	if err := db.Where("review_id IN (?)", own).Delete(&models.ReviewLike{}).Error; err != nil {
		return err
	}
	return db.Where("user_id = ?", userID).Delete(&models.Review{}).Error
}

func (r *reviewRepository) withAuthor(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Review{}).
		Select("reviews.*, users.username AS username").
		Joins("LEFT JOIN users ON users.id = reviews.user_id")
}

// Repository errors
var (
	ErrReviewNotFound = errors.New("review not found")
	ErrAlreadyLiked   = errors.New("review already liked")
	ErrLikeNotFound   = errors.New("like not found")
)
