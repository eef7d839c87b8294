package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
)

// RevokedTokenRepository is the durable token blocklist.
type RevokedTokenRepository interface {
	// Create is a no-op when the token is already present; inserted reports
	// whether this call added the row.
	Create(ctx context.Context, token string, expiresAt time.Time) (inserted bool, err error)
	Exists(ctx context.Context, token string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type revokedTokenRepository struct {
	db *gorm.DB
}

// NewRevokedTokenRepository creates a new revoked token repository instance
func NewRevokedTokenRepository(db *gorm.DB) RevokedTokenRepository {
	return &revokedTokenRepository{db: db}
}

func (r *revokedTokenRepository) Create(ctx context.Context, token string, expiresAt time.Time) (bool, error) {
	entry := &models.RevokedToken{
		Token:     token,
		ExpiresAt: expiresAt.UTC(),
		RevokedAt: time.Now().UTC(),
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token"}}, DoNothing: true}).
		Create(entry)
	return result.RowsAffected > 0, result.Error
}

func (r *revokedTokenRepository) Exists(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.RevokedToken{}).
		Where("token = ?", token).
		Count(&count).Error
	return count > 0, err
}

func (r *revokedTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", now.UTC()).
		Delete(&models.RevokedToken{})
	return result.RowsAffected, result.Error
}
