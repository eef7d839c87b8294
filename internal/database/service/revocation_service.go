package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/EgehanKilicarslan/bookstore/internal/apperror"
	"github.com/EgehanKilicarslan/bookstore/internal/database"
	"github.com/EgehanKilicarslan/bookstore/internal/database/repository"
	"github.com/EgehanKilicarslan/bookstore/internal/metrics"
)

// RevocationStore is the set of tokens that must never be accepted again.
type RevocationStore interface {
	// Revoke is idempotent. expiresAt is the token's own expiry. inserted is
	// false when the token was already on the blocklist, which lets exactly one
	// caller claim a single-use token.
	Revoke(ctx context.Context, token string, expiresAt time.Time) (inserted bool, err error)
	IsRevoked(ctx context.Context, token string) (bool, error)
	// PurgeExpired drops entries whose token expired before now.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type revocationStore struct {
	repo    repository.RevokedTokenRepository
	cache   database.RevocationCache
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewRevocationStore creates the blocklist. cache may be nil, in which case
// every lookup goes to the database.
func NewRevocationStore(
	repo repository.RevokedTokenRepository,
	cache database.RevocationCache,
	m *metrics.Metrics,
	logger *slog.Logger,
) RevocationStore {
	return &revocationStore{
		repo:    repo,
		cache:   cache,
		metrics: m,
		logger:  logger,
	}
}

func (s *revocationStore) Revoke(ctx context.Context, token string, expiresAt time.Time) (bool, error) {
	inserted, err := s.repo.Create(ctx, token, expiresAt)
	if err != nil {
		s.logger.Error("❌ [RevocationStore] Failed to persist revoked token", "error", err)
		return false, apperror.Wrap(err, "revoke token")
	}
	if inserted {
		s.metrics.TokenRevoked()
	}

	if s.cache != nil {
		// The database row is authoritative; a cache miss only costs a query.
		if err := s.cache.MarkRevoked(ctx, token, time.Until(expiresAt)); err != nil {
			s.logger.Warn("⚠️ [RevocationStore] Failed to cache revoked token", "error", err)
		}
	}
	return inserted, nil
}

func (s *revocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	if s.cache != nil {
		hit, err := s.cache.IsRevoked(ctx, token)
		if err == nil && hit {
			return true, nil
		}
		if err != nil {
			s.logger.Warn("⚠️ [RevocationStore] Cache unavailable, falling back to database", "error", err)
		}
	}

	revoked, err := s.repo.Exists(ctx, token)
	if err != nil {
		s.logger.Error("❌ [RevocationStore] Failed to check blocklist", "error", err)
		return false, apperror.Wrap(err, "check revoked token")
	}
	return revoked, nil
}

func (s *revocationStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	removed, err := s.repo.DeleteExpired(ctx, now)
	if err != nil {
		return 0, apperror.Wrap(err, "purge expired revoked tokens")
	}
	return removed, nil
}
