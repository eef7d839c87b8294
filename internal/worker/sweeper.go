package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/EgehanKilicarslan/bookstore/internal/metrics"
)

// ExpiredTokenPurger removes blocklist entries whose token has expired.
type ExpiredTokenPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// RevocationSweepJob prunes revoked tokens that have outlived their own expiry.
func RevocationSweepJob(purger ExpiredTokenPurger, m *metrics.Metrics, logger *slog.Logger) Job {
	return func(ctx context.Context) error {
		removed, err := purger.PurgeExpired(ctx, time.Now())
		if err != nil {
			return err
		}

		m.TokensPurged(removed)
		if removed > 0 {
			logger.Info("🧹 [Sweeper] Purged expired revoked tokens", "removed", removed)
		}
		return nil
	}
}
