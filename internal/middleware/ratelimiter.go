package middleware

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/EgehanKilicarslan/bookstore/internal/apperror"
	"github.com/EgehanKilicarslan/bookstore/internal/database"
	"github.com/EgehanKilicarslan/bookstore/internal/metrics"
)

// RateLimiter decides whether a client may make another request
type RateLimiter interface {
	// Allow counts one request for client and reports whether it is within
	// the limit, plus the limit itself for the response headers.
	Allow(ctx context.Context, client string) (allowed bool, limit int64)
}

type redisRateLimiter struct {
	counter  database.WindowCounter
	limit    int64
	window   time.Duration
	fallback RateLimiter
	now      func() time.Time
	logger   *slog.Logger
}

// NewRateLimiter creates a fixed-window limiter backed by Redis. When Redis
// errors, the request is judged by an in-process limiter instead.
func NewRateLimiter(counter database.WindowCounter, perMinute int64, logger *slog.Logger) RateLimiter {
	if perMinute <= 0 {
		return NewNoOpRateLimiter(logger)
	}

	logger.Info("✅ [RateLimiter] Redis rate limiter enabled", "per_minute", perMinute)
	return &redisRateLimiter{
		counter:  counter,
		limit:    perMinute,
		window:   time.Minute,
		fallback: NewMemoryRateLimiter(perMinute, logger),
		now:      time.Now,
		logger:   logger,
	}
}

func (r *redisRateLimiter) Allow(ctx context.Context, client string) (bool, int64) {
	count, err := r.counter.IncrWindow(ctx, client, r.window, r.now())
	if err != nil {
		r.logger.Warn("⚠️ [RateLimiter] Redis unavailable, using in-memory limiter", "error", err)
		return r.fallback.Allow(ctx, client)
	}
	return count <= r.limit, r.limit
}

type memoryRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	limit    int64
	every    rate.Limit
	idleTTL  time.Duration
	now      func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// maxTrackedClients bounds the in-memory limiter map before idle entries are pruned.
const maxTrackedClients = 10000

// NewMemoryRateLimiter creates a per-process token bucket limiter allowing
// perMinute requests per client with a burst of the same size.
func NewMemoryRateLimiter(perMinute int64, logger *slog.Logger) RateLimiter {
	if perMinute <= 0 {
		return NewNoOpRateLimiter(logger)
	}
	return &memoryRateLimiter{
		limiters: make(map[string]*clientLimiter),
		limit:    perMinute,
		every:    rate.Every(time.Minute / time.Duration(perMinute)),
		idleTTL:  3 * time.Minute,
		now:      time.Now,
	}
}

func (r *memoryRateLimiter) Allow(_ context.Context, client string) (bool, int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	entry, ok := r.limiters[client]
	if !ok {
		if len(r.limiters) >= maxTrackedClients {
			r.prune(now)
		}
		entry = &clientLimiter{limiter: rate.NewLimiter(r.every, int(r.limit))}
		r.limiters[client] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1), r.limit
}

func (r *memoryRateLimiter) prune(now time.Time) {
	for client, entry := range r.limiters {
		if now.Sub(entry.lastSeen) > r.idleTTL {
			delete(r.limiters, client)
		}
	}
}

// NoOpRateLimiter is a rate limiter that always allows requests
type NoOpRateLimiter struct{}

// NewNoOpRateLimiter creates a no-op rate limiter
func NewNoOpRateLimiter(logger *slog.Logger) RateLimiter {
	logger.Warn("⚠️ [RateLimiter] Using no-op rate limiter - rate limiting is disabled")
	return &NoOpRateLimiter{}
}

func (r *NoOpRateLimiter) Allow(context.Context, string) (bool, int64) {
	return true, 0
}

// RateLimit rejects clients over the limit with TOO_MANY_REQUESTS, keyed on
// the client IP.
func RateLimit(limiter RateLimiter, m *metrics.Metrics, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, limit := limiter.Allow(c.Request.Context(), c.ClientIP())
		if limit > 0 {
			c.Header("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
		}
		if !allowed {
			m.RateLimited()
			logger.Warn("🚦 [RateLimiter] Request rejected", "client_ip", c.ClientIP(), "path", c.Request.URL.Path)
			c.Header("Retry-After", "60")
			Fail(c, apperror.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
