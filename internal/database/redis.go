package database

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/EgehanKilicarslan/bookstore/internal/config"
)

// RedisClient wraps the redis client with the revocation cache and the
// rate-limit counters.
type RedisClient struct {
	client *redis.Client
	logger *slog.Logger
	cfg    *config.Config
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(cfg *config.Config, logger *slog.Logger) (*RedisClient, error) {
	logger.Info("🔌 [Redis] Connecting to Redis...",
		"host", cfg.RedisHost,
		"port", cfg.RedisPort,
		"db", cfg.RedisDB,
	)

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       int(cfg.RedisDB),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("✅ [Redis] Redis connection established")

	return &RedisClient{
		client: client,
		logger: logger,
		cfg:    cfg,
	}, nil
}

// NewRedisClientForTesting creates a Redis client with a provided redis.Client (for testing)
func NewRedisClientForTesting(client *redis.Client, cfg *config.Config, logger *slog.Logger) *RedisClient {
	return &RedisClient{
		client: client,
		logger: logger,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// PingContext checks the connection.
func (r *RedisClient) PingContext(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// revokedKey hashes the token so keys stay short and raw tokens never sit in Redis.
func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked:" + hex.EncodeToString(sum[:])
}

// MarkRevoked caches a revoked token until its own expiry. A non-positive
// ttl means the token is already dead and nothing is cached.
func (r *RedisClient) MarkRevoked(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := r.client.Set(ctx, revokedKey(token), 1, ttl).Err(); err != nil {
		r.logger.Error("❌ [Redis] Failed to cache revoked token", "error", err)
		return err
	}

	r.logger.Debug("💾 [Redis] Cached revoked token", "ttl", ttl)
	return nil
}

// IsRevoked reports a positive cache hit. A miss says nothing about the
// durable store.
func (r *RedisClient) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKey(token)).Result()
	if err != nil {
		r.logger.Warn("⚠️ [Redis] Revocation lookup failed", "error", err)
		return false, err
	}
	return n > 0, nil
}

func rateKey(client string, window time.Duration, now time.Time) string {
	bucket := now.UnixNano() / int64(window)
	return fmt.Sprintf("ratelimit:%s:%d", client, bucket)
}

// IncrWindow counts one hit for client in the fixed window containing now
// and returns the running total for that window.
func (r *RedisClient) IncrWindow(ctx context.Context, client string, window time.Duration, now time.Time) (int64, error) {
	if window <= 0 {
		return 0, errors.New("window must be positive")
	}

	key := rateKey(client, window, now)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			r.logger.Warn("⚠️ [Redis] Failed to set rate window expiry", "key", key, "error", err)
		}
	}

	return count, nil
}

// GetClient returns the underlying Redis client (for advanced use cases)
func (r *RedisClient) GetClient() *redis.Client {
	return r.client
}
