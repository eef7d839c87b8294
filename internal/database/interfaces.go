package database

import (
	"context"
	"time"
)

// RevocationCache is the fast path in front of the durable blocklist.
type RevocationCache interface {
	MarkRevoked(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// WindowCounter counts requests per client in fixed time windows.
type WindowCounter interface {
	IncrWindow(ctx context.Context, client string, window time.Duration, now time.Time) (int64, error)
}

var (
	_ RevocationCache = (*RedisClient)(nil)
	_ WindowCounter   = (*RedisClient)(nil)
)
