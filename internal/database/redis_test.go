package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/bookstore/internal/testutil"
)

// ==================== REVOCATION CACHE TESTS ====================

func TestRedisClient_MarkAndCheckRevoked(t *testing.T) {
	mr, redisClient := testutil.NewTestRedis(t)
	ctx := context.Background()

	revoked, err := redisClient.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, redisClient.MarkRevoked(ctx, "token-a", time.Minute))

	revoked, err = redisClient.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Raw tokens never appear in key names.
	for _, key := range mr.Keys() {
		assert.NotContains(t, key, "token-a")
	}

	mr.FastForward(2 * time.Minute)
	revoked, err = redisClient.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisClient_MarkRevokedSkipsExpired(t *testing.T) {
	mr, redisClient := testutil.NewTestRedis(t)

	require.NoError(t, redisClient.MarkRevoked(context.Background(), "dead", -time.Second))
	assert.Empty(t, mr.Keys())
}

func TestRedisClient_Unavailable(t *testing.T) {
	mr, redisClient := testutil.NewTestRedis(t)
	mr.Close()

	_, err := redisClient.IsRevoked(context.Background(), "token")
	assert.Error(t, err)
	assert.Error(t, redisClient.PingContext(context.Background()))
}

// ==================== RATE WINDOW TESTS ====================

func TestRedisClient_IncrWindow(t *testing.T) {
	mr, redisClient := testutil.NewTestRedis(t)
	ctx := context.Background()
	now := time.Date(2030, 1, 1, 12, 0, 10, 0, time.UTC)

	for i := int64(1); i <= 3; i++ {
		count, err := redisClient.IncrWindow(ctx, "10.0.0.1", time.Minute, now)
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}

	// Other clients count separately.
	count, err := redisClient.IncrWindow(ctx, "10.0.0.2", time.Minute, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// The next window starts over.
	count, err = redisClient.IncrWindow(ctx, "10.0.0.1", time.Minute, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	for _, key := range mr.Keys() {
		assert.Greater(t, mr.TTL(key), time.Duration(0), key)
	}
}

func TestRedisClient_IncrWindowRejectsBadWindow(t *testing.T) {
	_, redisClient := testutil.NewTestRedis(t)

	_, err := redisClient.IncrWindow(context.Background(), "c", 0, time.Now())
	assert.Error(t, err)
}
