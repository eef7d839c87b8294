package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
	"github.com/EgehanKilicarslan/bookstore/internal/database/repository"
	"github.com/EgehanKilicarslan/bookstore/internal/testutil"
)

// ==================== REVOKED TOKEN REPOSITORY TESTS ====================

func TestRevokedTokenRepository_CreateIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewRevokedTokenRepository(db)
	ctx := context.Background()
	expiresAt := time.Now().Add(time.Hour)

	inserted, err := repo.Create(ctx, "token-a", expiresAt)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.Create(ctx, "token-a", expiresAt)
	require.NoError(t, err)
	assert.False(t, inserted, "second insert must report the existing row")

	assert.Equal(t, int64(1), testutil.CountRows(t, db, &models.RevokedToken{}))

	exists, err := repo.Exists(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, "token-b")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRevokedTokenRepository_DeleteExpired(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewRevokedTokenRepository(db)
	ctx := context.Background()
	now := time.Now()

	_, err := repo.Create(ctx, "expired", now.Add(-time.Minute))
	require.NoError(t, err)
	_, err = repo.Create(ctx, "live", now.Add(time.Hour))
	require.NoError(t, err)

	removed, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	exists, err := repo.Exists(ctx, "live")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.Exists(ctx, "expired")
	require.NoError(t, err)
	assert.False(t, exists)
}
