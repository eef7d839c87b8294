package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
	"github.com/EgehanKilicarslan/bookstore/internal/database/repository"
	"github.com/EgehanKilicarslan/bookstore/internal/testutil"
)

// ==================== WISHLIST REPOSITORY TESTS ====================

func TestWishlistRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewWishlistRepository(db)
	ctx := context.Background()
	alice := testutil.SeedUser(t, db, "alice@example.com", models.RoleUser)
	dune := testutil.SeedBook(t, db, "Dune", 12000)
	neuro := testutil.SeedBook(t, db, "Neuromancer", 15000)

	first := &models.Wishlist{UserID: alice.ID, BookID: dune.ID}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, &models.Wishlist{UserID: alice.ID, BookID: neuro.ID}))
	assert.ErrorIs(t, repo.Create(ctx, &models.Wishlist{UserID: alice.ID, BookID: dune.ID}), repository.ErrWishlistExists)

	entries, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Neuromancer", entries[0].BookTitle)
	assert.Equal(t, "Dune", entries[1].BookTitle)

	found, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, dune.ID, found.BookID)

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), repository.ErrWishlistNotFound)
	_, err = repo.FindByID(ctx, first.ID)
	assert.ErrorIs(t, err, repository.ErrWishlistNotFound)

	require.NoError(t, repo.DeleteByBook(ctx, neuro.ID))
	assert.Equal(t, int64(0), testutil.CountRows(t, db, &models.Wishlist{}))

	require.NoError(t, repo.Create(ctx, &models.Wishlist{UserID: alice.ID, BookID: dune.ID}))
	require.NoError(t, repo.DeleteByUser(ctx, alice.ID))
	assert.Equal(t, int64(0), testutil.CountRows(t, db, &models.Wishlist{}))
}
