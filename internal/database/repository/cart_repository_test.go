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

// ==================== CART REPOSITORY TESTS ====================

func TestCartRepository_GetOrCreateConverges(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewCartRepository(db)
	ctx := context.Background()
	alice := testutil.SeedUser(t, db, "alice@example.com", models.RoleUser)

	_, err := repo.FindByUser(ctx, alice.ID)
	assert.ErrorIs(t, err, repository.ErrCartNotFound)

	first, err := repo.GetOrCreate(ctx, alice.ID)
	require.NoError(t, err)
	second, err := repo.GetOrCreate(ctx, alice.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(1), testutil.CountRows(t, db, &models.Cart{}))
}

func TestCartRepository_AddItemMergesQuantity(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewCartRepository(db)
	ctx := context.Background()
	alice := testutil.SeedUser(t, db, "alice@example.com", models.RoleUser)
	dune := testutil.SeedBook(t, db, "Dune", 12000)
	neuro := testutil.SeedBook(t, db, "Neuromancer", 15000)

	cart, err := repo.GetOrCreate(ctx, alice.ID)
	require.NoError(t, err)

	item, err := repo.AddItem(ctx, cart.ID, dune.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	merged, err := repo.AddItem(ctx, cart.ID, dune.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, item.ID, merged.ID)
	assert.Equal(t, 3, merged.Quantity)

	_, err = repo.AddItem(ctx, cart.ID, neuro.ID, 1)
	require.NoError(t, err)

	lines, err := repo.ListLines(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, repository.CartLine{CartItemID: item.ID, BookID: dune.ID, Title: "Dune", Price: 12000, Quantity: 3}, lines[0])
	assert.Equal(t, "Neuromancer", lines[1].Title)
}

func TestCartRepository_ItemsScopedToCart(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewCartRepository(db)
	ctx := context.Background()
	alice := testutil.SeedUser(t, db, "alice@example.com", models.RoleUser)
	bob := testutil.SeedUser(t, db, "bob@example.com", models.RoleUser)
	dune := testutil.SeedBook(t, db, "Dune", 12000)

	aliceCart, err := repo.GetOrCreate(ctx, alice.ID)
	require.NoError(t, err)
	bobCart, err := repo.GetOrCreate(ctx, bob.ID)
	require.NoError(t, err)
	item, err := repo.AddItem(ctx, aliceCart.ID, dune.ID, 1)
	require.NoError(t, err)

	_, err = repo.FindItem(ctx, bobCart.ID, item.ID)
	assert.ErrorIs(t, err, repository.ErrCartItemNotFound)

	found, err := repo.FindItem(ctx, aliceCart.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, dune.ID, found.BookID)

	require.NoError(t, repo.UpdateItemQuantity(ctx, item.ID, 4))
	found, err = repo.FindItem(ctx, aliceCart.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, found.Quantity)

	require.NoError(t, repo.DeleteItem(ctx, item.ID))
	assert.ErrorIs(t, repo.DeleteItem(ctx, item.ID), repository.ErrCartItemNotFound)
	assert.ErrorIs(t, repo.UpdateItemQuantity(ctx, item.ID, 2), repository.ErrCartItemNotFound)
}

func TestCartRepository_BulkDeletes(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewCartRepository(db)
	ctx := context.Background()
	alice := testutil.SeedUser(t, db, "alice@example.com", models.RoleUser)
	bob := testutil.SeedUser(t, db, "bob@example.com", models.RoleUser)
	dune := testutil.SeedBook(t, db, "Dune", 12000)
	neuro := testutil.SeedBook(t, db, "Neuromancer", 15000)

	aliceCart, err := repo.GetOrCreate(ctx, alice.ID)
	require.NoError(t, err)
	bobCart, err := repo.GetOrCreate(ctx, bob.ID)
	require.NoError(t, err)
	for _, cartID := range []uint{aliceCart.ID, bobCart.ID} {
		_, err = repo.AddItem(ctx, cartID, dune.ID, 1)
		require.NoError(t, err)
		_, err = repo.AddItem(ctx, cartID, neuro.ID, 1)
		require.NoError(t, err)
	}

	require.NoError(t, repo.DeleteItemsByBook(ctx, dune.ID))
	assert.Equal(t, int64(2), testutil.CountRows(t, db, &models.CartItem{}))

	require.NoError(t, repo.DeleteByUser(ctx, alice.ID))
	assert.Equal(t, int64(1), testutil.CountRows(t, db, &models.CartItem{}))
	assert.Equal(t, int64(1), testutil.CountRows(t, db, &models.Cart{}))
}
