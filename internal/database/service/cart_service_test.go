package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/bookstore/internal/apperror"
	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
	"github.com/EgehanKilicarslan/bookstore/internal/database/repository"
	"github.com/EgehanKilicarslan/bookstore/internal/database/service"
	applogger "github.com/EgehanKilicarslan/bookstore/internal/logger"
	"github.com/EgehanKilicarslan/bookstore/internal/testutil"
)

func newCartService(db *gorm.DB) service.CartService {
	return service.NewCartService(repository.NewTransactionManager(db), repository.NewCartRepository(db), applogger.Discard())
}

// ==================== CART SERVICE TESTS ====================

func TestCartService_EmptyView(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newCartService(db)
	alice := testutil.SeedUser(t, db, "alice@example.com", models.RoleUser)

	view, err := svc.View(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Zero(t, view.CartID)
	assert.NotNil(t, view.Items)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.TotalPrice)
}

func TestCartService_AddAndView(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newCartService(db)
	ctx := context.Background()
	alice := testutil.SeedUser(t, db, "alice@example.com", models.RoleUser)
	dune := testutil.SeedBook(t, db, "Dune", 10000)
	neuro := testutil.SeedBook(t, db, "Neuromancer", 5000)

	_, err := svc.AddItem(ctx, alice.ID, dune.ID, 1)
	require.NoError(t, err)
	item, err := svc.AddItem(ctx, alice.ID, dune.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	_, err = svc.AddItem(ctx, alice.ID, neuro.ID, 3)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, alice.ID, 999, 1)
	assert.ErrorIs(t, err, apperror.ErrBookNotFound)
	_, err = svc.AddItem(ctx, alice.ID, dune.ID, 0)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	view, err := svc.View(ctx, alice.ID)
	require.NoError(t, err)
	assert.NotZero(t, view.CartID)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, int64(35000), view.TotalPrice)
}

func TestCartService_UpdateAndRemove(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newCartService(db)
	ctx := context.Background()
	alice := testutil.SeedUser(t, db, "alice@example.com", models.RoleUser)
	bob := testutil.SeedUser(t, db, "bob@example.com", models.RoleUser)
	dune := testutil.SeedBook(t, db, "Dune", 10000)
	neuro := testutil.SeedBook(t, db, "Neuromancer", 5000)

	first, err := svc.AddItem(ctx, alice.ID, dune.ID, 1)
	require.NoError(t, err)
	second, err := svc.AddItem(ctx, alice.ID, neuro.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, bob.ID, dune.ID, 1)
	require.NoError(t, err)

	removed, err := svc.UpdateItem(ctx, alice.ID, first.ID, 4)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = svc.UpdateItem(ctx, alice.ID, second.ID, 0)
	require.NoError(t, err)
	assert.True(t, removed)

	view, err := svc.View(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 4, view.Items[0].Quantity)

	// Another user's line looks absent.
	_, err = svc.UpdateItem(ctx, bob.ID, first.ID, 1)
	assert.ErrorIs(t, err, apperror.ErrResourceNotFound)
	assert.ErrorIs(t, svc.RemoveItem(ctx, bob.ID, first.ID), apperror.ErrResourceNotFound)

	require.NoError(t, svc.RemoveItem(ctx, alice.ID, first.ID))
	assert.ErrorIs(t, svc.RemoveItem(ctx, alice.ID, first.ID), apperror.ErrResourceNotFound)

	carol := testutil.SeedUser(t, db, "carol@example.com", models.RoleUser)
	assert.ErrorIs(t, svc.RemoveItem(ctx, carol.ID, first.ID), apperror.ErrResourceNotFound)
}
