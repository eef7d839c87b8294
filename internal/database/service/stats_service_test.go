package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
	"github.com/EgehanKilicarslan/bookstore/internal/database/repository"
	"github.com/EgehanKilicarslan/bookstore/internal/database/service"
	"github.com/EgehanKilicarslan/bookstore/internal/testutil"
)

// ==================== STATS SERVICE TESTS ====================

func TestStatsService(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	svc := service.NewStatsService(repository.NewUserRepository(db), repository.NewOrderRepository(db), repository.NewBookRepository(db))

	alice := testutil.SeedUser(t, db, "alice@example.com", models.RoleUser)
	gone := testutil.SeedUser(t, db, "gone@example.com", models.RoleUser)
	require.NoError(t, repository.NewUserRepository(db).SoftDelete(ctx, gone.ID, time.Now().UTC()))
	dune := testutil.SeedBook(t, db, "Dune", 10000)
	testutil.SeedBook(t, db, "Neuromancer", 5000)

	orders := newOrderService(t, db, nil)
	_, err := orders.Create(ctx, alice.ID, []service.OrderLineInput{{BookID: dune.ID, Quantity: 2}})
	require.NoError(t, err)
	cancelled, err := orders.Create(ctx, alice.ID, []service.OrderLineInput{{BookID: dune.ID, Quantity: 1}})
	require.NoError(t, err)
	_, err = orders.UpdateStatus(ctx, cancelled.ID, "CANCELLED")
	require.NoError(t, err)

	users, err := svc.TotalUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), users)

	sales, err := svc.TotalSales(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), sales)

	books, err := svc.TotalBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), books)
}

func TestStatsService_PropagatesErrors(t *testing.T) {
	userRepo := new(testutil.MockUserRepository)
	svc := service.NewStatsService(userRepo, nil, nil)
	ctx := context.Background()
	dbErr := errors.New("connection refused")

	userRepo.On("Count", ctx).Return(int64(0), dbErr)

	_, err := svc.TotalUsers(ctx)
	assert.ErrorIs(t, err, dbErr)
	userRepo.AssertExpectations(t)
}
