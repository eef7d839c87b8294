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

// ==================== USER REPOSITORY TESTS ====================

func TestUserRepository_Create(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name    string
		user    *models.User
		wantErr error
	}{
		{
			name:    "success",
			user:    &models.User{Email: "alice@example.com", Password: "digest", Username: "alice", Role: models.RoleUser},
			wantErr: nil,
		},
		{
			name:    "duplicate email",
			user:    &models.User{Email: "alice@example.com", Password: "digest", Username: "alice2", Role: models.RoleUser},
			wantErr: repository.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.user)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, tt.user.ID)
		})
	}
}

func TestUserRepository_Find(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()
	alice := testutil.SeedUser(t, db, "alice@example.com", models.RoleAdmin)

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byEmail.ID)
	assert.True(t, byEmail.IsAdmin())

	byID, err := repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_SoftDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()
	alice := testutil.SeedUser(t, db, "alice@example.com", models.RoleUser)
	testutil.SeedUser(t, db, "bob@example.com", models.RoleUser)

	require.NoError(t, repo.SoftDelete(ctx, alice.ID, time.Now().UTC()))

	// Withdrawn users stay visible to lookups.
	found, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, found.IsWithdrawn())

	// A second withdrawal is refused.
	assert.ErrorIs(t, repo.SoftDelete(ctx, alice.ID, time.Now().UTC()), repository.ErrUserNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// The email stays reserved.
	err = repo.Create(ctx, &models.User{Email: "alice@example.com", Password: "x", Username: "again", Role: models.RoleUser})
	assert.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestUserRepository_UpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()
	alice := testutil.SeedUser(t, db, "alice@example.com", models.RoleUser)

	alice.Username = "Alice L."
	require.NoError(t, repo.Update(ctx, alice))

	found, err := repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice L.", found.Username)

	require.NoError(t, repo.Delete(ctx, alice.ID))
	_, err = repo.FindByID(ctx, alice.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
