package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/bookstore/internal/database/repository"
	"github.com/EgehanKilicarslan/bookstore/internal/testutil"
)

// ==================== BOOK REPOSITORY TESTS ====================

func TestBookRepository_CRUD(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewBookRepository(db)
	ctx := context.Background()
	book := testutil.SeedBook(t, db, "Dune", 12000)

	found, err := repo.FindByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", found.Title)

	found.Price = 13000
	require.NoError(t, repo.Update(ctx, found))
	found, err = repo.FindByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(13000), found.Price)

	require.NoError(t, repo.Delete(ctx, book.ID))
	_, err = repo.FindByID(ctx, book.ID)
	assert.ErrorIs(t, err, repository.ErrBookNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, book.ID), repository.ErrBookNotFound)
}

func TestBookRepository_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewBookRepository(db)
	ctx := context.Background()

	testutil.SeedBook(t, db, "Go in Action", 30000)
	testutil.SeedBook(t, db, "The Go Programming Language", 45000)
	testutil.SeedBook(t, db, "Dune", 12000)
	testutil.SeedBook(t, db, "Neuromancer", 15000)

	tests := []struct {
		name      string
		query     repository.BookQuery
		wantTotal int64
		wantTitle []string
	}{
		{
			name:      "price ascending first page",
			query:     repository.BookQuery{Page: 1, Size: 2, SortField: "price"},
			wantTotal: 4,
			wantTitle: []string{"Dune", "Neuromancer"},
		},
		{
			name:      "price ascending second page",
			query:     repository.BookQuery{Page: 2, Size: 2, SortField: "price"},
			wantTotal: 4,
			wantTitle: []string{"Go in Action", "The Go Programming Language"},
		},
		{
			name:      "case-insensitive search",
			query:     repository.BookQuery{Page: 1, Size: 10, Search: "go", SortField: "price", SortDesc: true},
			wantTotal: 2,
			wantTitle: []string{"The Go Programming Language", "Go in Action"},
		},
		{
			name:      "search by author",
			query:     repository.BookQuery{Page: 1, Size: 10, Search: "author of dune", SortField: "title"},
			wantTotal: 1,
			wantTitle: []string{"Dune"},
		},
		{
			name:      "past the end",
			query:     repository.BookQuery{Page: 5, Size: 10, SortField: "title"},
			wantTotal: 4,
			wantTitle: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, total, err := repo.List(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)

			var titles []string
			for _, b := range books {
				titles = append(titles, b.Title)
			}
			assert.Equal(t, tt.wantTitle, titles)
		})
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}
