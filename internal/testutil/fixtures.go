package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
)

// SeedUser inserts a user with a placeholder password digest.
func SeedUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()

	user := &models.User{
		Email:    email,
		Password: "digest",
		Username: email,
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// SeedBook inserts a book with the given title and price.
func SeedBook(t *testing.T, db *gorm.DB, title string, price int64) *models.Book {
	t.Helper()

	book := &models.Book{
		Title:     title,
		Author:    "Author of " + title,
		Publisher: "Test Press",
		Price:     price,
	}
	require.NoError(t, db.Create(book).Error)
	return book
}

// CountRows counts all rows in the model's table.
func CountRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
