package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/EgehanKilicarslan/bookstore/internal/apperror"
	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
	"github.com/EgehanKilicarslan/bookstore/internal/database/repository"
)

// Listing bounds
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// BookInput carries the fields of a new book.
type BookInput struct {
	Title     string
	Author    string
	Publisher string
	Summary   *string
	Price     int64
}

// BookPatch carries optional replacements; nil leaves a field unchanged.
type BookPatch struct {
	Title     *string
	Author    *string
	Publisher *string
	Summary   *string
	Price     *int64
}

// BookListQuery is the raw public listing request. Callers apply
// DefaultPageSize and page 1 themselves when the client sends none.
type BookListQuery struct {
	Page   int
	Size   int
	Search string
	// Sort is "field" or "field,asc|desc".
	Sort string
}

// BookPage is one page of catalog results.
type BookPage struct {
	Books      []models.Book
	TotalCount int64
	Page       int
	Size       int
	TotalPages int
}

// BookService defines the interface for catalog business logic
type BookService interface {
	Create(ctx context.Context, in BookInput) (*models.Book, error)
	Get(ctx context.Context, bookID uint) (*models.Book, error)
	Update(ctx context.Context, bookID uint, patch BookPatch) (*models.Book, error)
	// Delete refuses books that appear on an order and removes reviews,
	// cart lines and wishlist entries for the book otherwise.
	Delete(ctx context.Context, bookID uint) error
	List(ctx context.Context, q BookListQuery) (*BookPage, error)
}

type bookService struct {
	txManager repository.TransactionManager
	bookRepo  repository.BookRepository
	logger    *slog.Logger
}

// NewBookService creates a new book service instance
func NewBookService(txManager repository.TransactionManager, bookRepo repository.BookRepository, logger *slog.Logger) BookService {
	return &bookService{
		txManager: txManager,
		bookRepo:  bookRepo,
		logger:    logger,
	}
}

func (s *bookService) Create(ctx context.Context, in BookInput) (*models.Book, error) {
	if err := validatePrice(in.Price); err != nil {
		return nil, err
	}

	book := &models.Book{
		Title:     in.Title,
		Author:    in.Author,
		Publisher: in.Publisher,
		Summary:   in.Summary,
		Price:     in.Price,
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		s.logger.Error("❌ [BookService] Failed to create book", "error", err)
		return nil, apperror.Wrap(err, "create book")
	}

	s.logger.Info("✅ [BookService] Book created", "book_id", book.ID)
	return book, nil
}

func (s *bookService) Get(ctx context.Context, bookID uint) (*models.Book, error) {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, apperror.ErrBookNotFound
		}
		return nil, apperror.Wrap(err, "load book")
	}
	return book, nil
}

func (s *bookService) Update(ctx context.Context, bookID uint, patch BookPatch) (*models.Book, error) {
	book, err := s.Get(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		book.Title = *patch.Title
	}
	if patch.Author != nil {
		book.Author = *patch.Author
	}
	if patch.Publisher != nil {
		book.Publisher = *patch.Publisher
	}
	if patch.Summary != nil {
		book.Summary = patch.Summary
	}
	if patch.Price != nil {
		if err := validatePrice(*patch.Price); err != nil {
			return nil, err
		}
		book.Price = *patch.Price
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		s.logger.Error("❌ [BookService] Failed to update book", "book_id", bookID, "error", err)
		return nil, apperror.Wrap(err, "update book")
	}

	s.logger.Info("✅ [BookService] Book updated", "book_id", bookID)
	return book, nil
}

func (s *bookService) Delete(ctx context.Context, bookID uint) error {
	err := s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		books := repos.NewBookRepository()
		if _, err := books.FindByID(ctx, bookID); err != nil {
			if errors.Is(err, repository.ErrBookNotFound) {
				return apperror.ErrBookNotFound
			}
			return apperror.Wrap(err, "load book")
		}

		ordered, err := repos.NewOrderRepository().ExistsForBook(ctx, bookID)
		if err != nil {
			return apperror.Wrap(err, "check book orders")
		}
		if ordered {
			return apperror.ErrConflict.WithMessage("Book appears on existing orders and cannot be deleted.")
		}

		if err := repos.NewReviewRepository().DeleteByBook(ctx, bookID); err != nil {
			return apperror.Wrap(err, "delete book reviews")
		}
		if err := repos.NewCartRepository().DeleteItemsByBook(ctx, bookID); err != nil {
			return apperror.Wrap(err, "delete book cart lines")
		}
		if err := repos.NewWishlistRepository().DeleteByBook(ctx, bookID); err != nil {
			return apperror.Wrap(err, "delete book wishlist entries")
		}
		if err := books.Delete(ctx, bookID); err != nil {
			if errors.Is(err, repository.ErrBookInUse) {
				return apperror.ErrConflict.WithMessage("Book appears on existing orders and cannot be deleted.")
			}
			return apperror.Wrap(err, "delete book")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("🗑️ [BookService] Book deleted", "book_id", bookID)
	return nil
}

func (s *bookService) List(ctx context.Context, q BookListQuery) (*BookPage, error) {
	details := map[string]string{}
	if q.Page < 1 {
		details["page"] = "must be at least 1"
	}
	if q.Size < 1 || q.Size > MaxPageSize {
		details["size"] = "must be between 1 and 100"
	}
	field, desc, ok := parseSort(q.Sort)
	if !ok {
		details["sort"] = "must be one of created_at, title, author, publisher, price with optional ,asc or ,desc"
	}
	if len(details) > 0 {
		return nil, apperror.ErrInvalidInput.WithDetails(details)
	}

	books, total, err := s.bookRepo.List(ctx, repository.BookQuery{
		Page:      q.Page,
		Size:      q.Size,
		Search:    q.Search,
		SortField: field,
		SortDesc:  desc,
	})
	if err != nil {
		s.logger.Error("❌ [BookService] Failed to list books", "error", err)
		return nil, apperror.Wrap(err, "list books")
	}

	totalPages := int((total + int64(q.Size) - 1) / int64(q.Size))
	return &BookPage{
		Books:      books,
		TotalCount: total,
		Page:       q.Page,
		Size:       q.Size,
		TotalPages: totalPages,
	}, nil
}

// parseSort defaults to newest first.
func parseSort(raw string) (field string, desc bool, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "created_at", true, true
	}

	parts := strings.SplitN(raw, ",", 2)
	field = strings.ToLower(strings.TrimSpace(parts[0]))
	if !repository.BookSortFields[field] {
		return "", false, false
	}
	if len(parts) == 1 {
		return field, false, true
	}

	switch strings.ToLower(strings.TrimSpace(parts[1])) {
	case "asc", "":
		return field, false, true
	case "desc":
		return field, true, true
	default:
		return "", false, false
	}
}

// MaxBookPrice bounds catalog prices so order totals stay far from overflow.
const MaxBookPrice int64 = 1_000_000_000

func validatePrice(price int64) error {
	switch {
	case price < 0:
		return apperror.ErrInvalidInput.WithDetails(map[string]string{"price": "must be greater than or equal to 0"})
	case price > MaxBookPrice:
		return apperror.ErrInvalidInput.WithDetails(map[string]string{"price": fmt.Sprintf("must be at most %d", MaxBookPrice)})
	}
	return nil
}
