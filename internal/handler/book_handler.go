package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
	"github.com/EgehanKilicarslan/bookstore/internal/database/service"
	"github.com/EgehanKilicarslan/bookstore/internal/middleware"
	"github.com/EgehanKilicarslan/bookstore/internal/response"
)

// BookHandler handles catalog endpoints
type BookHandler struct {
	service service.BookService
	logger  *slog.Logger
}

// NewBookHandler creates a new book handler
func NewBookHandler(service service.BookService, logger *slog.Logger) *BookHandler {
	return &BookHandler{
		service: service,
		logger:  logger,
	}
}

type CreateBookRequest struct {
	Title     string  `json:"title" binding:"required,max=255"`
	Author    string  `json:"author" binding:"required,max=255"`
	Publisher string  `json:"publisher" binding:"required,max=255"`
	Summary   *string `json:"summary"`
	Price     *int64  `json:"price" binding:"required,gte=0,lte=1000000000"`
}

type UpdateBookRequest struct {
	Title     *string `json:"title" binding:"omitempty,min=1,max=255"`
	Author    *string `json:"author" binding:"omitempty,min=1,max=255"`
	Publisher *string `json:"publisher" binding:"omitempty,min=1,max=255"`
	Summary   *string `json:"summary"`
	Price     *int64  `json:"price" binding:"omitempty,gte=0,lte=1000000000"`
}

type ListBooksRequest struct {
	Page   *int   `form:"page"`
	Size   *int   `form:"size"`
	Search string `form:"search"`
	Sort   string `form:"sort"`
}

type Pagination struct {
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int   `json:"totalPages"`
}

type BookListResponse struct {
	Content    []models.Book `json:"content"`
	Pagination Pagination    `json:"pagination"`
}

// Create handles POST /api/admin/books
func (h *BookHandler) Create(c *gin.Context) {
	var req CreateBookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := h.service.Create(c.Request.Context(), service.BookInput{
		Title:     req.Title,
		Author:    req.Author,
		Publisher: req.Publisher,
		Summary:   req.Summary,
		Price:     *req.Price,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	response.Created(c, "Book created.", gin.H{"book_id": book.ID})
}

// List handles GET /api/public/books
func (h *BookHandler) List(c *gin.Context) {
	var req ListBooksRequest
	if !bindQuery(c, &req) {
		return
	}

	q := service.BookListQuery{
		Page:   1,
		Size:   service.DefaultPageSize,
		Search: req.Search,
		Sort:   req.Sort,
	}
	if req.Page != nil {
		q.Page = *req.Page
	}
	if req.Size != nil {
		q.Size = *req.Size
	}

	page, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	response.OK(c, "Fetched books.", BookListResponse{
		Content: page.Books,
		Pagination: Pagination{
			TotalCount: page.TotalCount,
			Page:       page.Page,
			Size:       page.Size,
			TotalPages: page.TotalPages,
		},
	})
}

// Get handles GET /api/public/books/:book_id
func (h *BookHandler) Get(c *gin.Context) {
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}

	book, err := h.service.Get(c.Request.Context(), bookID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	response.OK(c, "Fetched book.", book)
}

// Update handles PATCH /api/admin/books/:book_id
func (h *BookHandler) Update(c *gin.Context) {
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}

	var req UpdateBookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := h.service.Update(c.Request.Context(), bookID, service.BookPatch{
		Title:     req.Title,
		Author:    req.Author,
		Publisher: req.Publisher,
		Summary:   req.Summary,
		Price:     req.Price,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	response.OK(c, "Book updated.", book)
}

// Delete handles DELETE /api/admin/books/:book_id
func (h *BookHandler) Delete(c *gin.Context) {
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), bookID); err != nil {
		middleware.Fail(c, err)
		return
	}

	response.OK(c, "Book deleted.", nil)
}
