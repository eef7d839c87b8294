package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
	"github.com/EgehanKilicarslan/bookstore/internal/database/service"
	"github.com/EgehanKilicarslan/bookstore/internal/middleware"
	"github.com/EgehanKilicarslan/bookstore/internal/response"
)

// ReviewHandler handles review and like endpoints
type ReviewHandler struct {
	service service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger,
	}
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Content string `json:"content" binding:"required,max=5000"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Content *string `json:"content" binding:"omitempty,max=5000"`
}

type ReviewListResponse struct {
	Content    []models.Review `json:"content"`
	TotalCount int             `json:"totalCount"`
}

// Create handles POST /api/books/:book_id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}

	var req CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.service.Create(c.Request.Context(), user.ID, bookID, req.Rating, req.Content)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	response.Created(c, "Review created.", gin.H{"review_id": review.ID})
}

// ListByBook handles GET /api/books/:book_id/reviews
func (h *ReviewHandler) ListByBook(c *gin.Context) {
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}

	reviews, err := h.service.ListByBook(c.Request.Context(), bookID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	response.OK(c, "Fetched reviews.", ReviewListResponse{Content: reviews, TotalCount: len(reviews)})
}

// ListMine handles GET /api/reviews/me
func (h *ReviewHandler) ListMine(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	reviews, err := h.service.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	response.OK(c, "Fetched my reviews.", reviews)
}

// Update handles PATCH /api/reviews/:review_id
func (h *ReviewHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.service.Update(c.Request.Context(), user, reviewID, service.ReviewPatch{
		Rating:  req.Rating,
		Content: req.Content,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	response.OK(c, "Review updated.", review)
}

// Delete handles DELETE /api/reviews/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), user, reviewID); err != nil {
		middleware.Fail(c, err)
		return
	}

	response.OK(c, "Review deleted.", nil)
}

// Like handles POST /api/reviews/:review_id/like
func (h *ReviewHandler) Like(c *gin.Context) {
	h.toggleLike(c, true)
}

// Unlike handles DELETE /api/reviews/:review_id/like
func (h *ReviewHandler) Unlike(c *gin.Context) {
	h.toggleLike(c, false)
}

func (h *ReviewHandler) toggleLike(c *gin.Context, like bool) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}

	var (
		likes int64
		err   error
	)
	if like {
		likes, err = h.service.Like(c.Request.Context(), user.ID, reviewID)
	} else {
		likes, err = h.service.Unlike(c.Request.Context(), user.ID, reviewID)
	}
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	message := "Review liked."
	if !like {
		message = "Like removed."
	}
	response.OK(c, message, gin.H{"likes": likes})
}
