package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/bookstore/internal/apperror"
	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
	"github.com/EgehanKilicarslan/bookstore/internal/middleware"
)

// bindJSON binds the body, failing the request with VALIDATION_FAILED.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.Fail(c, apperror.FromBinding(err))
		return false
	}
	return true
}

// bindQuery binds the query string, failing the request with VALIDATION_FAILED.
func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		middleware.Fail(c, apperror.FromBinding(err))
		return false
	}
	return true
}

// pathID parses a positive numeric path parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		middleware.Fail(c, apperror.ErrInvalidInput.WithDetails(map[string]string{name: "must be a positive integer"}))
		return 0, false
	}
	return uint(id), true
}

// currentUser returns the authenticated user; routes using it sit behind RequireAuth.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.Fail(c, apperror.ErrUnauthenticated)
		return nil, false
	}
	return user, true
}
