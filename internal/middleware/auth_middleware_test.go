package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/EgehanKilicarslan/bookstore/internal/apperror"
	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
	applogger "github.com/EgehanKilicarslan/bookstore/internal/logger"
	"github.com/EgehanKilicarslan/bookstore/internal/middleware"
	"github.com/EgehanKilicarslan/bookstore/internal/response"
	"github.com/EgehanKilicarslan/bookstore/internal/testutil"
)

// ==================== AUTH MIDDLEWARE TESTS ====================

func newAuthRouter(authService *testutil.MockAuthService) *gin.Engine {
	logger := applogger.Discard()
	auth := middleware.NewAuthMiddleware(authService, logger)

	router := gin.New()
	router.Use(middleware.ErrorHandler(false, logger))
	router.GET("/me", auth.RequireAuth(), func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		response.OK(c, "", user.Email)
	})
	router.GET("/admin", auth.RequireAuth(), auth.RequireAdmin(), func(c *gin.Context) {
		response.OK(c, "", "ok")
	})
	return router
}

func TestRequireAuth(t *testing.T) {
	alice := &models.User{ID: 1, Email: "alice@example.com", Role: models.RoleUser}

	tests := []struct {
		name       string
		header     string
		setupMock  func(m *testutil.MockAuthService)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing header",
			header:     "",
			setupMock:  func(m *testutil.MockAuthService) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `"code":"UNAUTHORIZED"`,
		},
		{
			name:       "wrong scheme",
			header:     "Basic abc",
			setupMock:  func(m *testutil.MockAuthService) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `"code":"UNAUTHORIZED"`,
		},
		{
			name:       "empty token",
			header:     "Bearer   ",
			setupMock:  func(m *testutil.MockAuthService) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `"code":"UNAUTHORIZED"`,
		},
		{
			name:   "revoked token",
			header: "Bearer revoked",
			setupMock: func(m *testutil.MockAuthService) {
				m.On("Authenticate", mock.Anything, "revoked").Return(nil, apperror.ErrLogoutToken)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `"code":"LOGOUT_TOKEN"`,
		},
		{
			name:   "valid token with lowercase scheme",
			header: "bearer good",
			setupMock: func(m *testutil.MockAuthService) {
				m.On("Authenticate", mock.Anything, "good").Return(alice, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"payload":"alice@example.com"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := new(testutil.MockAuthService)
			tt.setupMock(authService)
			router := newAuthRouter(authService)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			authService.AssertExpectations(t)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	authService := new(testutil.MockAuthService)
	authService.On("Authenticate", mock.Anything, "user-token").
		Return(&models.User{ID: 1, Email: "alice@example.com", Role: models.RoleUser}, nil)
	authService.On("Authenticate", mock.Anything, "admin-token").
		Return(&models.User{ID: 2, Email: "root@example.com", Role: models.RoleAdmin}, nil)
	router := newAuthRouter(authService)

	tests := []struct {
		token      string
		wantStatus int
	}{
		{token: "user-token", wantStatus: http.StatusForbidden},
		{token: "admin-token", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
