package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/EgehanKilicarslan/bookstore/internal/apperror"
	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
	"github.com/EgehanKilicarslan/bookstore/internal/database/service"
	"github.com/EgehanKilicarslan/bookstore/internal/handler"
	applogger "github.com/EgehanKilicarslan/bookstore/internal/logger"
	"github.com/EgehanKilicarslan/bookstore/internal/middleware"
	"github.com/EgehanKilicarslan/bookstore/internal/testutil"
)

func newAuthHandlerRouter(authService *testutil.MockAuthService) *gin.Engine {
	logger := applogger.Discard()
	h := handler.NewAuthHandler(authService, logger)

	router := gin.New()
	router.Use(middleware.ErrorHandler(false, logger))
	router.POST("/login", h.Login)
	router.POST("/logout", h.Logout)
	router.POST("/refresh", h.Refresh)
	return router
}

func post(router *gin.Engine, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ==================== LOGIN HANDLER TESTS ====================

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(m *testutil.MockAuthService)
		wantStatus int
		wantBody   []string
	}{
		{
			name:       "malformed json",
			body:       `{"email":`,
			setupMock:  func(m *testutil.MockAuthService) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   []string{`"code":"LOGIN_FAILED"`},
		},
		{
			name:       "missing password",
			body:       `{"email":"alice@example.com"}`,
			setupMock:  func(m *testutil.MockAuthService) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   []string{`"code":"LOGIN_FAILED"`},
		},
		{
			name: "service rejects",
			body: `{"email":"alice@example.com","password":"wrong"}`,
			setupMock: func(m *testutil.MockAuthService) {
				m.On("Login", mock.Anything, "alice@example.com", "wrong").Return(nil, apperror.ErrLoginFailed)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   []string{`"code":"LOGIN_FAILED"`},
		},
		{
			name: "success",
			body: `{"email":"alice@example.com","password":"secret"}`,
			setupMock: func(m *testutil.MockAuthService) {
				m.On("Login", mock.Anything, "alice@example.com", "secret").Return(&service.LoginResult{
					TokenPair: service.TokenPair{
						AccessToken:     "access",
						RefreshToken:    "refresh",
						AccessExpiresAt: time.Now().Add(time.Minute),
					},
					User: &models.User{ID: 7, Email: "alice@example.com", Role: models.RoleAdmin},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody: []string{
				`"accessToken":"access"`,
				`"refreshToken":"refresh"`,
				`"user":{"id":7,"role":"ADMIN","token_type":"Bearer"}`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := new(testutil.MockAuthService)
			tt.setupMock(authService)

			w := post(newAuthHandlerRouter(authService), "/login", tt.body, "")
			assert.Equal(t, tt.wantStatus, w.Code)
			for _, want := range tt.wantBody {
				assert.Contains(t, w.Body.String(), want)
			}
			authService.AssertExpectations(t)
		})
	}
}

// ==================== LOGOUT HANDLER TESTS ====================

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("missing bearer", func(t *testing.T) {
		authService := new(testutil.MockAuthService)
		w := post(newAuthHandlerRouter(authService), "/logout", "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		authService.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("without body", func(t *testing.T) {
		authService := new(testutil.MockAuthService)
		authService.On("Logout", mock.Anything, "access", "").Return(nil)
		w := post(newAuthHandlerRouter(authService), "/logout", "", "access")
		assert.Equal(t, http.StatusOK, w.Code)
		authService.AssertExpectations(t)
	})

	t.Run("with refresh token", func(t *testing.T) {
		authService := new(testutil.MockAuthService)
		authService.On("Logout", mock.Anything, "access", "refresh").Return(nil)
		w := post(newAuthHandlerRouter(authService), "/logout", `{"refreshToken":"refresh"}`, "access")
		assert.Equal(t, http.StatusOK, w.Code)
		authService.AssertExpectations(t)
	})

	t.Run("unverifiable token", func(t *testing.T) {
		authService := new(testutil.MockAuthService)
		authService.On("Logout", mock.Anything, "forged", "").Return(apperror.ErrInvalidToken)
		w := post(newAuthHandlerRouter(authService), "/logout", "", "forged")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"INVALID_TOKEN"`)
	})
}

func TestAuthHandler_RefreshRequiresToken(t *testing.T) {
	authService := new(testutil.MockAuthService)
	w := post(newAuthHandlerRouter(authService), "/refresh", `{}`, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"VALIDATION_FAILED"`)
}
