package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/EgehanKilicarslan/bookstore/internal/apperror"
	"github.com/EgehanKilicarslan/bookstore/internal/auth"
	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
	"github.com/EgehanKilicarslan/bookstore/internal/database/repository"
	"github.com/EgehanKilicarslan/bookstore/internal/metrics"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Signup(ctx context.Context, email, password, username string) (uint, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Logout revokes the bearer token and, when given, the refresh token.
	Logout(ctx context.Context, accessToken, refreshToken string) error
	// Refresh issues a new access token and rotates the refresh token.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	// Authenticate resolves a bearer access token to an active user.
	Authenticate(ctx context.Context, accessToken string) (*models.User, error)
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// LoginResult is a token pair plus the authenticated user.
type LoginResult struct {
	TokenPair
	User *models.User
}

type authService struct {
	userRepo    repository.UserRepository
	hasher      auth.PasswordHasher
	tokens      auth.TokenService
	revocations RevocationStore
	metrics     *metrics.Metrics
	logger      *slog.Logger

	dummyOnce   sync.Once
	dummyDigest string
}

// NewAuthService creates a new authentication service instance
func NewAuthService(
	userRepo repository.UserRepository,
	hasher auth.PasswordHasher,
	tokens auth.TokenService,
	revocations RevocationStore,
	m *metrics.Metrics,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		hasher:      hasher,
		tokens:      tokens,
		revocations: revocations,
		metrics:     m,
		logger:      logger,
	}
}

func (s *authService) Signup(ctx context.Context, email, password, username string) (uint, error) {
	s.logger.Info("📝 [AuthService] Signup attempt", "email", email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return 0, apperror.Wrap(err, "lookup user by email")
	}
	if existing != nil {
		s.logger.Warn("⚠️ [AuthService] Email already registered", "email", email)
		s.metrics.AuthEvent("signup", apperror.ErrEmailDuplication.Code)
		return 0, apperror.ErrEmailDuplication
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to hash password", "error", err)
		return 0, apperror.Wrap(err, "hash password")
	}

	user := &models.User{
		Email:    email,
		Password: digest,
		Username: username,
		Role:     models.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			s.metrics.AuthEvent("signup", apperror.ErrEmailDuplication.Code)
			return 0, apperror.ErrEmailDuplication
		}
		s.logger.Error("❌ [AuthService] Failed to create user", "error", err)
		return 0, apperror.Wrap(err, "create user")
	}

	s.metrics.AuthEvent("signup", "success")
	s.logger.Info("✅ [AuthService] User registered successfully", "user_id", user.ID)
	return user.ID, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	s.logger.Info("🔐 [AuthService] Login attempt", "email", email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Error("❌ [AuthService] Database error", "error", err)
			return nil, apperror.Wrap(err, "lookup user by email")
		}
		// Spend the same bcrypt work as a real check so response time does
		// not reveal whether the email exists.
		s.hasher.Check(password, s.dummyHash())
		return nil, s.loginFailed("unknown email", email)
	}

	if !s.hasher.Check(password, user.Password) {
		return nil, s.loginFailed("invalid password", email)
	}
	if user.IsWithdrawn() {
		return nil, s.loginFailed("withdrawn account", email)
	}

	pair, err := s.issuePair(user.Email)
	if err != nil {
		return nil, err
	}

	s.metrics.AuthEvent("login", "success")
	s.logger.Info("✅ [AuthService] User logged in successfully", "user_id", user.ID)
	return &LoginResult{TokenPair: *pair, User: user}, nil
}

func (s *authService) loginFailed(reason, email string) error {
	s.logger.Warn("⚠️ [AuthService] Login failed", "reason", reason, "email", email)
	s.metrics.AuthEvent("login", apperror.ErrLoginFailed.Code)
	return apperror.ErrLoginFailed
}

func (s *authService) dummyHash() string {
	s.dummyOnce.Do(func() {
		s.dummyDigest, _ = s.hasher.Hash("bookstore-timing-equalizer")
	})
	return s.dummyDigest
}

func (s *authService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	s.logger.Info("👋 [AuthService] Logout attempt")

	claims, err := s.tokens.Inspect(accessToken)
	if err != nil {
		s.logger.Warn("⚠️ [AuthService] Refusing to revoke unverifiable token")
		s.metrics.AuthEvent("logout", apperror.ErrInvalidToken.Code)
		return apperror.ErrInvalidToken
	}

	var refreshClaims *auth.Claims
	if refreshToken != "" {
		refreshClaims, err = s.tokens.Inspect(refreshToken)
		if err != nil || refreshClaims.Kind != auth.KindRefresh || refreshClaims.Subject != claims.Subject {
			s.logger.Warn("⚠️ [AuthService] Refresh token does not belong to this session")
			s.metrics.AuthEvent("logout", apperror.ErrInvalidToken.Code)
			return apperror.ErrInvalidToken
		}
	}

	if _, err := s.revocations.Revoke(ctx, accessToken, s.expiryOf(claims)); err != nil {
		return err
	}
	if refreshClaims != nil {
		if _, err := s.revocations.Revoke(ctx, refreshToken, s.expiryOf(refreshClaims)); err != nil {
			return err
		}
	}

	s.metrics.AuthEvent("logout", "success")
	s.logger.Info("✅ [AuthService] User logged out successfully", "subject", claims.Subject)
	return nil
}

// expiryOf falls back to the longest lifetime for tokens without exp so the
// sweep never drops them early.
func (s *authService) expiryOf(claims *auth.Claims) time.Time {
	if claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	return time.Now().Add(s.tokens.RefreshTTL())
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	s.logger.Info("🔄 [AuthService] Token refresh attempt")

	revoked, err := s.revocations.IsRevoked(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if revoked {
		s.metrics.AuthEvent("refresh", apperror.ErrLogoutToken.Code)
		return nil, apperror.ErrLogoutToken
	}

	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			s.metrics.AuthEvent("refresh", apperror.ErrExpiredToken.Code)
			return nil, apperror.ErrExpiredToken
		}
		s.metrics.AuthEvent("refresh", apperror.ErrInvalidToken.Code)
		return nil, apperror.ErrInvalidToken
	}
	if claims.Subject == "" || claims.Kind != auth.KindRefresh {
		s.logger.Warn("⚠️ [AuthService] Token is not a refresh token", "kind", claims.Kind)
		s.metrics.AuthEvent("refresh", apperror.ErrInvalidToken.Code)
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.AuthEvent("refresh", apperror.ErrInvalidToken.Code)
			return nil, apperror.ErrInvalidToken
		}
		return nil, apperror.Wrap(err, "lookup refresh subject")
	}
	if user.IsWithdrawn() {
		s.metrics.AuthEvent("refresh", apperror.ErrAccountWithdrawn.Code)
		return nil, apperror.ErrAccountWithdrawn
	}

	// Rotation: spend the presented refresh token before issuing a new pair.
	// The blocklist insert is the claim, so concurrent redemptions of the same
	// token cannot both win.
	claimed, err := s.revocations.Revoke(ctx, refreshToken, s.expiryOf(claims))
	if err != nil {
		return nil, err
	}
	if !claimed {
		s.logger.Warn("⚠️ [AuthService] Refresh token already redeemed", "user_id", user.ID)
		s.metrics.AuthEvent("refresh", apperror.ErrLogoutToken.Code)
		return nil, apperror.ErrLogoutToken
	}

	pair, err := s.issuePair(claims.Subject)
	if err != nil {
		return nil, err
	}

	s.metrics.AuthEvent("refresh", "success")
	s.logger.Info("✅ [AuthService] Token refreshed successfully", "user_id", user.ID)
	return pair, nil
}

func (s *authService) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	if accessToken == "" {
		return nil, apperror.ErrUnauthenticated
	}

	// Blocklist first: a revoked token is rejected before any signature work.
	revoked, err := s.revocations.IsRevoked(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperror.ErrLogoutToken
	}

	claims, err := s.tokens.Verify(accessToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, apperror.ErrExpiredToken
		}
		return nil, apperror.ErrUnauthenticated
	}
	if claims.Kind != auth.KindAccess || claims.Subject == "" {
		return nil, apperror.ErrUnauthenticated
	}

	user, err := s.userRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUnauthenticated
		}
		return nil, apperror.Wrap(err, "lookup token subject")
	}
	if user.IsWithdrawn() {
		return nil, apperror.ErrAccountWithdrawn
	}

	return user, nil
}

func (s *authService) issuePair(subject string) (*TokenPair, error) {
	access, accessExp, err := s.tokens.IssueAccess(subject)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to issue access token", "error", err)
		return nil, apperror.Wrap(err, "issue access token")
	}
	refresh, refreshExp, err := s.tokens.IssueRefresh(subject)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to issue refresh token", "error", err)
		return nil, apperror.Wrap(err, "issue refresh token")
	}

	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}
