package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKind distinguishes access tokens from refresh tokens inside the signed payload.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// Claims is the payload carried by every issued token.
type Claims struct {
	Kind TokenKind `json:"type"`
	jwt.RegisteredClaims
}

// TokenConfig is read once at startup and never mutated.
type TokenConfig struct {
	Secret     []byte
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenService issues and verifies signed bearer tokens.
type TokenService interface {
	Issue(subject string, kind TokenKind, ttl time.Duration) (string, time.Time, error)
	IssueAccess(subject string) (string, time.Time, error)
	IssueRefresh(subject string) (string, time.Time, error)
	// Verify checks signature and expiry. It does not consult the revocation store.
	Verify(token string) (*Claims, error)
	// Inspect checks the signature only, so expired tokens still decode.
	Inspect(token string) (*Claims, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

type jwtService struct {
	cfg    TokenConfig
	now    func() time.Time
	parser *jwt.Parser
	loose  *jwt.Parser
}

// Token errors
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token malformed or signature invalid")
)

// NewJWTService builds an HS256 token service.
func NewJWTService(cfg TokenConfig) (TokenService, error) {
	return newJWTService(cfg, time.Now)
}

// NewJWTServiceWithClock is NewJWTService with an injectable clock.
func NewJWTServiceWithClock(cfg TokenConfig, now func() time.Time) (TokenService, error) {
	return newJWTService(cfg, now)
}

func newJWTService(cfg TokenConfig, now func() time.Time) (TokenService, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("jwt secret must be provided")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(now),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return &jwtService{
		cfg:    cfg,
		now:    now,
		parser: jwt.NewParser(opts...),
		loose: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}, nil
}

func (s *jwtService) AccessTTL() time.Duration  { return s.cfg.AccessTTL }
func (s *jwtService) RefreshTTL() time.Duration { return s.cfg.RefreshTTL }

func (s *jwtService) IssueAccess(subject string) (string, time.Time, error) {
	return s.Issue(subject, KindAccess, s.cfg.AccessTTL)
}

func (s *jwtService) IssueRefresh(subject string) (string, time.Time, error) {
	return s.Issue(subject, KindRefresh, s.cfg.RefreshTTL)
}

func (s *jwtService) Issue(subject string, kind TokenKind, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	// NumericDate truncates to seconds; report what the token actually carries.
	return signed, claims.ExpiresAt.Time, nil
}

func (s *jwtService) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	if _, err := s.parser.ParseWithClaims(token, claims, s.keyFunc); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (s *jwtService) Inspect(token string) (*Claims, error) {
	claims := &Claims{}
	if _, err := s.loose.ParseWithClaims(token, claims, s.keyFunc); err != nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (s *jwtService) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrSignatureInvalid
	}
	return s.cfg.Secret, nil
}
