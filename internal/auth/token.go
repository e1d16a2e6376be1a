package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Token is the bearer credential handed out on login.
type Token struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type claims struct {
	Login string `json:"login"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HS256 access tokens.
type JWTService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// JWTOption customizes a JWTService.
type JWTOption func(*JWTService)

// WithClock overrides the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) JWTOption {
	return func(s *JWTService) {
		s.now = now
	}
}

// NewJWTService creates a token service signing with the given shared secret.
func NewJWTService(secret, issuer string, ttl time.Duration, opts ...JWTOption) (*JWTService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}

	if issuer == "" {
		return nil, errors.New("jwt issuer is empty")
	}

	if ttl <= 0 {
		return nil, errors.New("jwt ttl must be > 0")
	}

	s := &JWTService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Issue mints a signed token for the account.
func (s *JWTService) Issue(id int64, login string, role Role) (Token, error) {
	if id <= 0 {
		return Token{}, errors.New("jwt subject must be positive")
	}

	if !role.Valid() {
		return Token{}, fmt.Errorf("%w: %d", ErrUnknownRole, int(role))
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)

	c := claims{
		Login: login,
		Role:  role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(id, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}

	return Token{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresAt:   jwt.NewNumericDate(expiresAt).Time,
	}, nil
}

// Verify checks the token signature, issuer and expiry and returns the caller it names.
func (s *JWTService) Verify(tokenString string) (Caller, error) {
	var parsed claims

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	_, err := parser.ParseWithClaims(tokenString, &parsed, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return Caller{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	id, err := strconv.ParseInt(parsed.Subject, 10, 64)
	if err != nil || id <= 0 {
		return Caller{}, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, parsed.Subject)
	}

	role, err := ParseRole(parsed.Role)
	if err != nil {
		return Caller{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return Caller{ID: id, Role: role}, nil
}
