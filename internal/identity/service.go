package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/serroba/url-shortener/internal/apperr"
	"github.com/serroba/url-shortener/internal/auth"
)

// DefaultMaxSecretLength is the longest secret accepted at registration.
const DefaultMaxSecretLength = 10

// Service registers and authenticates accounts.
type Service struct {
	accounts        Repository
	hasher          CredentialHasher
	issuer          TokenIssuer
	maxSecretLength int
}

// NewService creates an identity service. A non-positive maxSecretLength
// selects DefaultMaxSecretLength.
func NewService(accounts Repository, hasher CredentialHasher, issuer TokenIssuer, maxSecretLength int) *Service {
	if maxSecretLength <= 0 {
		maxSecretLength = DefaultMaxSecretLength
	}

	return &Service{
		accounts:        accounts,
		hasher:          hasher,
		issuer:          issuer,
		maxSecretLength: maxSecretLength,
	}
}

// Register creates a User account for login.
func (s *Service) Register(ctx context.Context, login, secret string) (*Summary, error) {
	if login == "" {
		return nil, apperr.Validation("login is required")
	}

	if secret == "" {
		return nil, apperr.Validation("password is required")
	}

	if utf8.RuneCountInString(secret) > s.maxSecretLength {
		return nil, apperr.Validation("password must be at most %d characters", s.maxSecretLength)
	}

	_, err := s.accounts.FindByLogin(ctx, login)
	if err == nil {
		return nil, apperr.Conflict("user with this login already exists")
	}

	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("find by login: %w", err)
	}

	hash, err := s.hasher.Hash(secret)
	if err != nil {
		return nil, err
	}

	created, err := s.accounts.Insert(ctx, &Account{
		Login:          login,
		CredentialHash: hash,
		Role:           auth.RoleUser,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict("user with this login already exists")
		}

		return nil, fmt.Errorf("insert account: %w", err)
	}

	return &Summary{
		ID:    created.ID,
		Login: created.Login,
		Role:  created.Role,
	}, nil
}

// Login checks the secret for login and returns a freshly issued token.
func (s *Service) Login(ctx context.Context, login, secret string) (auth.Token, error) {
	secret = strings.TrimSpace(secret)

	account, err := s.accounts.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return auth.Token{}, apperr.NotFound("user with login %s not found", login)
		}

		return auth.Token{}, fmt.Errorf("find by login: %w", err)
	}

	if !s.hasher.Verify(secret, account.CredentialHash) {
		return auth.Token{}, apperr.Validation("invalid credentials")
	}

	return s.issuer.Issue(account.ID, account.Login, account.Role)
}
