package identity

import (
	"context"

	"github.com/serroba/url-shortener/internal/auth"
)

// Account is a registered user.
type Account struct {
	ID             int64
	Login          string
	CredentialHash string
	Role           auth.Role
}

// Summary is the public view of an account returned on registration.
type Summary struct {
	ID    int64     `json:"id"`
	Login string    `json:"login"`
	Role  auth.Role `json:"role"`
}

// Repository is the authoritative directory of accounts. Implementations
// report an unknown login with apperr.ErrNotFound and a duplicate login with
// apperr.ErrConflict.
type Repository interface {
	FindByLogin(ctx context.Context, login string) (*Account, error)
	// Insert stores a and returns it with ID assigned.
	Insert(ctx context.Context, a *Account) (*Account, error)
}

// CredentialHasher produces and checks opaque secret hashes.
type CredentialHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, hash string) bool
}

// TokenIssuer mints bearer credentials for an authenticated account.
type TokenIssuer interface {
	Issue(id int64, login string, role auth.Role) (auth.Token, error)
}
