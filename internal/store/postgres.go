package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/url-shortener/internal/apperr"
	"github.com/serroba/url-shortener/internal/auth"
	"github.com/serroba/url-shortener/internal/identity"
	"github.com/serroba/url-shortener/internal/shortener"
)

const (
	queryTimeout     = 3 * time.Second
	uniqueViolation  = "23505"
	mappingColumns   = "id, long_url, short_code, owner_id, created_at"
	accountColumns   = "id, login, credential_hash, role"
	selectMappingSQL = "SELECT " + mappingColumns + " FROM url_mappings"
)

// PostgresURLStore is a PostgreSQL implementation of shortener.Repository.
type PostgresURLStore struct {
	pool *pgxpool.Pool
}

// NewPostgresURLStore creates a new PostgreSQL-backed URL directory.
func NewPostgresURLStore(pool *pgxpool.Pool) *PostgresURLStore {
	return &PostgresURLStore{pool: pool}
}

func (p *PostgresURLStore) FindByLongURL(ctx context.Context, longURL string) (*shortener.Mapping, error) {
	return p.findOne(ctx, selectMappingSQL+" WHERE long_url = $1", longURL)
}

func (p *PostgresURLStore) FindByCode(ctx context.Context, code shortener.Code) (*shortener.Mapping, error) {
	return p.findOne(ctx, selectMappingSQL+" WHERE short_code = $1", string(code))
}

func (p *PostgresURLStore) FindByID(ctx context.Context, id int64) (*shortener.Mapping, error) {
	return p.findOne(ctx, selectMappingSQL+" WHERE id = $1", id)
}

func (p *PostgresURLStore) Insert(ctx context.Context, m *shortener.Mapping) (*shortener.Mapping, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		INSERT INTO url_mappings (long_url, short_code, owner_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	created := *m

	err := p.pool.QueryRow(ctx, query,
		m.LongURL,
		string(m.Code),
		m.OwnerID,
		m.CreatedAt,
	).Scan(&created.ID)
	if err != nil {
		return nil, translate(err)
	}

	return &created, nil
}

func (p *PostgresURLStore) List(ctx context.Context) ([]*shortener.Mapping, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := p.pool.Query(ctx, selectMappingSQL+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*shortener.Mapping

	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, m)
	}

	return out, rows.Err()
}

func (p *PostgresURLStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tag, err := p.pool.Exec(ctx, "DELETE FROM url_mappings WHERE id = $1", id)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

func (p *PostgresURLStore) findOne(ctx context.Context, query string, arg any) (*shortener.Mapping, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return scanMapping(p.pool.QueryRow(ctx, query, arg))
}

func scanMapping(row pgx.Row) (*shortener.Mapping, error) {
	var (
		m    shortener.Mapping
		code string
	)

	if err := row.Scan(&m.ID, &m.LongURL, &code, &m.OwnerID, &m.CreatedAt); err != nil {
		return nil, translate(err)
	}

	m.Code = shortener.Code(code)
	m.CreatedAt = m.CreatedAt.UTC()

	return &m, nil
}

// PostgresAccountStore is a PostgreSQL implementation of identity.Repository.
type PostgresAccountStore struct {
	pool *pgxpool.Pool
}

// NewPostgresAccountStore creates a new PostgreSQL-backed account directory.
func NewPostgresAccountStore(pool *pgxpool.Pool) *PostgresAccountStore {
	return &PostgresAccountStore{pool: pool}
}

func (p *PostgresAccountStore) FindByLogin(ctx context.Context, login string) (*identity.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var (
		a    identity.Account
		role string
	)

	err := p.pool.QueryRow(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE login = $1", login,
	).Scan(&a.ID, &a.Login, &a.CredentialHash, &role)
	if err != nil {
		return nil, translate(err)
	}

	if a.Role, err = auth.ParseRole(role); err != nil {
		return nil, fmt.Errorf("account %d: %w", a.ID, err)
	}

	return &a, nil
}

func (p *PostgresAccountStore) Insert(ctx context.Context, a *identity.Account) (*identity.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	created := *a

	err := p.pool.QueryRow(ctx,
		"INSERT INTO accounts (login, credential_hash, role) VALUES ($1, $2, $3) RETURNING id",
		a.Login, a.CredentialHash, a.Role.String(),
	).Scan(&created.ID)
	if err != nil {
		return nil, translate(err)
	}

	return &created, nil
}

// translate maps driver errors onto the repository error contract.
func translate(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", apperr.ErrConflict, pgErr.ConstraintName)
	}

	return err
}

// Compile-time checks.
var (
	_ shortener.Repository = (*PostgresURLStore)(nil)
	_ identity.Repository  = (*PostgresAccountStore)(nil)
)
