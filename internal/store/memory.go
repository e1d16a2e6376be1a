package store

import (
	"context"
	"sync"

	"github.com/serroba/url-shortener/internal/apperr"
	"github.com/serroba/url-shortener/internal/identity"
	"github.com/serroba/url-shortener/internal/shortener"
)

// MemoryURLStore is an in-memory implementation of shortener.Repository with
// the same uniqueness guarantees as the Postgres schema.
type MemoryURLStore struct {
	mu     sync.RWMutex
	nextID int64
	rows   []*shortener.Mapping // id order
	byLong map[string]*shortener.Mapping
	byCode map[shortener.Code]*shortener.Mapping
}

// NewMemoryURLStore creates an empty in-memory URL directory.
func NewMemoryURLStore() *MemoryURLStore {
	return &MemoryURLStore{
		byLong: make(map[string]*shortener.Mapping),
		byCode: make(map[shortener.Code]*shortener.Mapping),
	}
}

func (m *MemoryURLStore) FindByLongURL(_ context.Context, longURL string) (*shortener.Mapping, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.byLong[longURL]
	if !ok {
		return nil, apperr.ErrNotFound
	}

	return clone(row), nil
}

func (m *MemoryURLStore) FindByCode(_ context.Context, code shortener.Code) (*shortener.Mapping, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.byCode[code]
	if !ok {
		return nil, apperr.ErrNotFound
	}

	return clone(row), nil
}

func (m *MemoryURLStore) FindByID(_ context.Context, id int64) (*shortener.Mapping, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.indexOf(id); i >= 0 {
		return clone(m.rows[i]), nil
	}

	return nil, apperr.ErrNotFound
}

func (m *MemoryURLStore) Insert(_ context.Context, mapping *shortener.Mapping) (*shortener.Mapping, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byLong[mapping.LongURL]; ok {
		return nil, apperr.ErrConflict
	}

	if _, ok := m.byCode[mapping.Code]; ok {
		return nil, apperr.ErrConflict
	}

	m.nextID++

	row := clone(mapping)
	row.ID = m.nextID

	m.rows = append(m.rows, row)
	m.byLong[row.LongURL] = row
	m.byCode[row.Code] = row

	return clone(row), nil
}

func (m *MemoryURLStore) List(_ context.Context) ([]*shortener.Mapping, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*shortener.Mapping, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, clone(row))
	}

	return out, nil
}

func (m *MemoryURLStore) DeleteByID(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return false, nil
	}

	row := m.rows[i]
	delete(m.byLong, row.LongURL)
	delete(m.byCode, row.Code)
	m.rows = append(m.rows[:i], m.rows[i+1:]...)

	return true, nil
}

func (m *MemoryURLStore) indexOf(id int64) int {
	for i, row := range m.rows {
		if row.ID == id {
			return i
		}
	}

	return -1
}

func clone(m *shortener.Mapping) *shortener.Mapping {
	c := *m

	return &c
}

// MemoryAccountStore is an in-memory implementation of identity.Repository.
type MemoryAccountStore struct {
	mu      sync.RWMutex
	nextID  int64
	byLogin map[string]identity.Account
}

// NewMemoryAccountStore creates an empty in-memory account directory.
func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{
		byLogin: make(map[string]identity.Account),
	}
}

func (m *MemoryAccountStore) FindByLogin(_ context.Context, login string) (*identity.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.byLogin[login]
	if !ok {
		return nil, apperr.ErrNotFound
	}

	return &a, nil
}

func (m *MemoryAccountStore) Insert(_ context.Context, account *identity.Account) (*identity.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byLogin[account.Login]; ok {
		return nil, apperr.ErrConflict
	}

	m.nextID++

	a := *account
	a.ID = m.nextID
	m.byLogin[a.Login] = a

	return &a, nil
}

// Compile-time checks.
var (
	_ shortener.Repository = (*MemoryURLStore)(nil)
	_ identity.Repository  = (*MemoryAccountStore)(nil)
)
