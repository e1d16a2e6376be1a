package shortener

import "context"

// Repository is the authoritative directory of mappings. Implementations
// report missing rows with apperr.ErrNotFound and unique index violations on
// the long URL or code with apperr.ErrConflict.
type Repository interface {
	FindByLongURL(ctx context.Context, longURL string) (*Mapping, error)
	FindByCode(ctx context.Context, code Code) (*Mapping, error)
	FindByID(ctx context.Context, id int64) (*Mapping, error)
	// Insert stores m and returns it with ID assigned.
	Insert(ctx context.Context, m *Mapping) (*Mapping, error)
	// List returns every mapping in storage (id) order.
	List(ctx context.Context) ([]*Mapping, error)
	// DeleteByID reports whether a row was removed.
	DeleteByID(ctx context.Context, id int64) (bool, error)
}
