package shortener

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/serroba/url-shortener/internal/apperr"
	"github.com/serroba/url-shortener/internal/auth"
)

const (
	MaxLongURLLength = 200
	MaxCodeLength    = 20
)

// Service applies the shortening and ownership rules on top of a Repository.
type Service struct {
	store   Repository
	baseURL string
	now     func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a Service composing short URLs under baseURL.
func NewService(store Repository, baseURL string, opts ...Option) *Service {
	s := &Service{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ShortURL composes the public short URL for code.
func (s *Service) ShortURL(code Code) string {
	return fmt.Sprintf("%s/%s", s.baseURL, code)
}

// Create shortens longURL on behalf of caller and returns the short URL.
func (s *Service) Create(ctx context.Context, longURL string, caller auth.Caller) (string, error) {
	if err := validateLongURL(longURL); err != nil {
		return "", err
	}

	_, err := s.store.FindByLongURL(ctx, longURL)
	if err == nil {
		return "", apperr.Conflict("this url is already shortened")
	}

	if !errors.Is(err, apperr.ErrNotFound) {
		return "", fmt.Errorf("find by long url: %w", err)
	}

	if !caller.Authenticated() {
		return "", apperr.Unauthorized("caller identity is required")
	}

	code := DeriveCode(longURL)

	_, err = s.store.Insert(ctx, &Mapping{
		LongURL:   longURL,
		Code:      code,
		OwnerID:   caller.ID,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return "", apperr.Conflict("this url or its short code is already taken")
		}

		return "", fmt.Errorf("insert mapping: %w", err)
	}

	return s.ShortURL(code), nil
}

// Resolve returns the long URL behind code. It needs no caller.
func (s *Service) Resolve(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", apperr.Validation("short code is required")
	}

	if utf8.RuneCountInString(code) > MaxCodeLength {
		return "", apperr.Validation("short code is too long")
	}

	m, err := s.store.FindByCode(ctx, Code(code))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", apperr.NotFound("long url not found for short url %s", s.ShortURL(Code(code)))
		}

		return "", fmt.Errorf("find by code: %w", err)
	}

	return m.LongURL, nil
}

// List returns every mapping in storage order.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	mappings, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list mappings: %w", err)
	}

	out := make([]Summary, 0, len(mappings))
	for _, m := range mappings {
		out = append(out, Summary{
			ID:       m.ID,
			LongURL:  m.LongURL,
			ShortURL: s.ShortURL(m.Code),
		})
	}

	return out, nil
}

// Details returns the full record for id to any authenticated caller.
func (s *Service) Details(ctx context.Context, id int64, caller auth.Caller) (*Details, error) {
	if id <= 0 {
		return nil, apperr.Validation("invalid id")
	}

	if !caller.Authenticated() {
		return nil, apperr.Unauthorized("caller identity is required")
	}

	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Details{
		ID:        m.ID,
		LongURL:   m.LongURL,
		ShortURL:  s.ShortURL(m.Code),
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt,
	}, nil
}

// Delete removes the mapping id when caller owns it or is an admin. It
// returns the removed mapping.
func (s *Service) Delete(ctx context.Context, id int64, caller auth.Caller) (*Mapping, error) {
	if id <= 0 {
		return nil, apperr.Validation("invalid id")
	}

	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if !caller.Authenticated() {
		return nil, apperr.Unauthorized("caller identity is required")
	}

	if !caller.CanManage(m.OwnerID) {
		return nil, apperr.Forbidden("only the owner or an admin may delete url %d", id)
	}

	deleted, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete mapping: %w", err)
	}

	if !deleted {
		return nil, apperr.NotFound("url with id %d not found", id)
	}

	return m, nil
}

func (s *Service) find(ctx context.Context, id int64) (*Mapping, error) {
	m, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NotFound("url with id %d not found", id)
		}

		return nil, fmt.Errorf("find by id: %w", err)
	}

	return m, nil
}

func validateLongURL(longURL string) error {
	switch {
	case longURL == "":
		return apperr.Validation("url is required")
	case utf8.RuneCountInString(longURL) > MaxLongURLLength:
		return apperr.Validation("url is too long")
	case !strings.HasPrefix(longURL, "http://") && !strings.HasPrefix(longURL, "https://"):
		return apperr.Validation("url must start with http:// or https://")
	default:
		return nil
	}
}
