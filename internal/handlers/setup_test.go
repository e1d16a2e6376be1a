package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/serroba/url-shortener/internal/audit"
	"github.com/serroba/url-shortener/internal/auth"
	"github.com/serroba/url-shortener/internal/handlers"
	"github.com/serroba/url-shortener/internal/identity"
	"github.com/serroba/url-shortener/internal/middleware"
	"github.com/serroba/url-shortener/internal/shortener"
	"github.com/serroba/url-shortener/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const baseURL = "http://localhost:8888"

// fixedNow is the clock every test handler stamps audit events with.
var fixedNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// recorder collects published audit events.
type recorder struct {
	mu         sync.Mutex
	created    []audit.URLCreated
	deleted    []audit.URLDeleted
	registered []audit.AccountRegistered
	err        error
}

func (r *recorder) publishers() audit.Publishers {
	return audit.Publishers{
		URLCreated: func(_ context.Context, e *audit.URLCreated) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.created = append(r.created, *e)

			return r.err
		},
		URLDeleted: func(_ context.Context, e *audit.URLDeleted) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.deleted = append(r.deleted, *e)

			return r.err
		},
		AccountRegistered: func(_ context.Context, e *audit.AccountRegistered) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.registered = append(r.registered, *e)

			return r.err
		},
	}
}

type testEnv struct {
	api      humatest.TestAPI
	accounts *store.MemoryAccountStore
	hasher   *auth.BcryptHasher
	events   *recorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	return newTestEnvWithURLStore(t, store.NewMemoryURLStore())
}

func newTestEnvWithURLStore(t *testing.T, urls shortener.Repository) *testEnv {
	t.Helper()

	tokens, err := auth.NewJWTService("test-secret", "url-shortener", time.Hour)
	require.NoError(t, err)

	env := &testEnv{
		accounts: store.NewMemoryAccountStore(),
		hasher:   auth.NewBcryptHasher(bcrypt.MinCost),
		events:   &recorder{},
	}

	logger := zap.NewNop()
	clock := handlers.WithClock(func() time.Time { return fixedNow })
	urlHandler := handlers.NewURLHandler(shortener.NewService(urls, baseURL), env.events.publishers(), logger, clock)
	accountHandler := handlers.NewAccountHandler(
		identity.NewService(env.accounts, env.hasher, tokens, identity.DefaultMaxSecretLength),
		env.events.publishers(),
		logger,
		clock,
	)

	_, api := humatest.New(t, handlers.NewAPIConfig("Test", "1.0.0"))
	api.UseMiddleware(
		middleware.RequestMeta(func() string { return "req-test" }),
		middleware.Authenticate(api, tokens),
	)
	handlers.RegisterRoutes(api, urlHandler, accountHandler)

	env.api = api

	return env
}

// seedAdmin stores an admin account directly; registration only creates users.
func (e *testEnv) seedAdmin(t *testing.T, login, secret string) {
	t.Helper()

	hash, err := e.hasher.Hash(secret)
	require.NoError(t, err)

	_, err = e.accounts.Insert(context.Background(), &identity.Account{Login: login, CredentialHash: hash, Role: auth.RoleAdmin})
	require.NoError(t, err)
}

func (e *testEnv) register(t *testing.T, login, secret string) {
	t.Helper()

	resp := e.api.Post("/api/users/register", map[string]any{"login": login, "secret": secret})
	require.Equal(t, 200, resp.Code, resp.Body.String())
}

func (e *testEnv) login(t *testing.T, login, secret string) string {
	t.Helper()

	resp := e.api.Post("/api/users/login", map[string]any{"login": login, "secret": secret})
	require.Equal(t, 200, resp.Code, resp.Body.String())

	var body struct {
		AccessToken string `json:"accessToken"`
	}
	decode(t, resp, &body)

	return "Authorization: Bearer " + body.AccessToken
}

func decode(t *testing.T, resp *httptest.ResponseRecorder, v any) {
	t.Helper()

	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), v), resp.Body.String())
}

var errBoom = errors.New("boom")

// brokenStore fails every operation with an unclassified error.
type brokenStore struct{}

func (brokenStore) FindByLongURL(context.Context, string) (*shortener.Mapping, error) {
	return nil, errBoom
}

func (brokenStore) FindByCode(context.Context, shortener.Code) (*shortener.Mapping, error) {
	return nil, errBoom
}

func (brokenStore) FindByID(context.Context, int64) (*shortener.Mapping, error) { return nil, errBoom }

func (brokenStore) Insert(context.Context, *shortener.Mapping) (*shortener.Mapping, error) {
	return nil, errBoom
}

func (brokenStore) List(context.Context) ([]*shortener.Mapping, error) { return nil, errBoom }

func (brokenStore) DeleteByID(context.Context, int64) (bool, error) { return false, errBoom }
