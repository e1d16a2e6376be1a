package container

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jaevor/go-nanoid"
	"github.com/samber/do"
	"github.com/serroba/url-shortener/internal/audit"
	"github.com/serroba/url-shortener/internal/auth"
	"github.com/serroba/url-shortener/internal/handlers"
	"github.com/serroba/url-shortener/internal/health"
	"github.com/serroba/url-shortener/internal/identity"
	"github.com/serroba/url-shortener/internal/metrics"
	"github.com/serroba/url-shortener/internal/middleware"
	"github.com/serroba/url-shortener/internal/shortener"
	"go.uber.org/zap"
)

const requestIDLength = 21

// HTTPPackage provides the router and the huma API with every route
// registered. Invoking huma.API is what wires the routes.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		router := chi.NewMux()
		router.Use(chimw.Recoverer)

		return router, nil
	})

	do.Provide(injector, func(_ *do.Injector) (*metrics.HTTP, error) {
		return metrics.NewHTTP(), nil
	})

	do.Provide(injector, func(i *do.Injector) (*health.Handler, error) {
		opts := do.MustInvoke[*Options](i)
		checkers := map[string]health.Checker{}

		if opts.NeedsRedis() {
			checkers["redis"] = health.NewRedisChecker(do.MustInvoke[*Redis](i).Client)
		}

		if opts.Store == StorePostgres {
			checkers["postgres"] = health.NewPostgresChecker(do.MustInvoke[*Postgres](i).Pool)
		}

		return health.NewHandler(checkers), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)
		httpMetrics := do.MustInvoke[*metrics.HTTP](i)
		tokens := do.MustInvoke[*auth.JWTService](i)
		publishers := do.MustInvoke[audit.Publishers](i)

		newID, err := nanoid.Standard(requestIDLength)
		if err != nil {
			return nil, fmt.Errorf("create request id generator: %w", err)
		}

		api := humachi.New(router, handlers.NewAPIConfig("URL Shortener", "1.0.0"))
		api.UseMiddleware(
			middleware.RequestMeta(newID),
			middleware.Metrics(httpMetrics),
			middleware.AccessLog(logger),
			middleware.Authenticate(api, tokens),
		)

		urlHandler := handlers.NewURLHandler(do.MustInvoke[*shortener.Service](i), publishers, logger)
		accountHandler := handlers.NewAccountHandler(do.MustInvoke[*identity.Service](i), publishers, logger)

		handlers.RegisterRoutes(api, urlHandler, accountHandler)
		health.RegisterRoutes(api, do.MustInvoke[*health.Handler](i))
		router.Handle("/metrics", httpMetrics.Handler())

		return api, nil
	})
}
