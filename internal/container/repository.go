package container

import (
	"fmt"
	"time"

	"github.com/samber/do"
	"github.com/serroba/url-shortener/internal/identity"
	"github.com/serroba/url-shortener/internal/shortener"
	"github.com/serroba/url-shortener/internal/store"
	"go.uber.org/zap"
)

// RepositoryPackage provides the URL and account directories for the
// configured backend.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortener.Repository, error) {
		opts := do.MustInvoke[*Options](i)

		switch opts.Store {
		case StoreMemory:
			return store.NewMemoryURLStore(), nil
		case StorePostgres:
			pg := do.MustInvoke[*Postgres](i)

			var repo shortener.Repository = store.NewPostgresURLStore(pg.Pool)
			if opts.CacheEnabled() {
				rdb := do.MustInvoke[*Redis](i)
				logger := do.MustInvoke[*zap.Logger](i)
				ttl := time.Duration(opts.CacheTTLSeconds) * time.Second
				repo = store.NewRedisCacheRepository(repo, rdb.Client, ttl, logger)

				logger.Info("resolve cache enabled", zap.Duration("ttl", ttl))
			}

			return repo, nil
		default:
			return nil, fmt.Errorf("unknown store backend %q", opts.Store)
		}
	})

	do.Provide(injector, func(i *do.Injector) (identity.Repository, error) {
		opts := do.MustInvoke[*Options](i)

		switch opts.Store {
		case StoreMemory:
			return store.NewMemoryAccountStore(), nil
		case StorePostgres:
			return store.NewPostgresAccountStore(do.MustInvoke[*Postgres](i).Pool), nil
		default:
			return nil, fmt.Errorf("unknown store backend %q", opts.Store)
		}
	})
}
