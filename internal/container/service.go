package container

import (
	"fmt"
	"time"

	"github.com/samber/do"
	"github.com/serroba/url-shortener/internal/auth"
	"github.com/serroba/url-shortener/internal/identity"
	"github.com/serroba/url-shortener/internal/shortener"
)

// AuthPackage provides the token service and the credential hasher.
func AuthPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*auth.JWTService, error) {
		opts := do.MustInvoke[*Options](i)

		return auth.NewJWTService(opts.JWTSecret, opts.JWTIssuer, time.Duration(opts.JWTTTLMinutes)*time.Minute)
	})

	do.Provide(injector, func(_ *do.Injector) (*auth.BcryptHasher, error) {
		return auth.NewBcryptHasher(0), nil
	})
}

// ServicePackage provides the core services.
func ServicePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*shortener.Service, error) {
		opts := do.MustInvoke[*Options](i)
		repo := do.MustInvoke[shortener.Repository](i)

		return shortener.NewService(repo, opts.PublicBaseURL()), nil
	})

	do.Provide(injector, func(i *do.Injector) (*identity.Service, error) {
		opts := do.MustInvoke[*Options](i)
		if opts.MaxSecretLength > auth.MaxSecretBytes {
			return nil, fmt.Errorf("max secret length %d exceeds the bcrypt limit of %d bytes",
				opts.MaxSecretLength, auth.MaxSecretBytes)
		}

		return identity.NewService(
			do.MustInvoke[identity.Repository](i),
			do.MustInvoke[*auth.BcryptHasher](i),
			do.MustInvoke[*auth.JWTService](i),
			opts.MaxSecretLength,
		), nil
	})
}
