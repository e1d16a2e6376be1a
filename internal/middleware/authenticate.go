package middleware

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/url-shortener/internal/auth"
)

// TokenVerifier resolves a bearer token into a caller.
type TokenVerifier interface {
	Verify(token string) (auth.Caller, error)
}

// Authenticate resolves the bearer token, if any, into an auth.Caller stored
// in the request context. Requests without a token proceed anonymously and
// the core decides whether that is acceptable. An invalid token is rejected
// with 401 on operations that declare a security requirement and ignored
// elsewhere.
func Authenticate(api huma.API, verifier TokenVerifier) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token, ok := bearerToken(ctx.Header("Authorization"))
		if !ok {
			next(ctx)

			return
		}

		caller, err := verifier.Verify(token)
		if err != nil {
			if secured(ctx.Operation()) {
				_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid or expired token")

				return
			}

			next(ctx)

			return
		}

		next(huma.WithContext(ctx, auth.ContextWithCaller(ctx.Context(), caller)))
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}

func secured(op *huma.Operation) bool {
	return op != nil && len(op.Security) > 0
}
