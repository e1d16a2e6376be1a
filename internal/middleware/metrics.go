package middleware

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/url-shortener/internal/metrics"
)

// Metrics records request count, latency and concurrency per route template.
func Metrics(m *metrics.HTTP) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		done := m.Begin(ctx.Method(), routeOf(ctx))

		next(ctx)

		done(ctx.Status())
	}
}
