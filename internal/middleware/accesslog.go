package middleware

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"
)

// AccessLog writes one line per request once the handler has finished.
func AccessLog(logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		next(ctx)

		info := RequestInfoFromContext(ctx.Context())

		logger.Info("request",
			zap.String("method", ctx.Method()),
			zap.String("route", routeOf(ctx)),
			zap.Int("status", ctx.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("requestId", info.ID),
			zap.String("clientIp", info.ClientIP),
		)
	}
}

func routeOf(ctx huma.Context) string {
	if op := ctx.Operation(); op != nil {
		return op.Path
	}

	return ctx.URL().Path
}
