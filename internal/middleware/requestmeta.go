package middleware

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/url-shortener/internal/messaging"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// MaxRequestIDLength bounds a client-supplied request id.
const MaxRequestIDLength = 64

// RequestInfo is per-request metadata collected at the edge.
type RequestInfo struct {
	ID        string
	ClientIP  string
	UserAgent string
}

type requestInfoKey struct{}

// ContextWithRequestInfo adds request metadata to context.
func ContextWithRequestInfo(ctx context.Context, info RequestInfo) context.Context {
	return context.WithValue(ctx, requestInfoKey{}, info)
}

// RequestInfoFromContext extracts request metadata from context.
func RequestInfoFromContext(ctx context.Context) RequestInfo {
	if v, ok := ctx.Value(requestInfoKey{}).(RequestInfo); ok {
		return v
	}

	return RequestInfo{}
}

// RequestMeta assigns a request id, echoes it in the response and stores it
// with the client IP and user-agent in the request context. An id supplied by
// the client is kept when it is a valid request id (see validRequestID) and
// replaced otherwise. The id doubles as the correlation id of any event the
// request publishes.
func RequestMeta(newID func() string) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		id := ctx.Header(RequestIDHeader)
		if !validRequestID(id) {
			id = newID()
		}

		info := RequestInfo{
			ID:        id,
			ClientIP:  extractClientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
		}

		newCtx := ContextWithRequestInfo(ctx.Context(), info)
		newCtx = messaging.ContextWithCorrelationID(newCtx, id)

		ctx = huma.WithContext(ctx, newCtx)
		ctx.SetHeader(RequestIDHeader, id)

		next(ctx)
	}
}

// validRequestID accepts non-empty ids of at most MaxRequestIDLength
// characters drawn from [A-Za-z0-9._-].
func validRequestID(id string) bool {
	if id == "" || len(id) > MaxRequestIDLength {
		return false
	}

	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == '_', c == '-':
		default:
			return false
		}
	}

	return true
}

func extractClientIP(ctx huma.Context) string {
	// X-Forwarded-For may hold a chain; the first entry is the client.
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	addr := ctx.RemoteAddr()
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}

	return addr
}
