package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/url-shortener/internal/apperr"
	"go.uber.org/zap"
)

// toHTTPError maps a classified core error onto an HTTP status. Anything
// unclassified is logged and reported as a generic 500.
func toHTTPError(logger *zap.Logger, err error) error {
	msg := apperr.Message(err)

	switch {
	case errors.Is(err, apperr.ErrValidation):
		return huma.Error422UnprocessableEntity(msg)
	case errors.Is(err, apperr.ErrConflict):
		return huma.Error409Conflict(msg)
	case errors.Is(err, apperr.ErrNotFound):
		return huma.Error404NotFound(msg)
	case errors.Is(err, apperr.ErrUnauthorized):
		return huma.Error401Unauthorized(msg)
	case errors.Is(err, apperr.ErrForbidden):
		return huma.Error403Forbidden(msg)
	default:
		logger.Error("unexpected error", zap.Error(err))

		return huma.Error500InternalServerError("internal server error")
	}
}
