package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/serroba/url-shortener/internal/audit"
	"github.com/serroba/url-shortener/internal/auth"
	"github.com/serroba/url-shortener/internal/shortener"
	"go.uber.org/zap"
)

// URLHandler handles URL shortening operations.
type URLHandler struct {
	service *shortener.Service
	audit   audit.Publishers
	logger  *zap.Logger
	now     func() time.Time
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(
	service *shortener.Service, publishers audit.Publishers, logger *zap.Logger, opts ...Option,
) *URLHandler {
	o := applyOptions(opts)

	return &URLHandler{
		service: service,
		audit:   publishers,
		logger:  logger,
		now:     o.now,
	}
}

func (h *URLHandler) CreateShortURL(ctx context.Context, req *CreateShortURLRequest) (*CreateShortURLResponse, error) {
	caller := auth.CallerFromContext(ctx)

	shortURL, err := h.service.Create(ctx, req.Body.URL, caller)
	if err != nil {
		return nil, toHTTPError(h.logger, err)
	}

	event := &audit.URLCreated{
		EventID:    audit.NewEventID(),
		Code:       string(shortener.DeriveCode(req.Body.URL)),
		LongURL:    req.Body.URL,
		ShortURL:   shortURL,
		OwnerID:    caller.ID,
		OccurredAt: h.now().UTC(),
	}

	if err := h.audit.URLCreated(ctx, event); err != nil {
		h.logger.Error("failed to publish audit event",
			zap.String("topic", audit.TopicURLCreated),
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	resp := &CreateShortURLResponse{}
	resp.Headers.Location = shortURL
	resp.Body.ShortURL = shortURL

	return resp, nil
}

func (h *URLHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	longURL, err := h.service.Resolve(ctx, req.Code)
	if err != nil {
		return nil, toHTTPError(h.logger, err)
	}

	resp := &RedirectResponse{Status: http.StatusFound}
	resp.Headers.Location = longURL

	return resp, nil
}

func (h *URLHandler) ListURLs(ctx context.Context, _ *struct{}) (*ListURLsResponse, error) {
	summaries, err := h.service.List(ctx)
	if err != nil {
		return nil, toHTTPError(h.logger, err)
	}

	resp := &ListURLsResponse{Body: make([]URLSummary, 0, len(summaries))}
	for _, s := range summaries {
		resp.Body = append(resp.Body, URLSummary{ID: s.ID, LongURL: s.LongURL, ShortURL: s.ShortURL})
	}

	return resp, nil
}

func (h *URLHandler) GetURLDetails(ctx context.Context, req *URLIDRequest) (*URLDetailsResponse, error) {
	details, err := h.service.Details(ctx, req.ID, auth.CallerFromContext(ctx))
	if err != nil {
		return nil, toHTTPError(h.logger, err)
	}

	resp := &URLDetailsResponse{}
	resp.Body.ID = details.ID
	resp.Body.LongURL = details.LongURL
	resp.Body.ShortURL = details.ShortURL
	resp.Body.OwnerID = details.OwnerID
	resp.Body.CreatedAt = details.CreatedAt

	return resp, nil
}

func (h *URLHandler) DeleteURL(ctx context.Context, req *URLIDRequest) (*struct{}, error) {
	caller := auth.CallerFromContext(ctx)

	removed, err := h.service.Delete(ctx, req.ID, caller)
	if err != nil {
		return nil, toHTTPError(h.logger, err)
	}

	event := &audit.URLDeleted{
		EventID:    audit.NewEventID(),
		MappingID:  removed.ID,
		Code:       string(removed.Code),
		OwnerID:    removed.OwnerID,
		DeletedBy:  caller.ID,
		ActorRole:  caller.Role.String(),
		OccurredAt: h.now().UTC(),
	}

	if err := h.audit.URLDeleted(ctx, event); err != nil {
		h.logger.Error("failed to publish audit event",
			zap.String("topic", audit.TopicURLDeleted),
			zap.Int64("mappingId", event.MappingID),
			zap.Error(err),
		)
	}

	return &struct{}{}, nil
}
