package handlers

import (
	"context"
	"time"

	"github.com/serroba/url-shortener/internal/audit"
	"github.com/serroba/url-shortener/internal/identity"
	"go.uber.org/zap"
)

// AccountHandler handles registration and login.
type AccountHandler struct {
	service *identity.Service
	audit   audit.Publishers
	logger  *zap.Logger
	now     func() time.Time
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(
	service *identity.Service, publishers audit.Publishers, logger *zap.Logger, opts ...Option,
) *AccountHandler {
	o := applyOptions(opts)

	return &AccountHandler{service: service, audit: publishers, logger: logger, now: o.now}
}

func (h *AccountHandler) Register(ctx context.Context, req *CredentialsRequest) (*AccountResponse, error) {
	summary, err := h.service.Register(ctx, req.Body.Login, req.Body.Secret)
	if err != nil {
		return nil, toHTTPError(h.logger, err)
	}

	event := &audit.AccountRegistered{
		EventID:    audit.NewEventID(),
		AccountID:  summary.ID,
		Login:      summary.Login,
		Role:       summary.Role.String(),
		OccurredAt: h.now().UTC(),
	}

	if err := h.audit.AccountRegistered(ctx, event); err != nil {
		h.logger.Error("failed to publish audit event",
			zap.String("topic", audit.TopicAccountRegistered),
			zap.Int64("accountId", event.AccountID),
			zap.Error(err),
		)
	}

	resp := &AccountResponse{}
	resp.Body.ID = summary.ID
	resp.Body.Login = summary.Login
	resp.Body.Role = summary.Role.String()

	return resp, nil
}

func (h *AccountHandler) Login(ctx context.Context, req *CredentialsRequest) (*TokenResponse, error) {
	token, err := h.service.Login(ctx, req.Body.Login, req.Body.Secret)
	if err != nil {
		return nil, toHTTPError(h.logger, err)
	}

	resp := &TokenResponse{}
	resp.Body.AccessToken = token.AccessToken
	resp.Body.TokenType = token.TokenType
	resp.Body.ExpiresAt = token.ExpiresAt

	return resp, nil
}
