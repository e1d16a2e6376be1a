package audit

import (
	"context"

	"github.com/serroba/url-shortener/internal/messaging"
	"go.uber.org/zap"
)

// Sink records audit events once they have been consumed.
type Sink interface {
	URLCreated(ctx context.Context, event *URLCreated) error
	URLDeleted(ctx context.Context, event *URLDeleted) error
	AccountRegistered(ctx context.Context, event *AccountRegistered) error
}

// LogSink writes audit events to a structured log.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a sink that logs every event at info level.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger.Named("audit")}
}

func (s *LogSink) URLCreated(ctx context.Context, event *URLCreated) error {
	s.logger.Info("url created",
		zap.String("eventId", event.EventID),
		zap.String("correlationId", messaging.CorrelationIDFromContext(ctx)),
		zap.String("code", event.Code),
		zap.String("longUrl", event.LongURL),
		zap.String("shortUrl", event.ShortURL),
		zap.Int64("ownerId", event.OwnerID),
		zap.Time("occurredAt", event.OccurredAt),
	)

	return nil
}

func (s *LogSink) URLDeleted(ctx context.Context, event *URLDeleted) error {
	s.logger.Info("url deleted",
		zap.String("eventId", event.EventID),
		zap.String("correlationId", messaging.CorrelationIDFromContext(ctx)),
		zap.Int64("mappingId", event.MappingID),
		zap.String("code", event.Code),
		zap.Int64("ownerId", event.OwnerID),
		zap.Int64("deletedBy", event.DeletedBy),
		zap.String("actorRole", event.ActorRole),
		zap.Time("occurredAt", event.OccurredAt),
	)

	return nil
}

func (s *LogSink) AccountRegistered(ctx context.Context, event *AccountRegistered) error {
	s.logger.Info("account registered",
		zap.String("eventId", event.EventID),
		zap.String("correlationId", messaging.CorrelationIDFromContext(ctx)),
		zap.Int64("accountId", event.AccountID),
		zap.String("login", event.Login),
		zap.String("role", event.Role),
		zap.Time("occurredAt", event.OccurredAt),
	)

	return nil
}

var _ Sink = (*LogSink)(nil)
