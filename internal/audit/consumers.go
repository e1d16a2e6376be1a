package audit

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/url-shortener/internal/messaging"
	"go.uber.org/zap"
)

// NewConsumers returns one consumer per audit topic, all feeding sink.
func NewConsumers(subscriber message.Subscriber, sink Sink, logger *zap.Logger) []messaging.Runnable {
	return []messaging.Runnable{
		messaging.NewConsumer[URLCreated](subscriber, TopicURLCreated, sink.URLCreated, logger),
		messaging.NewConsumer[URLDeleted](subscriber, TopicURLDeleted, sink.URLDeleted, logger),
		messaging.NewConsumer[AccountRegistered](subscriber, TopicAccountRegistered, sink.AccountRegistered, logger),
	}
}
