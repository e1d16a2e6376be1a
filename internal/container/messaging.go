package container

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/samber/do"
	"github.com/serroba/url-shortener/internal/audit"
	"github.com/serroba/url-shortener/internal/messaging"
	"go.uber.org/zap"
)

// PublisherPackage provides the audit publishers. With auditing disabled the
// publishers drop every event and Redis is never contacted.
func PublisherPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		rdb := do.MustInvoke[*Redis](i)
		logger := do.MustInvoke[*zap.Logger](i)

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{
				Client:     rdb.Client,
				Marshaller: redisstream.DefaultMarshallerUnmarshaller{},
			},
			messaging.NewZapLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("create redis stream publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (audit.Publishers, error) {
		if !do.MustInvoke[*Options](i).Audit {
			return audit.DiscardPublishers(), nil
		}

		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return audit.NewPublishers(group.Publisher()), nil
	})
}

// ConsumerPackage provides the audit consumer group writing events to the log.
func ConsumerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		opts := do.MustInvoke[*Options](i)
		rdb := do.MustInvoke[*Redis](i)
		logger := do.MustInvoke[*zap.Logger](i)

		subscriber, err := redisstream.NewSubscriber(
			redisstream.SubscriberConfig{
				Client:        rdb.Client,
				Unmarshaller:  redisstream.DefaultMarshallerUnmarshaller{},
				ConsumerGroup: opts.AuditGroup,
			},
			messaging.NewZapLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("create redis stream subscriber: %w", err)
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(audit.NewConsumers(subscriber, audit.NewLogSink(logger), logger)...)

		return group, nil
	})
}
