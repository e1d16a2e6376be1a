package audit

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/url-shortener/internal/messaging"
)

// Publishers holds one typed publish function per audit topic.
type Publishers struct {
	URLCreated        messaging.Publish[URLCreated]
	URLDeleted        messaging.Publish[URLDeleted]
	AccountRegistered messaging.Publish[AccountRegistered]
}

// NewPublishers binds every audit topic to the given publisher.
func NewPublishers(publisher message.Publisher) Publishers {
	return Publishers{
		URLCreated:        messaging.NewPublishFunc[URLCreated](publisher, TopicURLCreated),
		URLDeleted:        messaging.NewPublishFunc[URLDeleted](publisher, TopicURLDeleted),
		AccountRegistered: messaging.NewPublishFunc[AccountRegistered](publisher, TopicAccountRegistered),
	}
}

// DiscardPublishers returns publishers that drop every event. Used when
// auditing is disabled.
func DiscardPublishers() Publishers {
	return Publishers{
		URLCreated:        messaging.Discard[URLCreated](),
		URLDeleted:        messaging.Discard[URLDeleted](),
		AccountRegistered: messaging.Discard[AccountRegistered](),
	}
}
