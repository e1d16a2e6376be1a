package audit

import (
	"time"

	"github.com/google/uuid"
)

const (
	TopicURLCreated        = "url.created"
	TopicURLDeleted        = "url.deleted"
	TopicAccountRegistered = "account.registered"
)

// URLCreated is emitted after a mapping is stored.
type URLCreated struct {
	EventID    string    `json:"eventId"`
	Code       string    `json:"code"`
	LongURL    string    `json:"longUrl"`
	ShortURL   string    `json:"shortUrl"`
	OwnerID    int64     `json:"ownerId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// URLDeleted is emitted after a mapping is removed by its owner or an admin.
type URLDeleted struct {
	EventID    string    `json:"eventId"`
	MappingID  int64     `json:"mappingId"`
	Code       string    `json:"code"`
	OwnerID    int64     `json:"ownerId"`
	DeletedBy  int64     `json:"deletedBy"`
	ActorRole  string    `json:"actorRole"`
	OccurredAt time.Time `json:"occurredAt"`
}

// AccountRegistered is emitted after a new account is stored.
type AccountRegistered struct {
	EventID    string    `json:"eventId"`
	AccountID  int64     `json:"accountId"`
	Login      string    `json:"login"`
	Role       string    `json:"role"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewEventID returns a fresh identifier for an audit event.
func NewEventID() string {
	return uuid.NewString()
}
