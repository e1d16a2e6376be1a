package shortener

import "time"

// Code is the short code a mapping is addressed by.
type Code string

// Mapping is a stored long URL to short code association.
type Mapping struct {
	ID        int64
	LongURL   string
	Code      Code
	OwnerID   int64
	CreatedAt time.Time
}

// Summary is the public view of a mapping returned by List.
type Summary struct {
	ID       int64  `json:"id"`
	LongURL  string `json:"longUrl"`
	ShortURL string `json:"shortUrl"`
}

// Details is the full view of a mapping returned to authenticated callers.
type Details struct {
	ID        int64     `json:"id"`
	LongURL   string    `json:"longUrl"`
	ShortURL  string    `json:"shortUrl"`
	OwnerID   int64     `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}
