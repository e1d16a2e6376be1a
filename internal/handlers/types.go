package handlers

import "time"

// CreateShortURLRequest is the request body for creating a short URL.
type CreateShortURLRequest struct {
	Body struct {
		URL string `doc:"The URL to shorten" example:"https://example.com/very/long/path" json:"url"`
	}
}

// CreateShortURLResponse is the response for a successfully created short URL.
type CreateShortURLResponse struct {
	Headers struct {
		Location string `doc:"The short URL location" header:"Location"`
	}
	Body struct {
		ShortURL string `doc:"The full short URL" example:"http://localhost:8888/d09ce9" json:"shortUrl"`
	}
}

// RedirectRequest is the request for redirecting a short URL.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"d09ce9" path:"code"`
}

// RedirectResponse points the client at the long URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `header:"Location"`
	}
}

// URLSummary is one entry of the public listing.
type URLSummary struct {
	ID       int64  `example:"1"                             json:"id"`
	LongURL  string `example:"https://example.com"           json:"longUrl"`
	ShortURL string `example:"http://localhost:8888/d09ce9"  json:"shortUrl"`
}

// ListURLsResponse is the response for the public listing.
type ListURLsResponse struct {
	Body []URLSummary
}

// URLIDRequest addresses a mapping by id.
type URLIDRequest struct {
	ID int64 `doc:"The mapping id" example:"1" path:"id"`
}

// URLDetailsResponse is the full view of a mapping.
type URLDetailsResponse struct {
	Body struct {
		ID        int64     `json:"id"`
		LongURL   string    `json:"longUrl"`
		ShortURL  string    `json:"shortUrl"`
		OwnerID   int64     `json:"ownerId"`
		CreatedAt time.Time `json:"createdAt"`
	}
}

// CredentialsRequest carries a login and secret.
type CredentialsRequest struct {
	Body struct {
		Login  string `doc:"Account login"  example:"alice"     json:"login"`
		Secret string `doc:"Account secret" example:"secret123" json:"secret"`
	}
}

// AccountResponse is the response for a successful registration.
type AccountResponse struct {
	Body struct {
		ID    int64  `example:"1"     json:"id"`
		Login string `example:"alice" json:"login"`
		Role  string `example:"User"  json:"role"`
	}
}

// TokenResponse is the response for a successful login.
type TokenResponse struct {
	Body struct {
		AccessToken string    `json:"accessToken"`
		TokenType   string    `example:"Bearer" json:"tokenType"`
		ExpiresAt   time.Time `json:"expiresAt"`
	}
}
