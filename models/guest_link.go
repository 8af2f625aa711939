package models

import (
	"time"
)

// GuestLink is an anonymous short link. It lives in Redis under a 24h TTL,
// so it has no owner, no status and no click history, only an in-place
// counter. Expiry is enforced by the store, never by application code.
type GuestLink struct {
	ShortCode   string    `json:"shortCode"`
	OriginalURL string    `json:"originalUrl"`
	ShortURL    string    `json:"shortUrl"`
	Clicks      int64     `json:"clicks"`
	CreatedAt   time.Time `json:"createdAt"`
}
