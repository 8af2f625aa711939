// Package storage holds the persistence contracts for the two link
// collections and the click history, plus their Postgres and Redis
// implementations. The short-code uniqueness constraint lives here: both
// collections reject a duplicate code with ErrCodeTaken, which is the final
// authority the issuing service's collision retry relies on.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/Gautam5514/url-shortner/models"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrCodeTaken  = errors.New("short code already in use")
	ErrEmailTaken = errors.New("email already registered")
)

// GuestTTL is how long a guest link lives. Expiry is enforced by Redis,
// not by application code.
const GuestTTL = 24 * time.Hour

// LinkStore is the registered (user-owned) link collection.
type LinkStore interface {
	FindByCode(ctx context.Context, code string) (*models.Link, error)
	FindByID(ctx context.Context, id uint) (*models.Link, error)
	FindByUser(ctx context.Context, userID uint) ([]models.Link, error)
	Insert(ctx context.Context, link *models.Link) error
	Update(ctx context.Context, link *models.Link) error
	// IncrementClicks adds delta to the stored counter in a single
	// atomic statement. Callers must never read-modify-write the counter.
	IncrementClicks(ctx context.Context, id uint, delta int64) error
	// Delete removes the link and every click event referencing it.
	Delete(ctx context.Context, id uint) error
}

// GuestStore is the anonymous, auto-expiring link collection.
type GuestStore interface {
	FindByCode(ctx context.Context, code string) (*models.GuestLink, error)
	Insert(ctx context.Context, link *models.GuestLink) error
	IncrementClicks(ctx context.Context, code string, delta int64) error
}

// DailyClicks is one day's click total for a link, used by the stats chart.
type DailyClicks struct {
	Day    string `json:"name"`
	Clicks int64  `json:"clicks"`
}

// ClickStore is the append-only click history of registered links.
type ClickStore interface {
	Insert(ctx context.Context, event *models.ClickEvent) error
	FindByLink(ctx context.Context, linkID uint) ([]models.ClickEvent, error)
	DeleteByLink(ctx context.Context, linkID uint) error
	CountUniqueIPs(ctx context.Context, linkID uint) (int64, error)
	CountPerDay(ctx context.Context, linkID uint, since time.Time) ([]DailyClicks, error)
}

// UserStore backs registration, login and profile editing.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}
