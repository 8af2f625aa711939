package services

import (
	"context"
	"errors"

	"github.com/Gautam5514/url-shortner/models"
	"github.com/Gautam5514/url-shortner/storage"
)

// Resolution is the outcome of a successful lookup: exactly one of
// Registered or Guest is set.
type Resolution struct {
	Registered *models.Link
	Guest      *models.GuestLink
}

func (r *Resolution) IsGuest() bool {
	return r.Guest != nil
}

func (r *Resolution) OriginalURL() string {
	if r.Guest != nil {
		return r.Guest.OriginalURL
	}
	return r.Registered.OriginalURL
}

// Resolver maps a short code to its destination. Registered links are
// checked first and win over a guest link carrying the same code; the guest
// collection is only consulted on a registered miss. This ordering is part
// of the service's observable behavior and must not change.
type Resolver struct {
	links  storage.LinkStore
	guests storage.GuestStore
}

func NewResolver(links storage.LinkStore, guests storage.GuestStore) *Resolver {
	return &Resolver{links: links, guests: guests}
}

// Resolve returns storage.ErrNotFound for unknown codes and for registered
// links that are Inactive, so callers cannot tell a deactivated link from
// one that never existed.
func (r *Resolver) Resolve(ctx context.Context, code string) (*Resolution, error) {
	link, err := r.links.FindByCode(ctx, code)
	if err == nil {
		if !link.IsActive() {
			return nil, storage.ErrNotFound
		}
		return &Resolution{Registered: link}, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	guest, err := r.guests.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return &Resolution{Guest: guest}, nil
}
