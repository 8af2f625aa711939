package services

import (
	"context"
	"sync"
	"time"

	"github.com/Gautam5514/url-shortner/models"
	"github.com/Gautam5514/url-shortner/storage"
)

// In-memory stores implementing the storage contracts, including the
// short-code uniqueness constraint and the guest TTL.

type memLinkStore struct {
	mu     sync.Mutex
	seq    uint
	byID   map[uint]*models.Link
	clicks *memClickStore // cascade target for Delete

	findErr       error
	rejectInserts int // force this many ErrCodeTaken results
}

func newMemLinkStore(clicks *memClickStore) *memLinkStore {
	return &memLinkStore{byID: make(map[uint]*models.Link), clicks: clicks}
}

func (s *memLinkStore) FindByCode(_ context.Context, code string) (*models.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	for _, l := range s.byID {
		if l.ShortCode == code {
			cp := *l
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *memLinkStore) FindByID(_ context.Context, id uint) (*models.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.byID[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (s *memLinkStore) FindByUser(_ context.Context, userID uint) ([]models.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Link
	for _, l := range s.byID {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (s *memLinkStore) Insert(_ context.Context, link *models.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rejectInserts > 0 {
		s.rejectInserts--
		return storage.ErrCodeTaken
	}
	for _, l := range s.byID {
		if l.ShortCode == link.ShortCode {
			return storage.ErrCodeTaken
		}
	}
	s.seq++
	link.ID = s.seq
	link.CreatedAt = time.Now()
	link.UpdatedAt = link.CreatedAt
	cp := *link
	s.byID[link.ID] = &cp
	return nil
}

func (s *memLinkStore) Update(_ context.Context, link *models.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[link.ID]; !ok {
		return storage.ErrNotFound
	}
	link.UpdatedAt = time.Now()
	cp := *link
	s.byID[link.ID] = &cp
	return nil
}

func (s *memLinkStore) IncrementClicks(_ context.Context, id uint, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.byID[id]
	if !ok {
		return storage.ErrNotFound
	}
	l.Clicks += delta
	return nil
}

func (s *memLinkStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	delete(s.byID, id)
	s.mu.Unlock()
	if s.clicks != nil {
		return s.clicks.DeleteByLink(ctx, id)
	}
	return nil
}

type memGuestStore struct {
	mu     sync.Mutex
	byCode map[string]*models.GuestLink
	now    func() time.Time

	incrErr       error
	rejectInserts int
}

func newMemGuestStore() *memGuestStore {
	return &memGuestStore{byCode: make(map[string]*models.GuestLink), now: time.Now}
}

func (s *memGuestStore) expired(l *models.GuestLink) bool {
	return s.now().Sub(l.CreatedAt) >= storage.GuestTTL
}

func (s *memGuestStore) FindByCode(_ context.Context, code string) (*models.GuestLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.byCode[code]
	if !ok || s.expired(l) {
		return nil, storage.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (s *memGuestStore) Insert(_ context.Context, link *models.GuestLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rejectInserts > 0 {
		s.rejectInserts--
		return storage.ErrCodeTaken
	}
	if l, ok := s.byCode[link.ShortCode]; ok && !s.expired(l) {
		return storage.ErrCodeTaken
	}
	cp := *link
	s.byCode[link.ShortCode] = &cp
	return nil
}

func (s *memGuestStore) IncrementClicks(_ context.Context, code string, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.incrErr != nil {
		return s.incrErr
	}
	l, ok := s.byCode[code]
	if !ok || s.expired(l) {
		return storage.ErrNotFound
	}
	l.Clicks += delta
	return nil
}

type memClickStore struct {
	mu     sync.Mutex
	seq    uint
	events []models.ClickEvent

	insertErr error
}

func newMemClickStore() *memClickStore {
	return &memClickStore{}
}

func (s *memClickStore) Insert(_ context.Context, event *models.ClickEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	s.seq++
	event.ID = s.seq
	s.events = append(s.events, *event)
	return nil
}

func (s *memClickStore) FindByLink(_ context.Context, linkID uint) ([]models.ClickEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ClickEvent
	for _, e := range s.events {
		if e.LinkID == linkID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memClickStore) DeleteByLink(_ context.Context, linkID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.events[:0]
	for _, e := range s.events {
		if e.LinkID != linkID {
			kept = append(kept, e)
		}
	}
	s.events = kept
	return nil
}

func (s *memClickStore) CountUniqueIPs(_ context.Context, linkID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ips := make(map[string]bool)
	for _, e := range s.events {
		if e.LinkID == linkID {
			ips[e.IPAddress] = true
		}
	}
	return int64(len(ips)), nil
}

func (s *memClickStore) CountPerDay(_ context.Context, linkID uint, since time.Time) ([]storage.DailyClicks, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	perDay := make(map[string]int64)
	for _, e := range s.events {
		if e.LinkID == linkID && !e.Timestamp.Before(since) {
			perDay[e.Timestamp.Format("2006-01-02")]++
		}
	}
	var out []storage.DailyClicks
	for day, n := range perDay {
		out = append(out, storage.DailyClicks{Day: day, Clicks: n})
	}
	return out, nil
}
