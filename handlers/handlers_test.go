package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/Gautam5514/url-shortner/models"
	"github.com/Gautam5514/url-shortner/storage"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Minimal in-memory stores for handler tests.

type stubLinkStore struct {
	mu   sync.Mutex
	seq  uint
	byID map[uint]*models.Link

	findErr error
}

func newStubLinkStore() *stubLinkStore {
	return &stubLinkStore{byID: make(map[uint]*models.Link)}
}

func (s *stubLinkStore) FindByCode(_ context.Context, code string) (*models.Link, error) {
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

func (s *stubLinkStore) FindByID(_ context.Context, id uint) (*models.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.byID[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (s *stubLinkStore) FindByUser(_ context.Context, userID uint) ([]models.Link, error) {
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

func (s *stubLinkStore) Insert(_ context.Context, link *models.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.byID {
		if l.ShortCode == link.ShortCode {
			return storage.ErrCodeTaken
		}
	}
	s.seq++
	link.ID = s.seq
	cp := *link
	s.byID[link.ID] = &cp
	return nil
}

func (s *stubLinkStore) Update(_ context.Context, link *models.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *link
	s.byID[link.ID] = &cp
	return nil
}

func (s *stubLinkStore) IncrementClicks(_ context.Context, id uint, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.byID[id]; ok {
		l.Clicks += delta
	}
	return nil
}

func (s *stubLinkStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
	return nil
}

type stubGuestStore struct {
	mu     sync.Mutex
	byCode map[string]*models.GuestLink
}

func newStubGuestStore() *stubGuestStore {
	return &stubGuestStore{byCode: make(map[string]*models.GuestLink)}
}

func (s *stubGuestStore) FindByCode(_ context.Context, code string) (*models.GuestLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.byCode[code]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (s *stubGuestStore) Insert(_ context.Context, link *models.GuestLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byCode[link.ShortCode]; ok {
		return storage.ErrCodeTaken
	}
	cp := *link
	s.byCode[link.ShortCode] = &cp
	return nil
}

func (s *stubGuestStore) IncrementClicks(_ context.Context, code string, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.byCode[code]
	if !ok {
		return storage.ErrNotFound
	}
	l.Clicks += delta
	return nil
}

type stubClickStore struct {
	mu     sync.Mutex
	events []models.ClickEvent
}

func newStubClickStore() *stubClickStore {
	return &stubClickStore{}
}

func (s *stubClickStore) Insert(_ context.Context, event *models.ClickEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, *event)
	return nil
}

func (s *stubClickStore) FindByLink(_ context.Context, linkID uint) ([]models.ClickEvent, error) {
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

func (s *stubClickStore) DeleteByLink(_ context.Context, linkID uint) error {
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

func (s *stubClickStore) CountUniqueIPs(_ context.Context, linkID uint) (int64, error) {
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

func (s *stubClickStore) CountPerDay(_ context.Context, linkID uint, since time.Time) ([]storage.DailyClicks, error) {
	return nil, nil
}
