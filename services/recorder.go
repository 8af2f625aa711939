package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Gautam5514/url-shortner/models"
	"github.com/Gautam5514/url-shortner/storage"
)

// Click is one redirect to account for. GuestCode set means a guest link
// counter bump; otherwise LinkID points at a registered link and a full
// click event is written alongside the counter increment.
type Click struct {
	LinkID    uint
	GuestCode string
	Time      time.Time
	IPAddress string
	UserAgent string
	Referer   string
}

// ClickRecorder consumes clicks from a buffered queue on a background
// goroutine. Recording is best-effort: the redirect path never waits on
// these writes and every failure is logged and dropped, never returned.
type ClickRecorder struct {
	links  storage.LinkStore
	guests storage.GuestStore
	clicks storage.ClickStore
	logger *slog.Logger
	queue  chan Click
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

const (
	clickQueueSize = 1024
	writeTimeout   = 5 * time.Second
)

func NewClickRecorder(links storage.LinkStore, guests storage.GuestStore, clicks storage.ClickStore, logger *slog.Logger) *ClickRecorder {
	r := &ClickRecorder{
		links:  links,
		guests: guests,
		clicks: clicks,
		logger: logger,
		queue:  make(chan Click, clickQueueSize),
	}
	r.wg.Add(1)
	go r.run()
	return r
}

// Record enqueues a click without blocking. If the queue is full, or the
// recorder has been closed, the click is dropped; undercounting under
// pressure beats delaying redirects.
func (r *ClickRecorder) Record(c Click) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		r.logger.Warn("recorder closed, dropping click",
			"link_id", c.LinkID, "guest_code", c.GuestCode)
		return
	}
	select {
	case r.queue <- c:
	default:
		r.logger.Warn("click queue full, dropping click",
			"link_id", c.LinkID, "guest_code", c.GuestCode)
	}
}

// Close stops accepting clicks and waits for the queued ones to be written.
// Safe to call more than once and concurrently with Record.
func (r *ClickRecorder) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()
	r.wg.Wait()
}

func (r *ClickRecorder) run() {
	defer r.wg.Done()
	for c := range r.queue {
		r.process(c)
	}
}

func (r *ClickRecorder) process(c Click) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if c.GuestCode != "" {
		if err := r.guests.IncrementClicks(ctx, c.GuestCode, 1); err != nil {
			r.logger.Error("failed to count guest click",
				"guest_code", c.GuestCode, "error", err)
		}
		return
	}

	// The event insert and the counter increment are independent; run both
	// even if one fails.
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		event := &models.ClickEvent{
			LinkID:    c.LinkID,
			Timestamp: c.Time,
			IPAddress: c.IPAddress,
			UserAgent: c.UserAgent,
			Referer:   c.Referer,
		}
		if err := r.clicks.Insert(ctx, event); err != nil {
			r.logger.Error("failed to record click event",
				"link_id", c.LinkID, "error", err)
		}
	}()

	go func() {
		defer wg.Done()
		if err := r.links.IncrementClicks(ctx, c.LinkID, 1); err != nil {
			r.logger.Error("failed to increment click count",
				"link_id", c.LinkID, "error", err)
		}
	}()

	wg.Wait()
}
