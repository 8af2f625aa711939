package services

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/Gautam5514/url-shortner/models"
	"github.com/Gautam5514/url-shortner/shortcode"
	"github.com/Gautam5514/url-shortner/storage"
)

const defaultTitle = "Untitled Link"

var (
	ErrMissingURL    = errors.New("original URL is required")
	ErrInvalidURL    = errors.New("original URL must be an absolute URL")
	ErrInvalidStatus = errors.New("status must be Active or Inactive")
	ErrNotOwner      = errors.New("not authorized for this link")
)

type CreateLinkInput struct {
	OriginalURL string
	CustomCode  string
	Title       string
	Description string
}

type UpdateLinkInput struct {
	OriginalURL *string
	Title       *string
	Description *string
	Status      *string
}

type LinkStats struct {
	TotalClicks    int64                 `json:"totalClicks"`
	UniqueClicks   int64                 `json:"uniqueClicks"`
	ClicksOverTime []storage.DailyClicks `json:"clicksOverTime"`
}

// LinkService issues short links and handles the owner-facing CRUD. Code
// uniqueness is ultimately the store's constraint; for auto-generated codes a
// constraint rejection is retried with a fresh code and never reaches the
// caller.
type LinkService struct {
	links   storage.LinkStore
	guests  storage.GuestStore
	clicks  storage.ClickStore
	baseURL string
}

func NewLinkService(links storage.LinkStore, guests storage.GuestStore, clicks storage.ClickStore, baseURL string) *LinkService {
	return &LinkService{links: links, guests: guests, clicks: clicks, baseURL: baseURL}
}

// Create issues a registered link owned by userID. A custom code is used
// verbatim and a conflict is reported; an auto-generated code is retried
// until an unused one lands.
func (s *LinkService) Create(ctx context.Context, userID uint, in CreateLinkInput) (*models.Link, error) {
	if err := validateURL(in.OriginalURL); err != nil {
		return nil, err
	}

	title := in.Title
	if title == "" {
		title = defaultTitle
	}

	link := &models.Link{
		UserID:      userID,
		OriginalURL: in.OriginalURL,
		Title:       title,
		Description: in.Description,
		Status:      models.StatusActive,
	}

	if in.CustomCode != "" {
		link.ShortCode = in.CustomCode
		if err := s.links.Insert(ctx, link); err != nil {
			return nil, err
		}
	} else {
		if err := s.insertWithFreshCode(ctx, link); err != nil {
			return nil, err
		}
	}

	link.ShortURL = s.ShortURL(link.ShortCode)
	return link, nil
}

// CreateGuest issues an anonymous link that the store expires after 24 hours.
func (s *LinkService) CreateGuest(ctx context.Context, originalURL string) (*models.GuestLink, error) {
	if err := validateURL(originalURL); err != nil {
		return nil, err
	}

	link := &models.GuestLink{
		OriginalURL: originalURL,
		CreatedAt:   time.Now(),
	}

	for {
		code, err := shortcode.Generate()
		if err != nil {
			return nil, err
		}
		link.ShortCode = code

		err = s.guests.Insert(ctx, link)
		if errors.Is(err, storage.ErrCodeTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}

	link.ShortURL = s.ShortURL(link.ShortCode)
	return link, nil
}

// insertWithFreshCode is the collision retry loop: mint a code, check it is
// unused, insert. Losing the insert race to a concurrent request is treated
// the same as the pre-check finding the code taken.
func (s *LinkService) insertWithFreshCode(ctx context.Context, link *models.Link) error {
	for {
		code, err := shortcode.Generate()
		if err != nil {
			return err
		}

		_, err = s.links.FindByCode(ctx, code)
		if err == nil {
			continue
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		link.ShortCode = code
		err = s.links.Insert(ctx, link)
		if errors.Is(err, storage.ErrCodeTaken) {
			continue
		}
		return err
	}
}

func (s *LinkService) Get(ctx context.Context, userID, id uint) (*models.Link, error) {
	link, err := s.ownedLink(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	link.ShortURL = s.ShortURL(link.ShortCode)
	return link, nil
}

func (s *LinkService) List(ctx context.Context, userID uint) ([]models.Link, error) {
	links, err := s.links.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range links {
		links[i].ShortURL = s.ShortURL(links[i].ShortCode)
	}
	return links, nil
}

func (s *LinkService) Update(ctx context.Context, userID, id uint, in UpdateLinkInput) (*models.Link, error) {
	link, err := s.ownedLink(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.OriginalURL != nil {
		if err := validateURL(*in.OriginalURL); err != nil {
			return nil, err
		}
		link.OriginalURL = *in.OriginalURL
	}
	if in.Title != nil {
		link.Title = *in.Title
	}
	if in.Description != nil {
		link.Description = *in.Description
	}
	if in.Status != nil {
		if *in.Status != models.StatusActive && *in.Status != models.StatusInactive {
			return nil, ErrInvalidStatus
		}
		link.Status = *in.Status
	}

	if err := s.links.Update(ctx, link); err != nil {
		return nil, err
	}
	link.ShortURL = s.ShortURL(link.ShortCode)
	return link, nil
}

// Delete removes the link and all of its click events.
func (s *LinkService) Delete(ctx context.Context, userID, id uint) error {
	link, err := s.ownedLink(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.links.Delete(ctx, link.ID)
}

// Stats aggregates the click history of an owned link: the lifetime counter,
// distinct visitor addresses, and a 30-day daily series for the chart.
func (s *LinkService) Stats(ctx context.Context, userID, id uint) (*LinkStats, error) {
	link, err := s.ownedLink(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	unique, err := s.clicks.CountUniqueIPs(ctx, link.ID)
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -30)
	daily, err := s.clicks.CountPerDay(ctx, link.ID, since)
	if err != nil {
		return nil, err
	}

	return &LinkStats{
		TotalClicks:    link.Clicks,
		UniqueClicks:   unique,
		ClicksOverTime: daily,
	}, nil
}

func (s *LinkService) ShortURL(code string) string {
	return s.baseURL + "/" + code
}

func (s *LinkService) ownedLink(ctx context.Context, userID, id uint) (*models.Link, error) {
	link, err := s.links.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if link.UserID != userID {
		return nil, ErrNotOwner
	}
	return link, nil
}

func validateURL(raw string) error {
	if raw == "" {
		return ErrMissingURL
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}
