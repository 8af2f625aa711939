package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Gautam5514/url-shortner/models"
	"github.com/redis/go-redis/v9"
)

// RedisGuestStore keeps guest links in Redis under a 24h TTL. The record is
// one serialized value written with SET NX EX, so claiming the code, writing
// the payload and arming the expiry happen in a single command; a failed
// insert can never leave a TTL-less key behind. The click counter lives in a
// sibling guest:<code>:clicks key so it can be bumped with a plain INCRBY.
// Redis expiry is the only deletion path, an expired code simply reads as
// missing.
type RedisGuestStore struct {
	client *redis.Client
}

func NewRedisGuestStore(client *redis.Client) *RedisGuestStore {
	return &RedisGuestStore{client: client}
}

type guestRecord struct {
	OriginalURL string    `json:"original_url"`
	CreatedAt   time.Time `json:"created_at"`
}

func guestKey(code string) string {
	return "guest:" + code
}

func guestClicksKey(code string) string {
	return guestKey(code) + ":clicks"
}

func (s *RedisGuestStore) FindByCode(ctx context.Context, code string) (*models.GuestLink, error) {
	raw, err := s.client.Get(ctx, guestKey(code)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec guestRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, err
	}

	clicks, err := s.client.Get(ctx, guestClicksKey(code)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	return &models.GuestLink{
		ShortCode:   code,
		OriginalURL: rec.OriginalURL,
		CreatedAt:   rec.CreatedAt,
		Clicks:      clicks,
	}, nil
}

func (s *RedisGuestStore) Insert(ctx context.Context, link *models.GuestLink) error {
	payload, err := json.Marshal(guestRecord{
		OriginalURL: link.OriginalURL,
		CreatedAt:   link.CreatedAt.UTC(),
	})
	if err != nil {
		return err
	}

	// SETNX doubles as the uniqueness check.
	ok, err := s.client.SetNX(ctx, guestKey(link.ShortCode), payload, GuestTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrCodeTaken
	}
	return nil
}

func (s *RedisGuestStore) IncrementClicks(ctx context.Context, code string, delta int64) error {
	// Guard against resurrecting a link that expired between the redirect
	// and this write; a counter without its record would never be read.
	exists, err := s.client.Exists(ctx, guestKey(code)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}

	if err := s.client.IncrBy(ctx, guestClicksKey(code), delta).Err(); err != nil {
		return err
	}

	// The counter follows the record's remaining lifetime.
	ttl, err := s.client.TTL(ctx, guestKey(code)).Result()
	if err == nil && ttl > 0 {
		s.client.Expire(ctx, guestClicksKey(code), ttl)
	}
	return nil
}
