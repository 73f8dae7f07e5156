package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jotpad/jotpad/internal/note"
	"github.com/redis/go-redis/v9"
)

// CachedRepo wraps another Repository and caches the full List result in
// Redis as JSON under a single key. Insert writes through and drops the
// cached list so the next List rebuilds it. A cache miss or a Redis error
// falls back to the inner repository.
type CachedRepo struct {
	inner  Repository
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewCachedRepo creates a caching wrapper. Key may be empty, defaulting to
// "jotpad:notes". A zero ttl stores the list without expiry.
func NewCachedRepo(inner Repository, client *redis.Client, key string, ttl time.Duration) *CachedRepo {
	if key == "" {
		key = "jotpad:notes"
	}
	return &CachedRepo{inner: inner, client: client, key: key, ttl: ttl}
}

func (c *CachedRepo) Insert(ctx context.Context, n *note.Note) (string, error) {
	id, err := c.inner.Insert(ctx, n)
	if err != nil {
		return "", err
	}
	// stale list must not outlive the write
	_ = c.client.Del(ctx, c.key).Err()
	return id, nil
}

func (c *CachedRepo) List(ctx context.Context) ([]*note.Note, error) {
	b, err := c.client.Get(ctx, c.key).Bytes()
	if err == nil {
		var notes []*note.Note
		if err := json.Unmarshal(b, &notes); err == nil {
			return notes, nil
		}
		// undecodable payload: drop it and rebuild below
		_ = c.client.Del(ctx, c.key).Err()
	} else if err != redis.Nil {
		// Redis unavailable: serve from the inner repository without caching
		return c.inner.List(ctx)
	}

	notes, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(notes); err == nil {
		_ = c.client.Set(ctx, c.key, b, c.ttl).Err()
	}
	return notes, nil
}
