package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/soldiers/admin-gateway/internal/core/domain"
)

// ListCache stores each screen's last fetched list per session.
// Key format: list:<session_id>:<screen>
type ListCache struct {
	client *redis.Client
}

func NewListCache(client *redis.Client) *ListCache {
	return &ListCache{client: client}
}

func (c *ListCache) Get(ctx context.Context, sessionID, screen string) ([]domain.Record, bool, error) {
	data, err := c.client.Get(ctx, c.key(sessionID, screen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("list cache get: %w", err)
	}

	var records []domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, fmt.Errorf("list cache decode: %w", err)
	}
	return records, true, nil
}

func (c *ListCache) Set(ctx context.Context, sessionID, screen string, records []domain.Record, ttl time.Duration) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("list cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(sessionID, screen), data, ttl).Err()
}

func (c *ListCache) Invalidate(ctx context.Context, sessionID string, screens ...string) error {
	if len(screens) == 0 {
		return nil
	}
	keys := make([]string, 0, len(screens))
	for _, s := range screens {
		keys = append(keys, c.key(sessionID, s))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("list cache invalidate: %w", err)
	}
	return nil
}

func (c *ListCache) key(sessionID, screen string) string {
	return fmt.Sprintf("list:%s:%s", sessionID, screen)
}
