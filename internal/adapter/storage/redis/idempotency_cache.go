package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"peer-wallet/internal/core/domain"
	"peer-wallet/internal/core/ports"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// IdempotencyCache remembers transfer results per payer and client key so a
// retried transfer returns the first outcome instead of moving money twice.
type IdempotencyCache struct {
	client goredis.UniversalClient
	prefix string
}

// NewIdempotencyCache creates a Redis-backed transfer result store.
func NewIdempotencyCache(client goredis.UniversalClient) *IdempotencyCache {
	return &IdempotencyCache{client: client, prefix: "idempotency:"}
}

// Get returns the transfer recorded for (personID, clientKey), or nil, nil
// when none is recorded.
func (c *IdempotencyCache) Get(ctx context.Context, personID uuid.UUID, clientKey string) (*ports.TransferResult, error) {
	raw, err := c.client.Get(ctx, c.key(personID, clientKey)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis idempotency get: %w", err)
	}

	var result ports.TransferResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode transfer %q: %w", clientKey, err)
	}
	return &result, nil
}

// Put records result unless the key already holds one; the first result
// wins. It reports whether result was stored. A zero ttl never expires.
func (c *IdempotencyCache) Put(ctx context.Context, personID uuid.UUID, clientKey string, result *ports.TransferResult, ttl time.Duration) (bool, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return false, fmt.Errorf("encode transfer %q: %w", clientKey, err)
	}
	stored, err := c.client.SetNX(ctx, c.key(personID, clientKey), raw, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis idempotency set: %w", err)
	}
	return stored, nil
}

func (c *IdempotencyCache) key(personID uuid.UUID, clientKey string) string {
	return c.prefix + domain.BuildTransferIdempotencyKey(personID, clientKey)
}
