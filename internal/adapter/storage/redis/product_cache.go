package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"peer-wallet/internal/core/domain"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// ProductCache implements ports.ProductCache with JSON snapshots under "product:".
type ProductCache struct {
	client goredis.UniversalClient
	prefix string
}

// NewProductCache creates a new Redis-backed product cache.
func NewProductCache(client goredis.UniversalClient) *ProductCache {
	return &ProductCache{
		client: client,
		prefix: "product:",
	}
}

type productSnapshot struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Type      string         `json:"type"`
	Prices    []domain.Price `json:"prices"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Get returns the cached entry, or nil, nil on a miss.
func (c *ProductCache) Get(ctx context.Context, id uuid.UUID) (*domain.CatalogEntry, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis product get: %w", err)
	}

	var snap productSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode product snapshot: %w", err)
	}
	product, err := domain.NewProduct(snap.Name, snap.Prices, snap.Type)
	if err != nil {
		return nil, fmt.Errorf("rebuild cached product %s: %w", snap.ID, err)
	}
	return &domain.CatalogEntry{
		ID:        snap.ID,
		Product:   product,
		CreatedAt: snap.CreatedAt,
		UpdatedAt: snap.UpdatedAt,
	}, nil
}

// Set stores a snapshot of entry for ttl.
func (c *ProductCache) Set(ctx context.Context, e *domain.CatalogEntry, ttl time.Duration) error {
	raw, err := json.Marshal(productSnapshot{
		ID:        e.ID,
		Name:      e.Product.Name(),
		Type:      string(e.Product.Type()),
		Prices:    e.Product.Prices(),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode product snapshot: %w", err)
	}
	if err := c.client.Set(ctx, c.key(e.ID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis product set: %w", err)
	}
	return nil
}

// Delete evicts an entry. Evicting a missing key is not an error.
func (c *ProductCache) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("redis product delete: %w", err)
	}
	return nil
}

func (c *ProductCache) key(id uuid.UUID) string {
	return c.prefix + id.String()
}
