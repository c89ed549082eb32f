package redis

import (
	"context"
	"testing"
	"time"

	"peer-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedEntry(t *testing.T) *domain.CatalogEntry {
	t.Helper()
	p, err := domain.NewProduct("Bread", []domain.Price{
		{Currency: domain.CurrencyGBP, Amount: decimal.RequireFromString("1.20")},
		{Currency: domain.CurrencyEUR, Amount: decimal.RequireFromString("1.45")},
	}, "food")
	require.NoError(t, err)
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.CatalogEntry{ID: uuid.New(), Product: p, CreatedAt: now, UpdatedAt: now}
}

func TestProductCache_SetAndGet(t *testing.T) {
	s, client := newTestClient(t)
	cache := NewProductCache(client)
	ctx := context.Background()
	e := newCachedEntry(t)

	miss, err := cache.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Nil(t, miss)

	require.NoError(t, cache.Set(ctx, e, 10*time.Minute))
	assert.Equal(t, 10*time.Minute, s.TTL("product:"+e.ID.String()))

	got, err := cache.Get(ctx, e.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, "Bread", got.Product.Name())
	assert.Equal(t, domain.ProductTypeFood, got.Product.Type())
	assert.Equal(t, []domain.Currency{domain.CurrencyGBP, domain.CurrencyEUR}, got.Product.Currencies())
	assert.True(t, e.CreatedAt.Equal(got.CreatedAt))

	price, err := got.Product.Price(domain.CurrencyGBP)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1.2").Equal(price))
}

func TestProductCache_Delete(t *testing.T) {
	_, client := newTestClient(t)
	cache := NewProductCache(client)
	ctx := context.Background()
	e := newCachedEntry(t)

	require.NoError(t, cache.Set(ctx, e, time.Minute))
	require.NoError(t, cache.Delete(ctx, e.ID))

	got, err := cache.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, cache.Delete(ctx, uuid.New()))
}

func TestProductCache_CorruptedSnapshot(t *testing.T) {
	s, client := newTestClient(t)
	cache := NewProductCache(client)
	id := uuid.New()

	require.NoError(t, s.Set("product:"+id.String(), "{not json"))

	got, err := cache.Get(context.Background(), id)
	require.Error(t, err)
	assert.Nil(t, got)
}

func TestProductCache_Expiry(t *testing.T) {
	s, client := newTestClient(t)
	cache := NewProductCache(client)
	ctx := context.Background()
	e := newCachedEntry(t)

	require.NoError(t, cache.Set(ctx, e, time.Second))
	s.FastForward(2 * time.Second)

	got, err := cache.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
