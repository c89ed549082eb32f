package redis

import (
	"context"
	"testing"
	"time"

	"peer-wallet/internal/core/domain"
	"peer-wallet/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTransferResult(fromID uuid.UUID, amount string) *ports.TransferResult {
	return &ports.TransferResult{
		FromID:      fromID,
		ToID:        uuid.New(),
		Amount:      decimal.RequireFromString(amount),
		Currency:    "EUR",
		FromBalance: decimal.RequireFromString("87.50"),
	}
}

func TestIdempotencyCache_PutAndGet(t *testing.T) {
	s, client := newTestClient(t)
	cache := NewIdempotencyCache(client)
	ctx := context.Background()
	payer := uuid.New()

	got, err := cache.Get(ctx, payer, "rent-march")
	assert.NoError(t, err)
	assert.Nil(t, got)

	want := newTransferResult(payer, "12.50")
	stored, err := cache.Put(ctx, payer, "rent-march", want, 24*time.Hour)
	require.NoError(t, err)
	assert.True(t, stored)

	got, err = cache.Get(ctx, payer, "rent-march")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.ToID, got.ToID)
	assert.True(t, want.Amount.Equal(got.Amount))
	assert.True(t, want.FromBalance.Equal(got.FromBalance))
	assert.Equal(t, "EUR", got.Currency)
	assert.True(t, s.Exists("idempotency:"+domain.BuildTransferIdempotencyKey(payer, "rent-march")))
}

func TestIdempotencyCache_KeysAreScopedToPayer(t *testing.T) {
	_, client := newTestClient(t)
	cache := NewIdempotencyCache(client)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	_, err := cache.Put(ctx, alice, "k", newTransferResult(alice, "1"), time.Hour)
	require.NoError(t, err)

	got, err := cache.Get(ctx, bob, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestIdempotencyCache_FirstResultWins(t *testing.T) {
	_, client := newTestClient(t)
	cache := NewIdempotencyCache(client)
	ctx := context.Background()
	payer := uuid.New()

	stored, err := cache.Put(ctx, payer, "k", newTransferResult(payer, "1"), time.Hour)
	require.NoError(t, err)
	assert.True(t, stored)

	stored, err = cache.Put(ctx, payer, "k", newTransferResult(payer, "2"), time.Hour)
	require.NoError(t, err)
	assert.False(t, stored)

	got, err := cache.Get(ctx, payer, "k")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1").Equal(got.Amount))
}

func TestIdempotencyCache_TTLExpiry(t *testing.T) {
	s, client := newTestClient(t)
	cache := NewIdempotencyCache(client)
	ctx := context.Background()
	payer := uuid.New()

	_, err := cache.Put(ctx, payer, "k", newTransferResult(payer, "1"), time.Second)
	require.NoError(t, err)

	s.FastForward(2 * time.Second)

	got, err := cache.Get(ctx, payer, "k")
	assert.NoError(t, err)
	assert.Nil(t, got, "expired key should return nil")
}

func TestIdempotencyCache_UnreadableEntry(t *testing.T) {
	s, client := newTestClient(t)
	cache := NewIdempotencyCache(client)
	payer := uuid.New()

	require.NoError(t, s.Set("idempotency:"+domain.BuildTransferIdempotencyKey(payer, "k"), "not-json"))

	_, err := cache.Get(context.Background(), payer, "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode transfer")
}

func TestIdempotencyCache_ServerDown(t *testing.T) {
	s, client := newTestClient(t)
	cache := NewIdempotencyCache(client)
	s.Close()

	_, err := cache.Get(context.Background(), uuid.New(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis idempotency get")
}
