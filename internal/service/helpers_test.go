package service

import (
	"context"
	"testing"
	"time"

	"peer-wallet/internal/core/domain"
	"peer-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTx implements pgx.Tx for testing and records how it ended.
type mockTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (m *mockTx) Rollback(_ context.Context) error {
	if !m.committed {
		m.rolledBack = true
	}
	return nil
}

func (m *mockTx) Commit(_ context.Context) error {
	m.committed = true
	return nil
}

func assertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, expectedCode, appErr.Code)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func newAccount(t *testing.T, name, currency, balance string) *domain.Account {
	t.Helper()
	p, err := domain.NewPerson(name, currency)
	require.NoError(t, err)
	require.NoError(t, p.Wallet().SetBalance(dec(balance)))
	now := time.Now().UTC()
	return &domain.Account{
		ID:           uuid.New(),
		Username:     name,
		PasswordHash: "$argon2id$hashed",
		Person:       p,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newEntry(t *testing.T, name, productType string, prices ...domain.Price) *domain.CatalogEntry {
	t.Helper()
	p, err := domain.NewProduct(name, prices, productType)
	require.NoError(t, err)
	now := time.Now().UTC()
	return &domain.CatalogEntry{ID: uuid.New(), Product: p, CreatedAt: now, UpdatedAt: now}
}

func price(currency domain.Currency, amount string) domain.Price {
	return domain.Price{Currency: currency, Amount: dec(amount)}
}
