package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func newFundedPerson(t *testing.T, name, currency, balance string) *Person {
	t.Helper()
	p, err := NewPerson(name, currency)
	require.NoError(t, err)
	require.NoError(t, p.Wallet().SetBalance(dec(balance)))
	return p
}
