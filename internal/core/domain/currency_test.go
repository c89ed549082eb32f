package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		code    string
		wantErr bool
	}{
		{"USD", false},
		{"EUR", false},
		{"GBP", false},
		{"JPY", true},
		{"XYZ", true},
		{"usd", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			c, err := ParseCurrency(tt.code)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCurrency)
				assert.Empty(t, c)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, Currency(tt.code), c)
		})
	}
}

func TestSupportedCurrencies_ReturnsCopy(t *testing.T) {
	list := SupportedCurrencies()
	list[0] = "XXX"
	assert.Equal(t, CurrencyUSD, SupportedCurrencies()[0])
}

func TestProductType_TVA(t *testing.T) {
	tests := []struct {
		name string
		pt   ProductType
		want string
	}{
		{"food", ProductTypeFood, "0.1"},
		{"tech", ProductTypeTech, "0.2"},
		{"unknown", ProductType("toys"), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.want, tt.pt.TVA())
		})
	}
}

func TestParseProductType(t *testing.T) {
	pt, err := ParseProductType("tech")
	assert.NoError(t, err)
	assert.Equal(t, ProductTypeTech, pt)

	_, err = ParseProductType("invalid_type")
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount(" 12.50 ")
	assert.NoError(t, err)
	assertDecimal(t, "12.5", d)

	d, err = ParseAmount("-999999999999999999.99")
	assert.NoError(t, err)
	assertDecimal(t, "-999999999999999999.99", d)

	for _, s := range []string{"twelve", "", "1e5000000", "1E2", "0x10", ".5", "+5", "1234567890123456789", "1,50"} {
		_, err = ParseAmount(s)
		assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", s)
	}
}

func TestFitsStorage(t *testing.T) {
	assert.True(t, FitsStorage(dec("999999999999999999.99")))
	assert.True(t, FitsStorage(dec("-999999999999999999.99")))
	assert.False(t, FitsStorage(dec("1000000000000000000")))
	assert.False(t, FitsStorage(dec("-1000000000000000000")))
}

func TestHasMoneyScale(t *testing.T) {
	assert.True(t, HasMoneyScale(dec("10")))
	assert.True(t, HasMoneyScale(dec("10.25")))
	assert.False(t, HasMoneyScale(dec("10.255")))
}
