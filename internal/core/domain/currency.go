package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimals kept for monetary amounts.
const MoneyScale int32 = 2

// Currency is an ISO 4217 code from the supported set.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

var supportedCurrencies = []Currency{CurrencyUSD, CurrencyEUR, CurrencyGBP}

// SupportedCurrencies returns the supported codes in declaration order.
func SupportedCurrencies() []Currency {
	out := make([]Currency, len(supportedCurrencies))
	copy(out, supportedCurrencies)
	return out
}

// IsSupported reports whether c belongs to the supported set.
func (c Currency) IsSupported() bool {
	for _, s := range supportedCurrencies {
		if c == s {
			return true
		}
	}
	return false
}

// ParseCurrency validates a raw code. Codes are case-sensitive.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(code)
	if !c.IsSupported() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	return c, nil
}

// MaxAmountDigits is the number of integer digits a stored amount can hold
// (NUMERIC(20,2)).
const MaxAmountDigits = 18

var (
	// amountRe accepts plain decimal notation only. Exponents are refused so
	// the size of the parsed value is bounded by the length of the text.
	amountRe = regexp.MustCompile(fmt.Sprintf(`^-?[0-9]{1,%d}(\.[0-9]{1,%d})?$`, MaxAmountDigits, MaxAmountDigits))

	amountLimit = decimal.New(1, MaxAmountDigits)
)

// ParseAmount parses a plain decimal string such as "12.50" with at most
// MaxAmountDigits integer digits.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !amountRe.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// FitsStorage reports whether d has at most MaxAmountDigits integer digits.
func FitsStorage(d decimal.Decimal) bool {
	return d.Abs().LessThan(amountLimit)
}

// HasMoneyScale reports whether d carries at most MoneyScale decimals.
func HasMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}
