package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Price is the amount of a product in one currency.
type Price struct {
	Currency Currency        `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// Pricer is anything that can be priced in a currency.
type Pricer interface {
	Price(currency Currency) (decimal.Decimal, error)
}

// Product is a purchasable item with per-currency prices and a TVA category.
type Product struct {
	name        string
	productType ProductType
	prices      []Price
}

// NewProduct builds a product. Invalid prices are dropped silently, an
// unsupported type fails and no product is returned.
func NewProduct(name string, prices []Price, productType string) (*Product, error) {
	t, err := ParseProductType(productType)
	if err != nil {
		return nil, err
	}
	p := &Product{name: name, productType: t, prices: []Price{}}
	p.SetPrices(prices)
	return p, nil
}

// Name returns the product label.
func (p *Product) Name() string { return p.name }

// SetName replaces the product label.
func (p *Product) SetName(name string) { p.name = name }

// Type returns the product category.
func (p *Product) Type() ProductType { return p.productType }

// SetType changes the category, refusing unsupported ones.
func (p *Product) SetType(productType string) error {
	t, err := ParseProductType(productType)
	if err != nil {
		return err
	}
	p.productType = t
	return nil
}

// TVA returns the tax rate of the current category.
func (p *Product) TVA() decimal.Decimal {
	return p.productType.TVA()
}

// SetPrices replaces the price list with the valid subset of prices.
// It never fails: when no entry survives filtering the previous list is kept,
// so callers must read Prices back to know whether the update took effect.
func (p *Product) SetPrices(prices []Price) {
	filtered := filterPrices(prices)
	if len(filtered) == 0 {
		return
	}
	p.prices = filtered
}

// Prices returns a copy of the current price list in insertion order.
func (p *Product) Prices() []Price {
	out := make([]Price, len(p.prices))
	copy(out, p.prices)
	return out
}

// Currencies lists the currencies the product is priced in, in insertion order.
func (p *Product) Currencies() []Currency {
	out := make([]Currency, 0, len(p.prices))
	for _, pr := range p.prices {
		out = append(out, pr.Currency)
	}
	return out
}

// Price returns the amount for currency.
func (p *Product) Price(currency Currency) (decimal.Decimal, error) {
	if !currency.IsSupported() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidCurrency, string(currency))
	}
	for _, pr := range p.prices {
		if pr.Currency == currency {
			return pr.Amount, nil
		}
	}
	return decimal.Zero, fmt.Errorf("%w: %s", ErrCurrencyNotAvailable, currency)
}

// filterPrices keeps supported currencies with a strictly positive amount.
// A repeated currency keeps its first position and its last amount.
func filterPrices(prices []Price) []Price {
	out := make([]Price, 0, len(prices))
	index := make(map[Currency]int, len(prices))
	for _, pr := range prices {
		if !pr.Currency.IsSupported() || !pr.Amount.IsPositive() {
			continue
		}
		if i, seen := index[pr.Currency]; seen {
			out[i].Amount = pr.Amount
			continue
		}
		index[pr.Currency] = len(out)
		out = append(out, pr)
	}
	return out
}
