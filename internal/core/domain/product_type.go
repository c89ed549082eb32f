package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductType is a product category bound to a fixed TVA rate.
type ProductType string

const (
	ProductTypeFood ProductType = "food"
	ProductTypeTech ProductType = "tech"
)

var tvaRates = map[ProductType]decimal.Decimal{
	ProductTypeFood: decimal.RequireFromString("0.10"),
	ProductTypeTech: decimal.RequireFromString("0.20"),
}

// SupportedProductTypes lists the known categories.
func SupportedProductTypes() []ProductType {
	return []ProductType{ProductTypeFood, ProductTypeTech}
}

// IsSupported reports whether t has a TVA rate.
func (t ProductType) IsSupported() bool {
	_, ok := tvaRates[t]
	return ok
}

// TVA returns the tax rate of t, zero for unknown types.
func (t ProductType) TVA() decimal.Decimal {
	return tvaRates[t]
}

// ParseProductType validates a raw category name.
func ParseProductType(s string) (ProductType, error) {
	t := ProductType(s)
	if !t.IsSupported() {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
	return t, nil
}
