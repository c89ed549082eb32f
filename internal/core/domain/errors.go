package domain

import "errors"

// Wallet errors.
var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidBalance    = errors.New("invalid balance")
	ErrInvalidCurrency   = errors.New("invalid currency")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrCurrencyMismatch  = errors.New("currency mismatch")
	ErrMissingWallet     = errors.New("wallet is required")
	ErrInvalidRecipient  = errors.New("invalid recipient")
)

// Product errors.
var (
	ErrInvalidType          = errors.New("invalid type")
	ErrCurrencyNotAvailable = errors.New("currency not available for this product")
)
