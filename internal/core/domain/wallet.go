package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Wallet holds a non-negative balance in one supported currency.
// It is not safe for concurrent use; callers serialise access per wallet.
type Wallet struct {
	balance  decimal.Decimal
	currency Currency
}

// NewWallet creates an empty wallet in the given currency.
func NewWallet(currency string) (*Wallet, error) {
	c, err := ParseCurrency(currency)
	if err != nil {
		return nil, err
	}
	return &Wallet{balance: decimal.Zero, currency: c}, nil
}

// RestoreWallet rebuilds a persisted wallet, enforcing the same invariants.
func RestoreWallet(currency string, balance decimal.Decimal) (*Wallet, error) {
	w, err := NewWallet(currency)
	if err != nil {
		return nil, err
	}
	if err := w.SetBalance(balance); err != nil {
		return nil, err
	}
	return w, nil
}

// Balance returns the current balance.
func (w *Wallet) Balance() decimal.Decimal {
	return w.balance
}

// Currency returns the wallet currency.
func (w *Wallet) Currency() Currency {
	return w.currency
}

// SetBalance overwrites the balance. Negative values are refused.
func (w *Wallet) SetBalance(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s", ErrInvalidBalance, amount)
	}
	w.balance = amount
	return nil
}

// SetCurrency changes the currency without converting the balance.
func (w *Wallet) SetCurrency(code string) error {
	c, err := ParseCurrency(code)
	if err != nil {
		return err
	}
	w.currency = c
	return nil
}

// AddFund credits a strictly positive amount.
func (w *Wallet) AddFund(amount decimal.Decimal) error {
	if err := checkPositive(amount); err != nil {
		return err
	}
	w.balance = w.balance.Add(amount)
	return nil
}

// RemoveFund debits a strictly positive amount not exceeding the balance.
func (w *Wallet) RemoveFund(amount decimal.Decimal) error {
	if err := w.checkWithdrawal(amount); err != nil {
		return err
	}
	w.balance = w.balance.Sub(amount)
	return nil
}

// HasFund reports whether the balance is strictly positive.
func (w *Wallet) HasFund() bool {
	return w.balance.IsPositive()
}

func (w *Wallet) checkWithdrawal(amount decimal.Decimal) error {
	if err := checkPositive(amount); err != nil {
		return err
	}
	if amount.GreaterThan(w.balance) {
		return fmt.Errorf("%w: requested %s, available %s %s", ErrInsufficientFunds, amount, w.balance, w.currency)
	}
	return nil
}

func checkPositive(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	return nil
}
