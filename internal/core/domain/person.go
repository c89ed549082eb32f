package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Person owns exactly one wallet and moves money through it.
type Person struct {
	name   string
	wallet *Wallet
}

// NewPerson creates a person with an empty wallet in currency.
func NewPerson(name, currency string) (*Person, error) {
	w, err := NewWallet(currency)
	if err != nil {
		return nil, err
	}
	return &Person{name: name, wallet: w}, nil
}

// Name returns the person's name.
func (p *Person) Name() string { return p.name }

// SetName replaces the person's name.
func (p *Person) SetName(name string) { p.name = name }

// Wallet returns the owned wallet.
func (p *Person) Wallet() *Wallet { return p.wallet }

// SetWallet replaces the owned wallet. The previous one is discarded.
func (p *Person) SetWallet(w *Wallet) error {
	if w == nil {
		return ErrMissingWallet
	}
	p.wallet = w
	return nil
}

// HasFund reports whether the wallet balance is positive.
func (p *Person) HasFund() bool {
	return p.wallet.HasFund()
}

// TransferFund moves amount from p to other. Both wallets must share a
// currency. Either both sides change or neither does.
func (p *Person) TransferFund(amount decimal.Decimal, other *Person) error {
	if err := p.checkTransfer(amount, other); err != nil {
		return err
	}
	if err := p.wallet.RemoveFund(amount); err != nil {
		return err
	}
	// Cannot fail: amount was checked positive above.
	return other.wallet.AddFund(amount)
}

// DivideWallet sends round(balance/len(persons), 2) to every entry of persons,
// in order. Entries equal to p are processed like any other recipient.
// The whole plan is validated before the first transfer.
func (p *Person) DivideWallet(persons []*Person) error {
	part, err := p.DivisionShare(len(persons))
	if err != nil {
		return err
	}

	running := p.wallet.balance
	for _, r := range persons {
		if err := p.checkRecipient(r); err != nil {
			return err
		}
		if part.GreaterThan(running) {
			return fmt.Errorf("%w: requested %s, available %s %s", ErrInsufficientFunds, part, running, p.wallet.currency)
		}
		if r.wallet != p.wallet {
			running = running.Sub(part)
		}
	}

	for _, r := range persons {
		if err := p.TransferFund(part, r); err != nil {
			return err
		}
	}
	return nil
}

// BuyProduct pays the product price in the wallet currency.
func (p *Person) BuyProduct(product Pricer) error {
	price, err := product.Price(p.wallet.Currency())
	if err != nil {
		return err
	}
	return p.wallet.RemoveFund(price)
}

// DivisionShare is the amount each of count recipients would receive from
// DivideWallet given the current balance.
func (p *Person) DivisionShare(count int) (decimal.Decimal, error) {
	if count == 0 {
		return decimal.Zero, fmt.Errorf("%w: no recipients", ErrInvalidAmount)
	}
	part := p.wallet.balance.Div(decimal.NewFromInt(int64(count))).Round(MoneyScale)
	if !part.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: share of %s is zero", ErrInvalidAmount, p.wallet.balance)
	}
	return part, nil
}

func (p *Person) checkTransfer(amount decimal.Decimal, other *Person) error {
	if err := p.checkRecipient(other); err != nil {
		return err
	}
	return p.wallet.checkWithdrawal(amount)
}

func (p *Person) checkRecipient(other *Person) error {
	if other == nil || other.wallet == nil {
		return ErrInvalidRecipient
	}
	if other.wallet.currency != p.wallet.currency {
		return fmt.Errorf("%w: %s to %s", ErrCurrencyMismatch, p.wallet.currency, other.wallet.currency)
	}
	return nil
}
