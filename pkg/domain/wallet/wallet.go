// Package wallet models a wallet aggregate holding one balance per currency.
// Balances change only through the aggregate methods, and the materialized
// total is recomputed from them.
package wallet

import (
	"strings"

	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/domain/currency"
	"github.com/amirasaad/networth/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Balance is a single-currency amount inside a wallet.
type Balance struct {
	ID           uuid.UUID
	CurrencyID   uuid.UUID
	CurrencyType currency.Type
	Amount       decimal.Decimal
}

// Wallet owns its balances. TotalValue is expressed in the owner's base currency.
type Wallet struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Name       string
	Type       currency.Type
	Balances   []*Balance
	TotalValue decimal.Decimal
}

// ConvertFunc converts an amount held in currencyID into the base currency.
type ConvertFunc func(amount decimal.Decimal, currencyID uuid.UUID) (decimal.Decimal, error)

// New returns an empty wallet.
func New(userID uuid.UUID, name string, t currency.Type) (*Wallet, error) {
	name = strings.TrimSpace(name)
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if _, err := currency.ParseType("type", string(t)); err != nil {
		return nil, err
	}
	return &Wallet{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       name,
		Type:       t,
		TotalValue: decimal.Zero,
	}, nil
}

func ValidateName(name string) error {
	if name == "" || len(name) > 100 {
		return domain.NewValidationError("name", "must be between 1 and 100 characters")
	}
	return nil
}

// Balance returns the balance held in currencyID.
func (w *Wallet) Balance(currencyID uuid.UUID) (*Balance, bool) {
	for _, b := range w.Balances {
		if b.CurrencyID == currencyID {
			return b, true
		}
	}
	return nil, false
}

func (w *Wallet) checkType(t currency.Type) error {
	if t != w.Type {
		return domain.NewValidationError("currency_id", "currency type must match wallet type "+string(w.Type))
	}
	return nil
}

// AddBalance adds a new balance. A wallet holds at most one balance per currency.
func (w *Wallet) AddBalance(currencyID uuid.UUID, t currency.Type, amount decimal.Decimal) (*Balance, error) {
	if _, ok := w.Balance(currencyID); ok {
		return nil, domain.ErrAlreadyExists
	}
	if err := w.checkType(t); err != nil {
		return nil, err
	}
	if err := money.NonNegative("amount", amount); err != nil {
		return nil, err
	}
	b := &Balance{ID: uuid.New(), CurrencyID: currencyID, CurrencyType: t, Amount: amount}
	w.Balances = append(w.Balances, b)
	return b, nil
}

// RemoveBalance detaches the balance held in currencyID.
func (w *Wallet) RemoveBalance(currencyID uuid.UUID) (*Balance, error) {
	for i, b := range w.Balances {
		if b.CurrencyID == currencyID {
			w.Balances = append(w.Balances[:i], w.Balances[i+1:]...)
			return b, nil
		}
	}
	return nil, domain.ErrNotFound
}

// SetAmount overwrites an existing balance amount.
func (w *Wallet) SetAmount(currencyID uuid.UUID, amount decimal.Decimal) (*Balance, error) {
	b, ok := w.Balance(currencyID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if err := money.NonNegative("amount", amount); err != nil {
		return nil, err
	}
	b.Amount = amount
	return b, nil
}

// Apply adds a signed delta to the balance in currencyID. A credit to a
// missing balance opens it when the currency type matches the wallet.
// created reports whether a new balance was opened.
func (w *Wallet) Apply(currencyID uuid.UUID, t currency.Type, delta decimal.Decimal) (b *Balance, created bool, err error) {
	b, ok := w.Balance(currencyID)
	if !ok {
		if !delta.IsPositive() {
			return nil, false, domain.ErrInsufficientBalance
		}
		b, err = w.AddBalance(currencyID, t, delta)
		return b, err == nil, err
	}
	next := b.Amount.Add(delta)
	if next.IsNegative() {
		return nil, false, domain.ErrInsufficientBalance
	}
	if err = money.CheckPrecision("amount", next); err != nil {
		return nil, false, err
	}
	b.Amount = next
	return b, false, nil
}

// CanChangeType reports whether every balance matches t.
func (w *Wallet) CanChangeType(t currency.Type) error {
	for _, b := range w.Balances {
		if b.CurrencyType != t {
			return domain.NewValidationError("type", "wallet holds balances of another currency type")
		}
	}
	return nil
}

// Recompute sets TotalValue to the sum of converted balances and returns
// the change against the previous total.
func (w *Wallet) Recompute(convert ConvertFunc) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, b := range w.Balances {
		v, err := convert(b.Amount, b.CurrencyID)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(v)
	}
	if err := money.CheckPrecision("total_value", total); err != nil {
		return decimal.Zero, err
	}
	delta := total.Sub(w.TotalValue)
	w.TotalValue = total
	return delta, nil
}

// CurrencyIDs lists the currencies held by the wallet.
func (w *Wallet) CurrencyIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(w.Balances))
	for _, b := range w.Balances {
		ids = append(ids, b.CurrencyID)
	}
	return ids
}
