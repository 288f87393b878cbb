// Package transaction defines income, expense and transfer records and the
// signed balance effects each one causes.
package transaction

import (
	"strings"
	"time"

	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Type string

const (
	Income   Type = "income"
	Expense  Type = "expense"
	Transfer Type = "transfer"
)

// ParseType validates a transaction or category type string.
func ParseType(field, s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case Income, Expense, Transfer:
		return t, nil
	default:
		return "", domain.NewValidationError(field, "must be one of income, expense, transfer")
	}
}

// Transaction moves Amount of CurrencyID into, out of, or between wallets.
type Transaction struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	FromWalletID *uuid.UUID
	ToWalletID   *uuid.UUID
	CategoryID   *uuid.UUID
	CurrencyID   uuid.UUID
	Type         Type
	Amount       decimal.Decimal
	Date         time.Time
	Description  string
}

// Validate checks the amount, the description and the wallet shape.
func (t *Transaction) Validate() error {
	if _, err := ParseType("type", string(t.Type)); err != nil {
		return err
	}
	if err := money.Positive("amount", t.Amount); err != nil {
		return err
	}
	if len(t.Description) > 255 {
		return domain.NewValidationError("description", "must be at most 255 characters")
	}
	return ValidateShape(t.Type, t.FromWalletID, t.ToWalletID)
}

// ValidateShape enforces which wallets a transaction type references.
func ValidateShape(typ Type, from, to *uuid.UUID) error {
	switch typ {
	case Income:
		if from != nil {
			return domain.NewValidationError("from_wallet_id", "must be absent for income")
		}
		if to == nil {
			return domain.NewValidationError("to_wallet_id", "is required for income")
		}
	case Expense:
		if from == nil {
			return domain.NewValidationError("from_wallet_id", "is required for expense")
		}
		if to != nil {
			return domain.NewValidationError("to_wallet_id", "must be absent for expense")
		}
	case Transfer:
		if from == nil {
			return domain.NewValidationError("from_wallet_id", "is required for transfer")
		}
		if to == nil {
			return domain.NewValidationError("to_wallet_id", "is required for transfer")
		}
		if *from == *to {
			return domain.NewValidationError("to_wallet_id", "must differ from from_wallet_id")
		}
	default:
		return domain.NewValidationError("type", "must be one of income, expense, transfer")
	}
	return nil
}

// Normalize drops the wallet reference the type does not use.
func (t *Transaction) Normalize() {
	switch t.Type {
	case Income:
		t.FromWalletID = nil
	case Expense:
		t.ToWalletID = nil
	}
}

// WalletIDs lists the wallets the transaction touches.
func (t *Transaction) WalletIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, 2)
	if t.FromWalletID != nil {
		ids = append(ids, *t.FromWalletID)
	}
	if t.ToWalletID != nil {
		ids = append(ids, *t.ToWalletID)
	}
	return ids
}

// Effects returns the signed balance changes the transaction causes.
func (t *Transaction) Effects() []Effect {
	var out []Effect
	if t.FromWalletID != nil && t.Type != Income {
		out = append(out, Effect{WalletID: *t.FromWalletID, CurrencyID: t.CurrencyID, Amount: t.Amount.Neg()})
	}
	if t.ToWalletID != nil && t.Type != Expense {
		out = append(out, Effect{WalletID: *t.ToWalletID, CurrencyID: t.CurrencyID, Amount: t.Amount})
	}
	return out
}
