package transaction

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/amirasaad/networth/pkg/dto"
	transactionsvc "github.com/amirasaad/networth/pkg/service/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTransactionInput represents the request body for recording a transaction.
// INCOME needs to_wallet_id, EXPENSE needs from_wallet_id, TRANSFER needs both.
type CreateTransactionInput struct {
	Type         string          `json:"type" validate:"required"`
	FromWalletID *uuid.UUID      `json:"from_wallet_id,omitempty"`
	ToWalletID   *uuid.UUID      `json:"to_wallet_id,omitempty"`
	CategoryID   *uuid.UUID      `json:"category_id,omitempty"`
	CurrencyID   uuid.UUID       `json:"currency_id" validate:"required"`
	Amount       decimal.Decimal `json:"amount"`
	Date         *time.Time      `json:"date,omitempty"`
	Description  string          `json:"description" validate:"max=255"`
}

func (in *CreateTransactionInput) toInput() transactionsvc.Input {
	out := transactionsvc.Input{
		Type:         in.Type,
		FromWalletID: in.FromWalletID,
		ToWalletID:   in.ToWalletID,
		CategoryID:   in.CategoryID,
		CurrencyID:   in.CurrencyID,
		Amount:       in.Amount,
		Description:  in.Description,
	}
	if in.Date != nil {
		out.Date = *in.Date
	}
	return out
}

// UpdateTransactionInput lists the fields a transaction update may change.
// An explicit null category_id removes the category.
type UpdateTransactionInput struct {
	Type         *string          `json:"type,omitempty"`
	FromWalletID *uuid.UUID       `json:"from_wallet_id,omitempty"`
	ToWalletID   *uuid.UUID       `json:"to_wallet_id,omitempty"`
	CategoryID   OptionalUUID     `json:"category_id" swaggertype:"string" format:"uuid"`
	CurrencyID   *uuid.UUID       `json:"currency_id,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	Date         *time.Time       `json:"date,omitempty"`
	Description  *string          `json:"description,omitempty" validate:"omitempty,max=255"`
}

// OptionalUUID tells an absent JSON field apart from an explicit null.
type OptionalUUID struct {
	Set   bool
	Value *uuid.UUID
}

// UnmarshalJSON implements json.Unmarshaler. It only runs for fields present
// in the body.
func (o *OptionalUUID) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

func (in *UpdateTransactionInput) toUpdate() *dto.TransactionUpdate {
	return &dto.TransactionUpdate{
		Type:          in.Type,
		FromWalletID:  in.FromWalletID,
		ToWalletID:    in.ToWalletID,
		CategoryID:    in.CategoryID.Value,
		ClearCategory: in.CategoryID.Set && in.CategoryID.Value == nil,
		CurrencyID:    in.CurrencyID,
		Amount:        in.Amount,
		Date:          in.Date,
		Description:   in.Description,
	}
}
