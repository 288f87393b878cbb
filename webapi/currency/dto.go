package currency

import (
	"time"

	"github.com/amirasaad/networth/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CurrencyInput represents the request body for creating a user-owned currency.
type CurrencyInput struct {
	Code         string `json:"code" validate:"required,min=3,max=6"`
	Name         string `json:"name" validate:"required,max=100"`
	Symbol       string `json:"symbol" validate:"required,max=10"`
	CurrencyType string `json:"currency_type" validate:"required,oneof=fiat crypto"`
}

// UpdateCurrencyInput lists the fields a currency update may change.
type UpdateCurrencyInput struct {
	Code         *string `json:"code,omitempty" validate:"omitempty,min=3,max=6"`
	Name         *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Symbol       *string `json:"symbol,omitempty" validate:"omitempty,max=10"`
	CurrencyType *string `json:"currency_type,omitempty" validate:"omitempty,oneof=fiat crypto"`
}

func (in *UpdateCurrencyInput) toUpdate() *dto.CurrencyUpdate {
	return &dto.CurrencyUpdate{
		Code:         in.Code,
		Name:         in.Name,
		Symbol:       in.Symbol,
		CurrencyType: in.CurrencyType,
	}
}

// ExchangeInput represents the request body for recording a rate.
// One unit of from_currency_id is worth rate units of to_currency_id.
type ExchangeInput struct {
	FromCurrencyID uuid.UUID       `json:"from_currency_id" validate:"required"`
	ToCurrencyID   uuid.UUID       `json:"to_currency_id" validate:"required"`
	Rate           decimal.Decimal `json:"rate"`
	Date           *time.Time      `json:"date,omitempty"`
}

// UpdateExchangeInput lists the fields a rate update may change.
type UpdateExchangeInput struct {
	FromCurrencyID *uuid.UUID       `json:"from_currency_id,omitempty"`
	ToCurrencyID   *uuid.UUID       `json:"to_currency_id,omitempty"`
	Rate           *decimal.Decimal `json:"rate,omitempty"`
	Date           *time.Time       `json:"date,omitempty"`
}

func (in *UpdateExchangeInput) toUpdate() *dto.ExchangeUpdate {
	return &dto.ExchangeUpdate{
		FromCurrencyID: in.FromCurrencyID,
		ToCurrencyID:   in.ToCurrencyID,
		Rate:           in.Rate,
		Date:           in.Date,
	}
}
