package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CurrencyCreate represents a new predefined (UserID nil) or user-owned currency.
type CurrencyCreate struct {
	ID           uuid.UUID
	UserID       *uuid.UUID
	Code         string
	Name         string
	Symbol       string
	CurrencyType string
	IsPredefined bool
}

// CurrencyUpdate lists the updatable currency fields. Nil fields are left untouched.
type CurrencyUpdate struct {
	Code         *string `json:"code,omitempty"`
	Name         *string `json:"name,omitempty"`
	Symbol       *string `json:"symbol,omitempty"`
	CurrencyType *string `json:"currency_type,omitempty"`
}

// CurrencyRead represents a read-optimized view of a currency.
type CurrencyRead struct {
	ID           uuid.UUID  `json:"id"`
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	Code         string     `json:"code"`
	Name         string     `json:"name"`
	Symbol       string     `json:"symbol"`
	CurrencyType string     `json:"currency_type"`
	IsPredefined bool       `json:"is_predefined"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ExchangeCreate represents a new user-scoped rate row.
type ExchangeCreate struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	FromCurrencyID uuid.UUID
	ToCurrencyID   uuid.UUID
	Rate           decimal.Decimal
	Date           time.Time
}

// ExchangeUpdate lists the updatable rate fields. Nil fields are left untouched.
type ExchangeUpdate struct {
	FromCurrencyID *uuid.UUID       `json:"from_currency_id,omitempty"`
	ToCurrencyID   *uuid.UUID       `json:"to_currency_id,omitempty"`
	Rate           *decimal.Decimal `json:"rate,omitempty"`
	Date           *time.Time       `json:"date,omitempty"`
}

// ExchangeRead represents a read-optimized view of a rate row.
type ExchangeRead struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	FromCurrencyID uuid.UUID       `json:"from_currency_id"`
	ToCurrencyID   uuid.UUID       `json:"to_currency_id"`
	Rate           decimal.Decimal `json:"rate"`
	Date           time.Time       `json:"date"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// RateQuote is the resolved rate between two currencies for a user.
type RateQuote struct {
	FromCurrencyID uuid.UUID       `json:"from_currency_id"`
	ToCurrencyID   uuid.UUID       `json:"to_currency_id"`
	Rate           decimal.Decimal `json:"rate"`
	Inverse        bool            `json:"inverse"`
}
