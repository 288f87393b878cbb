package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionCreate represents a new transaction row.
type TransactionCreate struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	FromWalletID *uuid.UUID
	ToWalletID   *uuid.UUID
	CategoryID   *uuid.UUID
	CurrencyID   uuid.UUID
	Type         string
	Amount       decimal.Decimal
	Date         time.Time
	Description  string
}

// TransactionUpdate lists the updatable transaction fields. Nil fields are
// left untouched; the wallet not used by the resulting type is cleared.
type TransactionUpdate struct {
	FromWalletID *uuid.UUID `json:"from_wallet_id,omitempty"`
	ToWalletID   *uuid.UUID `json:"to_wallet_id,omitempty"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	// ClearCategory removes the category; CategoryID is ignored when set.
	ClearCategory bool             `json:"-"`
	CurrencyID    *uuid.UUID       `json:"currency_id,omitempty"`
	Type          *string          `json:"type,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Date          *time.Time       `json:"date,omitempty"`
	Description   *string          `json:"description,omitempty"`
}

// TransactionRead represents a read-optimized view of a transaction.
type TransactionRead struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	FromWalletID *uuid.UUID      `json:"from_wallet_id,omitempty"`
	ToWalletID   *uuid.UUID      `json:"to_wallet_id,omitempty"`
	CategoryID   *uuid.UUID      `json:"category_id,omitempty"`
	CurrencyID   uuid.UUID       `json:"currency_id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TransactionFilter narrows transaction listings. A zero PageSize returns every match.
type TransactionFilter struct {
	Type       *string
	WalletID   *uuid.UUID
	CategoryID *uuid.UUID
	CurrencyID *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	Page       int
	PageSize   int
}

// CategoryTotal is the base-currency sum of one category's transactions.
type CategoryTotal struct {
	CategoryID *uuid.UUID      `json:"category_id,omitempty"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"total"`
}

// TransactionStatistics groups transaction sums by type and category in base currency.
type TransactionStatistics struct {
	BaseCurrencyID uuid.UUID                  `json:"base_currency_id"`
	Count          int                        `json:"count"`
	ByType         map[string]decimal.Decimal `json:"by_type"`
	ByCategory     []CategoryTotal            `json:"by_category"`
}
