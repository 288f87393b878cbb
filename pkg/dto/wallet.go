package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceCreate represents a new balance row inside a wallet.
type BalanceCreate struct {
	ID         uuid.UUID
	WalletID   uuid.UUID
	CurrencyID uuid.UUID
	Amount     decimal.Decimal
}

// BalanceRead represents a read-optimized view of a balance.
type BalanceRead struct {
	ID           uuid.UUID       `json:"id"`
	WalletID     uuid.UUID       `json:"wallet_id"`
	CurrencyID   uuid.UUID       `json:"currency_id"`
	CurrencyCode string          `json:"currency_code"`
	CurrencyType string          `json:"currency_type"`
	Amount       decimal.Decimal `json:"amount"`
}

// WalletCreate represents a new wallet with its initial balances.
type WalletCreate struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Name       string
	Type       string
	TotalValue decimal.Decimal
	Balances   []BalanceCreate
}

// WalletUpdate lists the updatable wallet fields. Nil fields are left untouched.
type WalletUpdate struct {
	Name       *string
	Type       *string
	TotalValue *decimal.Decimal
}

// WalletRead represents a read-optimized view of a wallet and its balances.
type WalletRead struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	TotalValue decimal.Decimal `json:"total_value"`
	Balances   []*BalanceRead  `json:"balances"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
