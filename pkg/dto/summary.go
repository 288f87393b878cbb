package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SummaryCreate represents a new, empty user summary.
type SummaryCreate struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	BaseCurrencyID uuid.UUID
}

// SummaryUpdate lists the updatable summary fields. Nil fields are left untouched.
type SummaryUpdate struct {
	BaseCurrencyID *uuid.UUID
	NetWorth       *decimal.Decimal
	AssetsValue    *decimal.Decimal
	WalletsValue   *decimal.Decimal
}

// SummaryRead represents a read-optimized view of a user summary.
type SummaryRead struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	BaseCurrencyID uuid.UUID       `json:"base_currency_id"`
	NetWorth       decimal.Decimal `json:"net_worth"`
	AssetsValue    decimal.Decimal `json:"assets_value"`
	WalletsValue   decimal.Decimal `json:"wallets_value"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TotalValue is a single aggregate expressed in the base currency.
type TotalValue struct {
	Value          decimal.Decimal `json:"value"`
	BaseCurrencyID uuid.UUID       `json:"base_currency_id"`
	BaseCurrency   string          `json:"base_currency"`
	Display        string          `json:"display"`
}

// UserAppData is the summary together with its resolved base currency.
type UserAppData struct {
	Summary      *SummaryRead  `json:"summary"`
	BaseCurrency *CurrencyRead `json:"base_currency"`
}
