package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetCreate represents a new asset row.
type AssetCreate struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AssetTypeID *uuid.UUID
	CurrencyID  uuid.UUID
	Name        string
	Value       decimal.Decimal
}

// AssetUpdate lists the updatable asset fields. Nil fields are left untouched.
type AssetUpdate struct {
	AssetTypeID *uuid.UUID       `json:"asset_type_id,omitempty"`
	CurrencyID  *uuid.UUID       `json:"currency_id,omitempty"`
	Name        *string          `json:"name,omitempty"`
	Value       *decimal.Decimal `json:"value,omitempty"`
}

// AssetRead represents a read-optimized view of an asset.
type AssetRead struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	AssetTypeID *uuid.UUID      `json:"asset_type_id,omitempty"`
	CurrencyID  uuid.UUID       `json:"currency_id"`
	Name        string          `json:"name"`
	Value       decimal.Decimal `json:"value"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AssetFilter narrows asset listings. A zero PageSize returns every match.
type AssetFilter struct {
	AssetTypeID *uuid.UUID
	CurrencyID  *uuid.UUID
	Name        string
	MinValue    *decimal.Decimal
	MaxValue    *decimal.Decimal
	Page        int
	PageSize    int
}
