package asset

import (
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateAssetInput represents the request body for creating an asset.
type CreateAssetInput struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Value       decimal.Decimal `json:"value"`
	CurrencyID  uuid.UUID       `json:"currency_id" validate:"required"`
	AssetTypeID *uuid.UUID      `json:"asset_type_id,omitempty"`
}

// UpdateAssetInput lists the fields an asset update may change.
type UpdateAssetInput struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,max=100"`
	Value       *decimal.Decimal `json:"value,omitempty"`
	CurrencyID  *uuid.UUID       `json:"currency_id,omitempty"`
	AssetTypeID *uuid.UUID       `json:"asset_type_id,omitempty"`
}

func (in *UpdateAssetInput) toUpdate() *dto.AssetUpdate {
	return &dto.AssetUpdate{
		AssetTypeID: in.AssetTypeID,
		CurrencyID:  in.CurrencyID,
		Name:        in.Name,
		Value:       in.Value,
	}
}
