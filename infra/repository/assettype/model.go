package assettype

import (
	"time"

	"github.com/google/uuid"
)

// AssetType is a predefined (UserID nil) or user-owned asset classification.
type AssetType struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID       *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_asset_types_user_name"`
	Name         string     `gorm:"size:100;not null;uniqueIndex:idx_asset_types_user_name"`
	IsPredefined bool       `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (AssetType) TableName() string {
	return "asset_types"
}
