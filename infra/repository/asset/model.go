package asset

import (
	"time"

	"github.com/amirasaad/networth/infra/database"
	"github.com/google/uuid"
)

// Asset is a user-owned valuable held outside wallets.
type Asset struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_assets_user_name"`
	AssetTypeID *uuid.UUID     `gorm:"type:uuid;index"`
	CurrencyID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name        string         `gorm:"size:100;not null;uniqueIndex:idx_assets_user_name"`
	Value       database.Money `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Asset) TableName() string {
	return "assets"
}
