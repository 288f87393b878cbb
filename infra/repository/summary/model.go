package summary

import (
	"time"

	"github.com/amirasaad/networth/infra/database"
	"github.com/google/uuid"
)

// Summary is the per-user aggregate row.
type Summary struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null"`
	BaseCurrencyID uuid.UUID      `gorm:"type:uuid;index;not null"`
	NetWorth       database.Money `gorm:"not null;default:0"`
	AssetsValue    database.Money `gorm:"not null;default:0"`
	WalletsValue   database.Money `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Summary) TableName() string {
	return "user_summaries"
}
