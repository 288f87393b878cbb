package exchange

import (
	"time"

	"github.com/amirasaad/networth/infra/database"
	"github.com/google/uuid"
)

// Exchange stores one user-scoped directed rate: 1 From = Rate To.
type Exchange struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_exchanges_user_pair"`
	FromCurrencyID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_exchanges_user_pair"`
	ToCurrencyID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_exchanges_user_pair"`
	Rate           database.Money `gorm:"not null"`
	Date           time.Time      `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Exchange) TableName() string {
	return "exchanges"
}
