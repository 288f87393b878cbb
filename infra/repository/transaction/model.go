package transaction

import (
	"time"

	"github.com/amirasaad/networth/infra/database"
	"github.com/google/uuid"
)

// Transaction is a persisted income, expense or transfer.
type Transaction struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_transactions_user_date"`
	FromWalletID *uuid.UUID     `gorm:"type:uuid;index"`
	ToWalletID   *uuid.UUID     `gorm:"type:uuid;index"`
	CategoryID   *uuid.UUID     `gorm:"type:uuid;index"`
	CurrencyID   uuid.UUID      `gorm:"type:uuid;not null"`
	Type         string         `gorm:"size:16;not null"`
	Amount       database.Money `gorm:"not null"`
	Date         time.Time      `gorm:"not null;index:idx_transactions_user_date"`
	Description  string         `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
