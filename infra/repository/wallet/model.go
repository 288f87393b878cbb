package wallet

import (
	"time"

	"github.com/amirasaad/networth/infra/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet is a named container of per-currency balances.
type Wallet struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_wallets_user_name"`
	Name       string         `gorm:"size:100;not null;uniqueIndex:idx_wallets_user_name"`
	Type       string         `gorm:"size:10;not null"`
	TotalValue database.Money `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Wallet) TableName() string {
	return "wallets"
}

// Balance is the amount of one currency held in a wallet.
type Balance struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	WalletID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_wallet_balances_wallet_currency"`
	CurrencyID uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_wallet_balances_wallet_currency"`
	Amount     database.Money `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Balance) TableName() string {
	return "wallet_balances"
}

// balanceRow is a balance joined with its currency.
type balanceRow struct {
	ID           uuid.UUID
	WalletID     uuid.UUID
	CurrencyID   uuid.UUID
	Amount       decimal.Decimal
	CurrencyCode string
	CurrencyType string
}
