package currency

import (
	"time"

	"github.com/google/uuid"
)

// Currency is a predefined (UserID nil) or user-owned currency row.
type Currency struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID       *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_currencies_user_code;uniqueIndex:idx_currencies_user_name;uniqueIndex:idx_currencies_user_symbol"`
	Code         string     `gorm:"size:10;not null;uniqueIndex:idx_currencies_user_code"`
	Name         string     `gorm:"size:50;not null;uniqueIndex:idx_currencies_user_name"`
	Symbol       string     `gorm:"size:10;not null;uniqueIndex:idx_currencies_user_symbol"`
	CurrencyType string     `gorm:"size:10;not null"`
	IsPredefined bool       `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Currency) TableName() string {
	return "currencies"
}
