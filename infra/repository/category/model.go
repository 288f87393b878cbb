package category

import (
	"time"

	"github.com/google/uuid"
)

// Category is a predefined (UserID nil) or user-owned transaction category.
type Category struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID       *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_categories_user_name"`
	Name         string     `gorm:"size:100;not null;uniqueIndex:idx_categories_user_name"`
	Type         string     `gorm:"size:16;not null"`
	IsPredefined bool       `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Category) TableName() string {
	return "categories"
}
