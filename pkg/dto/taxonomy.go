package dto

import (
	"time"

	"github.com/google/uuid"
)

// CategoryCreate represents a new predefined (UserID nil) or user-owned category.
type CategoryCreate struct {
	ID           uuid.UUID
	UserID       *uuid.UUID
	Name         string
	Type         string
	IsPredefined bool
}

// CategoryUpdate lists the updatable category fields. Nil fields are left untouched.
type CategoryUpdate struct {
	Name *string `json:"name,omitempty"`
	Type *string `json:"type,omitempty"`
}

// CategoryRead represents a read-optimized view of a category.
type CategoryRead struct {
	ID           uuid.UUID  `json:"id"`
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	IsPredefined bool       `json:"is_predefined"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// AssetTypeCreate represents a new predefined (UserID nil) or user-owned asset type.
type AssetTypeCreate struct {
	ID           uuid.UUID
	UserID       *uuid.UUID
	Name         string
	IsPredefined bool
}

// AssetTypeUpdate lists the updatable asset type fields.
type AssetTypeUpdate struct {
	Name *string `json:"name,omitempty"`
}

// AssetTypeRead represents a read-optimized view of an asset type.
type AssetTypeRead struct {
	ID           uuid.UUID  `json:"id"`
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	Name         string     `json:"name"`
	IsPredefined bool       `json:"is_predefined"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
