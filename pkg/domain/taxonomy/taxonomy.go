// Package taxonomy holds the named classifications attached to
// transactions (categories) and assets (asset types).
package taxonomy

import (
	"strings"

	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/domain/transaction"
	"github.com/google/uuid"
)

// Category classifies transactions of a single type.
type Category struct {
	ID    uuid.UUID
	Owner domain.Owner
	Name  string
	Type  transaction.Type
}

// AssetType classifies assets.
type AssetType struct {
	ID    uuid.UUID
	Owner domain.Owner
	Name  string
}

func NewCategory(owner domain.Owner, name string, t transaction.Type) (*Category, error) {
	name = strings.TrimSpace(name)
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if _, err := transaction.ParseType("type", string(t)); err != nil {
		return nil, err
	}
	return &Category{ID: uuid.New(), Owner: owner, Name: name, Type: t}, nil
}

func NewAssetType(owner domain.Owner, name string) (*AssetType, error) {
	name = strings.TrimSpace(name)
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return &AssetType{ID: uuid.New(), Owner: owner, Name: name}, nil
}

func ValidateName(name string) error {
	if name == "" || len(name) > 100 {
		return domain.NewValidationError("name", "must be between 1 and 100 characters")
	}
	return nil
}
