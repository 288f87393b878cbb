// Package asset models holdings valued outside wallets.
package asset

import (
	"strings"

	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Asset is a named holding valued in a single currency.
type Asset struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AssetTypeID *uuid.UUID
	CurrencyID  uuid.UUID
	Name        string
	Value       decimal.Decimal
}

// New validates and returns an asset.
func New(userID uuid.UUID, name string, value decimal.Decimal, currencyID uuid.UUID, assetTypeID *uuid.UUID) (*Asset, error) {
	a := &Asset{
		ID:          uuid.New(),
		UserID:      userID,
		AssetTypeID: assetTypeID,
		CurrencyID:  currencyID,
		Name:        strings.TrimSpace(name),
		Value:       value,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Asset) Validate() error {
	if err := ValidateName(a.Name); err != nil {
		return err
	}
	return money.Positive("value", a.Value)
}

// ValidateName requires 3 to 100 characters.
func ValidateName(name string) error {
	n := len([]rune(name))
	if n < 3 || n > 100 {
		return domain.NewValidationError("name", "must be between 3 and 100 characters")
	}
	return nil
}
