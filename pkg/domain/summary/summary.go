// Package summary holds the per-user denormalized totals.
package summary

import (
	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Summary keeps NetWorth == WalletsValue + AssetsValue, all in BaseCurrencyID,
// and none of them negative.
type Summary struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	BaseCurrencyID uuid.UUID
	NetWorth       decimal.Decimal
	AssetsValue    decimal.Decimal
	WalletsValue   decimal.Decimal
}

// New returns an empty summary for userID.
func New(userID, baseCurrencyID uuid.UUID) *Summary {
	return &Summary{
		ID:             uuid.New(),
		UserID:         userID,
		BaseCurrencyID: baseCurrencyID,
		NetWorth:       decimal.Zero,
		AssetsValue:    decimal.Zero,
		WalletsValue:   decimal.Zero,
	}
}

// Apply adds signed deltas to the wallet and asset totals. It rejects the
// change if any total would become negative.
func (s *Summary) Apply(walletsDelta, assetsDelta decimal.Decimal) error {
	return s.Reset(s.WalletsValue.Add(walletsDelta), s.AssetsValue.Add(assetsDelta))
}

// Reset replaces both totals. Every total, net worth included, must stay
// within the amount precision.
func (s *Summary) Reset(walletsValue, assetsValue decimal.Decimal) error {
	if walletsValue.IsNegative() {
		return domain.NewValidationError("wallets_value", "would become negative")
	}
	if assetsValue.IsNegative() {
		return domain.NewValidationError("assets_value", "would become negative")
	}
	if err := money.CheckPrecision("wallets_value", walletsValue); err != nil {
		return err
	}
	if err := money.CheckPrecision("assets_value", assetsValue); err != nil {
		return err
	}
	if err := money.CheckPrecision("net_worth", walletsValue.Add(assetsValue)); err != nil {
		return err
	}
	s.WalletsValue = walletsValue
	s.AssetsValue = assetsValue
	s.NetWorth = walletsValue.Add(assetsValue)
	return nil
}
