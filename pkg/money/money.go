// Package money holds the exact decimal rules shared by every monetary field.
//
// Invariants:
//   - Amounts carry at most Scale fractional digits.
//   - The integer part is strictly below 10^IntegerDigits.
//   - Conversion results are rounded half away from zero to Scale digits.
package money

import (
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/amirasaad/networth/pkg/domain"
	"github.com/shopspring/decimal"
)

const (
	// Scale is the number of fractional digits kept for every amount.
	Scale = 10
	// IntegerDigits bounds the integer part of an amount.
	IntegerDigits = 10
)

var (
	integerLimit = decimal.New(1, IntegerDigits)
	// Zero is the additive identity.
	Zero = decimal.Zero
	// One is the identity rate.
	One = decimal.NewFromInt(1)
)

// Parse reads a decimal string and checks its precision.
func Parse(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, domain.NewValidationError(field, "must be a decimal number")
	}
	if err := CheckPrecision(field, d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// CheckPrecision enforces the scale and integer-part limits.
func CheckPrecision(field string, d decimal.Decimal) error {
	if !d.Equal(d.Truncate(Scale)) {
		return domain.NewValidationError(field, "must have at most 10 decimal places")
	}
	if d.Abs().Cmp(integerLimit) >= 0 {
		return domain.NewValidationError(field, "integer part must have at most 10 digits")
	}
	return nil
}

// Positive checks precision and rejects zero and negative values.
func Positive(field string, d decimal.Decimal) error {
	if err := CheckPrecision(field, d); err != nil {
		return err
	}
	if !d.IsPositive() {
		return domain.NewValidationError(field, "must be greater than zero")
	}
	return nil
}

// NonNegative checks precision and rejects negative values.
func NonNegative(field string, d decimal.Decimal) error {
	if err := CheckPrecision(field, d); err != nil {
		return err
	}
	if d.IsNegative() {
		return domain.NewValidationError(field, "must not be negative")
	}
	return nil
}

// Round rounds d to Scale fractional digits.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

// Sum adds amounts exactly.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Display formats amount in the currency identified by code. ISO 4217 codes
// known to go-money use their symbol and minor units; anything else falls
// back to the plain decimal followed by the code.
func Display(amount decimal.Decimal, code string) string {
	cur := gomoney.GetCurrency(code)
	if cur == nil {
		return amount.String() + " " + code
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return gomoney.New(minor, cur.Code).Display()
}
