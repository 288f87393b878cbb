// Package currency defines currencies, their code rules, and exchange pair
// rules used by the per-user rate registry.
package currency

import (
	"strings"
	"time"
	"unicode"

	"github.com/amirasaad/networth/pkg/domain"
	"github.com/google/uuid"
)

// Type distinguishes fiat from crypto currencies. Wallets carry the same type.
type Type string

const (
	Fiat   Type = "fiat"
	Crypto Type = "crypto"
)

// ParseType validates a currency type string.
func ParseType(field, s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case Fiat, Crypto:
		return t, nil
	default:
		return "", domain.NewValidationError(field, "must be one of fiat, crypto")
	}
}

// Currency is either predefined (visible to all users) or owned by one user.
type Currency struct {
	ID        uuid.UUID
	Owner     domain.Owner
	Code      string
	Name      string
	Symbol    string
	Type      Type
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New validates and normalizes a currency definition.
func New(owner domain.Owner, code, name, symbol string, t Type) (*Currency, error) {
	c := &Currency{
		ID:        uuid.New(),
		Owner:     owner,
		Code:      NormalizeCode(code),
		Name:      strings.TrimSpace(name),
		Symbol:    strings.TrimSpace(symbol),
		Type:      t,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks every field rule of a currency.
func (c *Currency) Validate() error {
	if _, err := ParseType("currency_type", string(c.Type)); err != nil {
		return err
	}
	if err := ValidateCode(c.Code, c.Type); err != nil {
		return err
	}
	if c.Name == "" || len(c.Name) > 50 {
		return domain.NewValidationError("name", "must be between 1 and 50 characters")
	}
	if c.Symbol == "" || len([]rune(c.Symbol)) > 10 {
		return domain.NewValidationError("symbol", "must be between 1 and 10 characters")
	}
	return nil
}

// NormalizeCode trims and upper-cases a currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateCode enforces exactly 3 letters for fiat and 3 to 10
// alphanumerics for crypto.
func ValidateCode(code string, t Type) error {
	n := len(code)
	switch t {
	case Fiat:
		if n != 3 {
			return domain.NewValidationError("code", "fiat currency code must be exactly 3 characters")
		}
		for _, r := range code {
			if r < 'A' || r > 'Z' {
				return domain.NewValidationError("code", "fiat currency code must contain letters only")
			}
		}
	case Crypto:
		if n < 3 || n > 10 {
			return domain.NewValidationError("code", "crypto currency code must be between 3 and 10 characters")
		}
		for _, r := range code {
			if !unicode.IsDigit(r) && (r < 'A' || r > 'Z') {
				return domain.NewValidationError("code", "crypto currency code must be alphanumeric")
			}
		}
	default:
		return domain.NewValidationError("currency_type", "must be one of fiat, crypto")
	}
	return nil
}
