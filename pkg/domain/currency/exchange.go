package currency

import (
	"time"

	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Exchange is a directed, user-scoped rate: 1 From = Rate To.
type Exchange struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	FromCurrencyID uuid.UUID
	ToCurrencyID   uuid.UUID
	Rate           decimal.Decimal
	Date           time.Time
}

// NewExchange validates a rate row. The reverse-pair rule needs the store
// and is checked by the caller.
func NewExchange(userID, from, to uuid.UUID, rate decimal.Decimal, date time.Time) (*Exchange, error) {
	e := &Exchange{
		ID:             uuid.New(),
		UserID:         userID,
		FromCurrencyID: from,
		ToCurrencyID:   to,
		Rate:           rate,
		Date:           date,
	}
	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Exchange) Validate() error {
	if e.FromCurrencyID == e.ToCurrencyID {
		return domain.NewValidationError("to_currency_id", "must differ from from_currency_id")
	}
	return money.Positive("rate", e.Rate)
}

// Rate converts amounts between two currencies. A stored row A->B with
// rate r converts A to B by multiplying and B to A by dividing.
type Rate struct {
	value   decimal.Decimal
	inverse bool
}

// Identity converts a currency to itself.
func Identity() Rate { return Rate{value: money.One} }

// Forward uses a stored row in its own direction.
func Forward(r decimal.Decimal) Rate { return Rate{value: r} }

// Reverse uses a stored row against its direction.
func Reverse(r decimal.Decimal) Rate { return Rate{value: r, inverse: true} }

// Convert applies the rate and rounds to the monetary scale.
func (r Rate) Convert(amount decimal.Decimal) decimal.Decimal {
	if r.inverse {
		return amount.DivRound(r.value, money.Scale)
	}
	return money.Round(amount.Mul(r.value))
}

// Value is the effective multiplier.
func (r Rate) Value() decimal.Decimal {
	if r.inverse {
		return money.One.DivRound(r.value, money.Scale)
	}
	return r.value
}

func (r Rate) IsInverse() bool { return r.inverse }
