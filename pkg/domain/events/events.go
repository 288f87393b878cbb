// Package events defines the events emitted after a unit of work commits.
package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event is implemented by every domain event.
type Event interface {
	Type() string
}

// UserRegistered is emitted once the user and its summary exist.
type UserRegistered struct {
	UserID     uuid.UUID `json:"user_id"`
	Username   string    `json:"username"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (UserRegistered) Type() string { return EventTypeUserRegistered.String() }

// ExchangeRateChanged is emitted when a user's rate row is created, updated or deleted.
type ExchangeRateChanged struct {
	UserID         uuid.UUID `json:"user_id"`
	ExchangeID     uuid.UUID `json:"exchange_id"`
	FromCurrencyID uuid.UUID `json:"from_currency_id"`
	ToCurrencyID   uuid.UUID `json:"to_currency_id"`
	Action         string    `json:"action"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func (ExchangeRateChanged) Type() string { return EventTypeExchangeRateChanged.String() }

// BaseCurrencyChanged is emitted after aggregates were re-expressed in a new base.
type BaseCurrencyChanged struct {
	UserID     uuid.UUID `json:"user_id"`
	From       uuid.UUID `json:"from"`
	To         uuid.UUID `json:"to"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (BaseCurrencyChanged) Type() string { return EventTypeBaseCurrencyChanged.String() }

// SummaryRecomputed is emitted after a full recompute of a user's aggregates.
type SummaryRecomputed struct {
	UserID       uuid.UUID       `json:"user_id"`
	WalletsValue decimal.Decimal `json:"wallets_value"`
	AssetsValue  decimal.Decimal `json:"assets_value"`
	NetWorth     decimal.Decimal `json:"net_worth"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

func (SummaryRecomputed) Type() string { return EventTypeSummaryRecomputed.String() }

// Factories returns constructors used to decode events read back from a broker.
func Factories() map[string]func() Event {
	return map[string]func() Event{
		EventTypeUserRegistered.String():      func() Event { return &UserRegistered{} },
		EventTypeExchangeRateChanged.String(): func() Event { return &ExchangeRateChanged{} },
		EventTypeBaseCurrencyChanged.String(): func() Event { return &BaseCurrencyChanged{} },
		EventTypeSummaryRecomputed.String():   func() Event { return &SummaryRecomputed{} },
	}
}
