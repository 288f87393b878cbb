package events

// EventType represents the type of an event in the system.
type EventType string

// Event type constants
const (
	EventTypeUserRegistered      EventType = "User.Registered"
	EventTypeExchangeRateChanged EventType = "ExchangeRate.Changed"
	EventTypeBaseCurrencyChanged EventType = "BaseCurrency.Changed"
	EventTypeSummaryRecomputed   EventType = "Summary.Recomputed"
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	return string(et)
}
