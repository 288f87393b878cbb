// Package app builds the services and registers the event handlers that
// react to their committed changes.
package app

import (
	"github.com/amirasaad/networth/pkg/domain/events"
	"github.com/amirasaad/networth/pkg/handler/audit"
	"github.com/amirasaad/networth/pkg/handler/rates"
)

// setupEventBus registers all event handlers with the configured bus.
func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	if bus == nil {
		return
	}
	logger := a.Deps.Logger

	bus.Register(
		events.EventTypeExchangeRateChanged.String(),
		rates.HandleChanged(a.ExchangeService, logger),
	)

	logged := audit.HandleLogged(logger)
	for _, t := range []events.EventType{
		events.EventTypeUserRegistered,
		events.EventTypeExchangeRateChanged,
		events.EventTypeBaseCurrencyChanged,
		events.EventTypeSummaryRecomputed,
	} {
		bus.Register(t.String(), logged)
	}
}
