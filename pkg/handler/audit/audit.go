// Package audit records committed domain events in the application log.
package audit

import (
	"context"
	"log/slog"

	"github.com/amirasaad/networth/pkg/domain/events"
	"github.com/amirasaad/networth/pkg/eventbus"
)

// HandleLogged writes one structured line per event.
func HandleLogged(logger *slog.Logger) eventbus.HandlerFunc {
	return func(_ context.Context, e events.Event) error {
		log := logger.With("handler", "audit.HandleLogged", "event_type", e.Type())
		switch ev := e.(type) {
		case *events.UserRegistered:
			log.Info("user registered", "user_id", ev.UserID, "username", ev.Username)
		case *events.BaseCurrencyChanged:
			log.Info("base currency changed", "user_id", ev.UserID, "from", ev.From, "to", ev.To)
		case *events.SummaryRecomputed:
			log.Info("summary recomputed",
				"user_id", ev.UserID,
				"wallets_value", ev.WalletsValue,
				"assets_value", ev.AssetsValue,
				"net_worth", ev.NetWorth,
			)
		case *events.ExchangeRateChanged:
			log.Info("exchange rate changed", "user_id", ev.UserID, "exchange_id", ev.ExchangeID, "action", ev.Action)
		default:
			log.Warn("unknown event", "event", e)
		}
		return nil
	}
}
