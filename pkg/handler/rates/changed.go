// Package rates reacts to changes of a user's exchange rates.
package rates

import (
	"context"
	"log/slog"

	"github.com/amirasaad/networth/pkg/domain/events"
	"github.com/amirasaad/networth/pkg/eventbus"
	"github.com/google/uuid"
)

// Invalidator drops every cached quote of a user.
type Invalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// HandleChanged evicts the cached quotes of the user whose rates changed.
func HandleChanged(cache Invalidator, logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, e events.Event) error {
		log := logger.With("handler", "rates.HandleChanged", "event_type", e.Type())
		changed, ok := e.(*events.ExchangeRateChanged)
		if !ok {
			log.Error("skipping unexpected event", "event", e)
			return nil
		}
		log = log.With("user_id", changed.UserID, "exchange_id", changed.ExchangeID, "action", changed.Action)
		if err := cache.Invalidate(ctx, changed.UserID); err != nil {
			log.Error("evicting cached quotes failed", "error", err)
			return err
		}
		log.Debug("cached quotes evicted")
		return nil
	}
}
