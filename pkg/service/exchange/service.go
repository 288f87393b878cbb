// Package exchange manages a user's exchange rate rows and resolves rates
// between any two currencies visible to the user.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/networth/pkg/cache"
	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/domain/currency"
	"github.com/amirasaad/networth/pkg/domain/events"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/eventbus"
	"github.com/amirasaad/networth/pkg/repository"
	currencyrepo "github.com/amirasaad/networth/pkg/repository/currency"
	exchangerepo "github.com/amirasaad/networth/pkg/repository/exchange"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is the lifetime of a cached rate quote.
const DefaultCacheTTL = 15 * time.Minute

// quoteTimeout bounds a shared quote lookup.
const quoteTimeout = 5 * time.Second

// Recomputer rebuilds a user's aggregates inside an open unit of work.
type Recomputer interface {
	RecomputeIn(ctx context.Context, uow repository.UnitOfWork, userID uuid.UUID) error
}

// Service manages exchange rows. Every write recomputes the owner's
// aggregates in the same unit of work, since conversions depend on it.
type Service struct {
	uow        repository.UnitOfWork
	recomputer Recomputer
	cache      cache.RateCache
	ttl        time.Duration
	bus        eventbus.Bus
	logger     *slog.Logger
	group      singleflight.Group
}

// New creates an exchange service. quotes may be nil to disable caching.
func New(
	uow repository.UnitOfWork,
	recomputer Recomputer,
	quotes cache.RateCache,
	ttl time.Duration,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{
		uow:        uow,
		recomputer: recomputer,
		cache:      quotes,
		ttl:        ttl,
		bus:        bus,
		logger:     logger.With("service", "exchange"),
	}
}

// Create stores the rate 1 from = rate to for userID.
func (s *Service) Create(
	ctx context.Context,
	userID, from, to uuid.UUID,
	rate decimal.Decimal,
	date time.Time,
) (read *dto.ExchangeRead, err error) {
	log := s.logger.With("user_id", userID, "from", from, "to", to)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		e, err := currency.NewExchange(userID, from, to, rate, date)
		if err != nil {
			return err
		}
		if err := checkVisible(ctx, uow, userID, from, to); err != nil {
			return err
		}
		repo, err := repository.Get[exchangerepo.Repository](uow)
		if err != nil {
			return err
		}
		if err := checkPair(ctx, repo, userID, from, to, uuid.Nil); err != nil {
			return err
		}
		if err := repo.Create(ctx, &dto.ExchangeCreate{
			ID:             e.ID,
			UserID:         userID,
			FromCurrencyID: from,
			ToCurrencyID:   to,
			Rate:           e.Rate,
			Date:           e.Date,
		}); err != nil {
			return err
		}
		if err := s.recomputer.RecomputeIn(ctx, uow, userID); err != nil {
			return err
		}
		read, err = repo.Get(ctx, userID, e.ID)
		return err
	})
	if err != nil {
		log.Error("creating exchange rate failed", "error", err)
		return nil, err
	}
	s.emit(ctx, read, "created")
	log.Info("exchange rate created", "exchange_id", read.ID)
	return read, nil
}

// Update applies a sparse update. The resulting pair obeys the same rules
// as a new row.
func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	update *dto.ExchangeUpdate,
) (read *dto.ExchangeRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[exchangerepo.Repository](uow)
		if err != nil {
			return err
		}
		current, err := repo.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		e := &currency.Exchange{
			ID:             current.ID,
			UserID:         userID,
			FromCurrencyID: current.FromCurrencyID,
			ToCurrencyID:   current.ToCurrencyID,
			Rate:           current.Rate,
			Date:           current.Date,
		}
		if update.FromCurrencyID != nil {
			e.FromCurrencyID = *update.FromCurrencyID
		}
		if update.ToCurrencyID != nil {
			e.ToCurrencyID = *update.ToCurrencyID
		}
		if update.Rate != nil {
			e.Rate = *update.Rate
		}
		if update.Date != nil {
			e.Date = *update.Date
		}
		if err := e.Validate(); err != nil {
			return err
		}
		if err := checkVisible(ctx, uow, userID, e.FromCurrencyID, e.ToCurrencyID); err != nil {
			return err
		}
		if err := checkPair(ctx, repo, userID, e.FromCurrencyID, e.ToCurrencyID, id); err != nil {
			return err
		}
		if err := repo.Update(ctx, id, update); err != nil {
			return err
		}
		if err := s.recomputer.RecomputeIn(ctx, uow, userID); err != nil {
			return err
		}
		read, err = repo.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		s.logger.Error("updating exchange rate failed", "user_id", userID, "exchange_id", id, "error", err)
		return nil, err
	}
	s.emit(ctx, read, "updated")
	return read, nil
}

// Delete removes a rate row. It fails with ExchangeRateMissing when a
// currency the user holds can no longer be converted.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	var deleted *dto.ExchangeRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[exchangerepo.Repository](uow)
		if err != nil {
			return err
		}
		deleted, err = repo.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		return s.recomputer.RecomputeIn(ctx, uow, userID)
	})
	if err != nil {
		s.logger.Error("deleting exchange rate failed", "user_id", userID, "exchange_id", id, "error", err)
		return err
	}
	s.emit(ctx, deleted, "deleted")
	return nil
}

// Get returns one of userID's rate rows.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (read *dto.ExchangeRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[exchangerepo.Repository](uow)
		if err != nil {
			return err
		}
		read, err = repo.Get(ctx, userID, id)
		return err
	})
	return
}

// List returns userID's rate rows, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) (rows []*dto.ExchangeRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[exchangerepo.Repository](uow)
		if err != nil {
			return err
		}
		rows, err = repo.ListByUser(ctx, userID)
		return err
	})
	return
}

// Quote resolves rate(userID, from, to). Quotes are cached per user until
// one of the user's rate rows changes.
func (s *Service) Quote(ctx context.Context, userID, from, to uuid.UUID) (*dto.RateQuote, error) {
	key := cache.QuoteKey(userID, from, to)
	if s.cache != nil {
		if q, err := s.cache.Get(ctx, key); err != nil {
			s.logger.Warn("rate cache read failed", "key", key, "error", err)
		} else if q != nil {
			return q, nil
		}
	}

	// The lookup is shared by every concurrent caller of key, so it runs
	// detached from the caller that started it.
	ch := s.group.DoChan(key, func() (any, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), quoteTimeout)
		defer cancel()
		var quote *dto.RateQuote
		err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			if err := checkVisible(ctx, uow, userID, from, to); err != nil {
				return err
			}
			rate, err := NewResolver(uow, userID).Rate(ctx, from, to)
			if err != nil {
				return err
			}
			quote = &dto.RateQuote{
				FromCurrencyID: from,
				ToCurrencyID:   to,
				Rate:           rate.Value(),
				Inverse:        rate.IsInverse(),
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.Set(ctx, key, quote, s.ttl); err != nil {
				s.logger.Warn("rate cache write failed", "key", key, "error", err)
			}
		}
		return quote, nil
	})
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", domain.ErrUnavailable, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*dto.RateQuote), nil
	}
}

// Invalidate drops every cached quote of userID.
func (s *Service) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.DeleteByPrefix(ctx, cache.UserPrefix(userID))
}

func (s *Service) emit(ctx context.Context, e *dto.ExchangeRead, action string) {
	if s.bus == nil || e == nil {
		return
	}
	if err := s.bus.Emit(ctx, &events.ExchangeRateChanged{
		UserID:         e.UserID,
		ExchangeID:     e.ID,
		FromCurrencyID: e.FromCurrencyID,
		ToCurrencyID:   e.ToCurrencyID,
		Action:         action,
		OccurredAt:     time.Now().UTC(),
	}); err != nil {
		s.logger.Error("emitting exchange rate event failed", "user_id", e.UserID, "error", err)
	}
}

func checkVisible(ctx context.Context, uow repository.UnitOfWork, userID uuid.UUID, ids ...uuid.UUID) error {
	repo, err := repository.Get[currencyrepo.Repository](uow)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := repo.GetVisible(ctx, userID, id); err != nil {
			return err
		}
	}
	return nil
}

// checkPair rejects a second row for the same pair and any row whose
// reverse is already stored. self is the row being updated, if any.
func checkPair(ctx context.Context, repo exchangerepo.Repository, userID, from, to, self uuid.UUID) error {
	existing, err := repo.FindPair(ctx, userID, from, to)
	switch {
	case err == nil && existing.ID != self:
		return domain.ErrAlreadyExists
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return err
	}

	reverse, err := repo.FindPair(ctx, userID, to, from)
	switch {
	case err == nil && reverse.ID != self:
		return domain.NewValidationError("to_currency_id", "the reverse pair is already stored")
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return err
	}
	return nil
}
