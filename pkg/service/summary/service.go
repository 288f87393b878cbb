// Package summary maintains the per-user totals: wallets value, assets
// value and net worth, all expressed in the user's base currency.
package summary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/domain/events"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/eventbus"
	"github.com/amirasaad/networth/pkg/money"
	"github.com/amirasaad/networth/pkg/repository"
	assetrepo "github.com/amirasaad/networth/pkg/repository/asset"
	currencyrepo "github.com/amirasaad/networth/pkg/repository/currency"
	summaryrepo "github.com/amirasaad/networth/pkg/repository/summary"
	walletrepo "github.com/amirasaad/networth/pkg/repository/wallet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service reads summaries and runs full recomputes and base currency changes.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates a summary service. bus may be nil.
func New(uow repository.UnitOfWork, bus eventbus.Bus, logger *slog.Logger) *Service {
	return &Service{uow: uow, bus: bus, logger: logger.With("service", "summary")}
}

// Get returns userID's summary.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (read *dto.SummaryRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[summaryrepo.Repository](uow)
		if err != nil {
			return err
		}
		read, err = repo.Get(ctx, userID)
		return err
	})
	return
}

// AppData returns the summary with its base currency.
func (s *Service) AppData(ctx context.Context, userID uuid.UUID) (data *dto.UserAppData, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		summaries, err := repository.Get[summaryrepo.Repository](uow)
		if err != nil {
			return err
		}
		currencies, err := repository.Get[currencyrepo.Repository](uow)
		if err != nil {
			return err
		}
		sum, err := summaries.Get(ctx, userID)
		if err != nil {
			return err
		}
		base, err := currencies.Get(ctx, sum.BaseCurrencyID)
		if err != nil {
			return err
		}
		data = &dto.UserAppData{Summary: sum, BaseCurrency: base}
		return nil
	})
	return
}

// WalletsTotal returns wallets_value with its display form.
func (s *Service) WalletsTotal(ctx context.Context, userID uuid.UUID) (*dto.TotalValue, error) {
	return s.total(ctx, userID, func(sum *dto.SummaryRead) decimal.Decimal { return sum.WalletsValue })
}

// AssetsTotal returns assets_value with its display form.
func (s *Service) AssetsTotal(ctx context.Context, userID uuid.UUID) (*dto.TotalValue, error) {
	return s.total(ctx, userID, func(sum *dto.SummaryRead) decimal.Decimal { return sum.AssetsValue })
}

func (s *Service) total(
	ctx context.Context,
	userID uuid.UUID,
	pick func(*dto.SummaryRead) decimal.Decimal,
) (*dto.TotalValue, error) {
	data, err := s.AppData(ctx, userID)
	if err != nil {
		return nil, err
	}
	value := pick(data.Summary)
	return &dto.TotalValue{
		Value:          value,
		BaseCurrencyID: data.BaseCurrency.ID,
		BaseCurrency:   data.BaseCurrency.Code,
		Display:        money.Display(value, data.BaseCurrency.Code),
	}, nil
}

// Recompute rebuilds every aggregate of userID from scratch. Running it on
// consistent data changes nothing.
func (s *Service) Recompute(ctx context.Context, userID uuid.UUID) (read *dto.SummaryRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := s.RecomputeIn(ctx, uow, userID); err != nil {
			return err
		}
		repo, err := repository.Get[summaryrepo.Repository](uow)
		if err != nil {
			return err
		}
		read, err = repo.Get(ctx, userID)
		return err
	})
	if err != nil {
		s.logger.Error("recompute failed", "user_id", userID, "error", err)
		return nil, err
	}
	s.emit(ctx, &events.SummaryRecomputed{
		UserID:       userID,
		WalletsValue: read.WalletsValue,
		AssetsValue:  read.AssetsValue,
		NetWorth:     read.NetWorth,
		OccurredAt:   time.Now().UTC(),
	})
	return read, nil
}

// RecomputeIn rebuilds userID's aggregates inside an open unit of work.
func (s *Service) RecomputeIn(ctx context.Context, uow repository.UnitOfWork, userID uuid.UUID) error {
	l, err := Open(ctx, uow, userID)
	if err != nil {
		return err
	}
	if err := l.RecomputeAll(ctx); err != nil {
		return err
	}
	return l.Save(ctx)
}

// ChangeBase re-expresses every aggregate of userID in currencyID. Every
// currency held in a wallet or an asset, plus the current base, must
// convert to the new base; otherwise nothing changes.
func (s *Service) ChangeBase(ctx context.Context, userID, currencyID uuid.UUID) (read *dto.SummaryRead, err error) {
	log := s.logger.With("user_id", userID, "base_currency_id", currencyID)
	var previous uuid.UUID
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		l, err := Open(ctx, uow, userID)
		if err != nil {
			return err
		}
		previous = l.Base()

		currencies, err := repository.Get[currencyrepo.Repository](uow)
		if err != nil {
			return err
		}
		if _, err := currencies.GetVisible(ctx, userID, currencyID); err != nil {
			return err
		}

		held, err := s.heldCurrencies(ctx, uow, userID)
		if err != nil {
			return err
		}
		held = append(held, previous)
		for _, c := range held {
			if _, err := l.Resolver().Rate(ctx, c, currencyID); err != nil {
				return err
			}
		}

		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
		}

		l.SetBase(currencyID)
		if err := l.RecomputeAll(ctx); err != nil {
			return err
		}
		if err := l.Save(ctx); err != nil {
			return err
		}
		repo, err := repository.Get[summaryrepo.Repository](uow)
		if err != nil {
			return err
		}
		read, err = repo.Get(ctx, userID)
		return err
	})
	if err != nil {
		log.Error("changing base currency failed", "error", err)
		return nil, err
	}
	log.Info("base currency changed", "previous", previous)
	s.emit(ctx, &events.BaseCurrencyChanged{
		UserID:     userID,
		From:       previous,
		To:         currencyID,
		OccurredAt: time.Now().UTC(),
	})
	return read, nil
}

func (s *Service) heldCurrencies(ctx context.Context, uow repository.UnitOfWork, userID uuid.UUID) ([]uuid.UUID, error) {
	wallets, err := repository.Get[walletrepo.Repository](uow)
	if err != nil {
		return nil, err
	}
	assets, err := repository.Get[assetrepo.Repository](uow)
	if err != nil {
		return nil, err
	}
	fromWallets, err := wallets.CurrencyIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	fromAssets, err := assets.CurrencyIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return append(fromWallets, fromAssets...), nil
}

func (s *Service) emit(ctx context.Context, e events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, e); err != nil {
		s.logger.Error("emitting event failed", "type", e.Type(), "error", err)
	}
}
