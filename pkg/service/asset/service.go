// Package asset manages holdings valued outside wallets. Asset values count
// towards the user's assets value in the base currency.
package asset

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/domain/asset"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository"
	assetrepo "github.com/amirasaad/networth/pkg/repository/asset"
	assettyperepo "github.com/amirasaad/networth/pkg/repository/assettype"
	currencyrepo "github.com/amirasaad/networth/pkg/repository/currency"
	"github.com/amirasaad/networth/pkg/service/summary"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger.With("service", "asset")}
}

// Create stores an asset and adds its converted value to assets value.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	value decimal.Decimal,
	currencyID uuid.UUID,
	assetTypeID *uuid.UUID,
) (read *dto.AssetRead, err error) {
	a, err := asset.New(userID, name, value, currencyID, assetTypeID)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		l, err := summary.Open(ctx, uow, userID)
		if err != nil {
			return err
		}
		repo, err := repository.Get[assetrepo.Repository](uow)
		if err != nil {
			return err
		}
		if err := checkReferences(ctx, uow, userID, a); err != nil {
			return err
		}
		exists, err := repo.ExistsByName(ctx, userID, a.Name, uuid.Nil)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrAlreadyExists
		}
		converted, err := l.Convert(ctx, a.Value, a.CurrencyID)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, &dto.AssetCreate{
			ID:          a.ID,
			UserID:      userID,
			AssetTypeID: a.AssetTypeID,
			CurrencyID:  a.CurrencyID,
			Name:        a.Name,
			Value:       a.Value,
		}); err != nil {
			return err
		}
		if err := l.AddAssets(converted); err != nil {
			return err
		}
		if err := l.Save(ctx); err != nil {
			return err
		}
		read, err = repo.Get(ctx, userID, a.ID)
		return err
	})
	if err != nil {
		s.logger.Error("creating asset failed", "user_id", userID, "error", err)
		return nil, err
	}
	return read, nil
}

// Update applies a sparse update; the difference between the converted new
// and old values moves assets value.
func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	update *dto.AssetUpdate,
) (read *dto.AssetRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		l, err := summary.Open(ctx, uow, userID)
		if err != nil {
			return err
		}
		repo, err := repository.Get[assetrepo.Repository](uow)
		if err != nil {
			return err
		}
		current, err := repo.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		a := &asset.Asset{
			ID:          current.ID,
			UserID:      userID,
			AssetTypeID: current.AssetTypeID,
			CurrencyID:  current.CurrencyID,
			Name:        current.Name,
			Value:       current.Value,
		}
		if update.Name != nil {
			name := strings.TrimSpace(*update.Name)
			update.Name = &name
			a.Name = name
		}
		if update.Value != nil {
			a.Value = *update.Value
		}
		if update.CurrencyID != nil {
			a.CurrencyID = *update.CurrencyID
		}
		if update.AssetTypeID != nil {
			a.AssetTypeID = update.AssetTypeID
		}
		if err := a.Validate(); err != nil {
			return err
		}
		if err := checkReferences(ctx, uow, userID, a); err != nil {
			return err
		}
		if update.Name != nil {
			exists, err := repo.ExistsByName(ctx, userID, a.Name, id)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrAlreadyExists
			}
		}

		before, err := l.Convert(ctx, current.Value, current.CurrencyID)
		if err != nil {
			return err
		}
		after, err := l.Convert(ctx, a.Value, a.CurrencyID)
		if err != nil {
			return err
		}
		if err := repo.Update(ctx, id, update); err != nil {
			return err
		}
		if err := l.AddAssets(after.Sub(before)); err != nil {
			return err
		}
		if err := l.Save(ctx); err != nil {
			return err
		}
		read, err = repo.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		s.logger.Error("updating asset failed", "user_id", userID, "asset_id", id, "error", err)
		return nil, err
	}
	return read, nil
}

// Delete removes an asset and its converted value from assets value.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		l, err := summary.Open(ctx, uow, userID)
		if err != nil {
			return err
		}
		repo, err := repository.Get[assetrepo.Repository](uow)
		if err != nil {
			return err
		}
		current, err := repo.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		converted, err := l.Convert(ctx, current.Value, current.CurrencyID)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		if err := l.AddAssets(converted.Neg()); err != nil {
			return err
		}
		return l.Save(ctx)
	})
	if err != nil {
		s.logger.Error("deleting asset failed", "user_id", userID, "asset_id", id, "error", err)
	}
	return err
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (read *dto.AssetRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[assetrepo.Repository](uow)
		if err != nil {
			return err
		}
		read, err = repo.Get(ctx, userID, id)
		return err
	})
	return
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) (rows []*dto.AssetRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[assetrepo.Repository](uow)
		if err != nil {
			return err
		}
		rows, err = repo.ListByUser(ctx, userID)
		return err
	})
	return
}

// Filter lists userID's assets by name with the number of matches before paging.
func (s *Service) Filter(
	ctx context.Context,
	userID uuid.UUID,
	filter *dto.AssetFilter,
) (rows []*dto.AssetRead, total int64, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[assetrepo.Repository](uow)
		if err != nil {
			return err
		}
		rows, total, err = repo.Filter(ctx, userID, filter)
		return err
	})
	return
}

func checkReferences(ctx context.Context, uow repository.UnitOfWork, userID uuid.UUID, a *asset.Asset) error {
	currencies, err := repository.Get[currencyrepo.Repository](uow)
	if err != nil {
		return err
	}
	if _, err := currencies.GetVisible(ctx, userID, a.CurrencyID); err != nil {
		return err
	}
	if a.AssetTypeID == nil {
		return nil
	}
	types, err := repository.Get[assettyperepo.Repository](uow)
	if err != nil {
		return err
	}
	_, err = types.GetVisible(ctx, userID, *a.AssetTypeID)
	return err
}
