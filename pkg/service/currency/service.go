// Package currency manages the currencies a user can see: the predefined
// set shared by everyone and the user's own.
package currency

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/domain/currency"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository"
	currencyrepo "github.com/amirasaad/networth/pkg/repository/currency"
	"github.com/google/uuid"
)

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger.With("service", "currency")}
}

// Create adds a currency owned by userID. Code, name and symbol must be
// unused among the user's currencies and the predefined ones.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	code, name, symbol, currencyType string,
) (read *dto.CurrencyRead, err error) {
	t, err := currency.ParseType("currency_type", currencyType)
	if err != nil {
		return nil, err
	}
	c, err := currency.New(domain.OwnedBy(userID), code, name, symbol, t)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[currencyrepo.Repository](uow)
		if err != nil {
			return err
		}
		if err := checkUnique(ctx, repo, userID, c, uuid.Nil); err != nil {
			return err
		}
		if err := repo.Create(ctx, &dto.CurrencyCreate{
			ID:           c.ID,
			UserID:       &userID,
			Code:         c.Code,
			Name:         c.Name,
			Symbol:       c.Symbol,
			CurrencyType: string(c.Type),
		}); err != nil {
			return err
		}
		read, err = repo.Get(ctx, c.ID)
		return err
	})
	if err != nil {
		s.logger.Error("creating currency failed", "user_id", userID, "code", c.Code, "error", err)
		return nil, err
	}
	return read, nil
}

// Get returns a currency visible to userID.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (read *dto.CurrencyRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[currencyrepo.Repository](uow)
		if err != nil {
			return err
		}
		read, err = repo.GetVisible(ctx, userID, id)
		return err
	})
	return
}

// List returns the predefined currencies followed by userID's own.
func (s *Service) List(ctx context.Context, userID uuid.UUID) (rows []*dto.CurrencyRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[currencyrepo.Repository](uow)
		if err != nil {
			return err
		}
		rows, err = repo.ListVisible(ctx, userID)
		return err
	})
	return
}

// Update applies a sparse update to one of userID's currencies. Predefined
// currencies are immutable, and a referenced currency keeps its type.
func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	update *dto.CurrencyUpdate,
) (read *dto.CurrencyRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[currencyrepo.Repository](uow)
		if err != nil {
			return err
		}
		current, err := repo.GetVisible(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := domain.OwnerFrom(current.UserID).CheckWritable(userID); err != nil {
			return err
		}

		c := &currency.Currency{
			ID:     current.ID,
			Owner:  domain.OwnedBy(userID),
			Code:   current.Code,
			Name:   current.Name,
			Symbol: current.Symbol,
			Type:   currency.Type(current.CurrencyType),
		}
		if update.Code != nil {
			c.Code = currency.NormalizeCode(*update.Code)
		}
		if update.Name != nil {
			c.Name = strings.TrimSpace(*update.Name)
		}
		if update.Symbol != nil {
			c.Symbol = strings.TrimSpace(*update.Symbol)
		}
		if update.CurrencyType != nil {
			t, err := currency.ParseType("currency_type", *update.CurrencyType)
			if err != nil {
				return err
			}
			c.Type = t
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if c.Type != currency.Type(current.CurrencyType) {
			used, err := repo.IsReferenced(ctx, id)
			if err != nil {
				return err
			}
			if used {
				return domain.NewValidationError("currency_type", "cannot change the type of a currency in use")
			}
		}
		if err := checkUnique(ctx, repo, userID, c, id); err != nil {
			return err
		}

		code, name, symbol, t := c.Code, c.Name, c.Symbol, string(c.Type)
		if err := repo.Update(ctx, id, &dto.CurrencyUpdate{
			Code:         &code,
			Name:         &name,
			Symbol:       &symbol,
			CurrencyType: &t,
		}); err != nil {
			return err
		}
		read, err = repo.Get(ctx, id)
		return err
	})
	return
}

// Delete removes one of userID's currencies unless something references it.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[currencyrepo.Repository](uow)
		if err != nil {
			return err
		}
		current, err := repo.GetVisible(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := domain.OwnerFrom(current.UserID).CheckWritable(userID); err != nil {
			return err
		}
		used, err := repo.IsReferenced(ctx, id)
		if err != nil {
			return err
		}
		if used {
			return domain.ErrInUse
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error("deleting currency failed", "user_id", userID, "currency_id", id, "error", err)
	}
	return err
}

// checkUnique looks for clashes in the user's scope and the predefined scope.
func checkUnique(ctx context.Context, repo currencyrepo.Repository, userID uuid.UUID, c *currency.Currency, excludeID uuid.UUID) error {
	values := map[currencyrepo.Field]string{
		currencyrepo.FieldCode:   c.Code,
		currencyrepo.FieldName:   c.Name,
		currencyrepo.FieldSymbol: c.Symbol,
	}
	for _, field := range []currencyrepo.Field{currencyrepo.FieldCode, currencyrepo.FieldName, currencyrepo.FieldSymbol} {
		for _, owner := range []*uuid.UUID{&userID, nil} {
			exists, err := repo.Exists(ctx, owner, field, values[field], excludeID)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrAlreadyExists
			}
		}
	}
	return nil
}
