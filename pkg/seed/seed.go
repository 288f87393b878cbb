// Package seed inserts the predefined currencies, categories and asset types.
package seed

import (
	"context"
	"log/slog"

	"github.com/amirasaad/networth/internal/fixtures/predefined"
	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/domain/currency"
	"github.com/amirasaad/networth/pkg/domain/taxonomy"
	"github.com/amirasaad/networth/pkg/domain/transaction"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository"
	"github.com/amirasaad/networth/pkg/repository/assettype"
	"github.com/amirasaad/networth/pkg/repository/category"
	currencyrepo "github.com/amirasaad/networth/pkg/repository/currency"
	"github.com/google/uuid"
)

// Result counts the rows a seeding run inserted.
type Result struct {
	Currencies int
	Categories int
	AssetTypes int
}

// Run inserts every missing predefined row in one transaction. Rows already
// present are left untouched, so repeated runs are no-ops.
func Run(ctx context.Context, uow repository.UnitOfWork, logger *slog.Logger) (result Result, err error) {
	currencies, err := predefined.Currencies()
	if err != nil {
		return result, err
	}
	categories, err := predefined.Categories()
	if err != nil {
		return result, err
	}
	assetTypes, err := predefined.AssetTypes()
	if err != nil {
		return result, err
	}

	err = uow.Do(ctx, func(uow repository.UnitOfWork) error {
		result = Result{}
		if result.Currencies, err = seedCurrencies(ctx, uow, currencies); err != nil {
			return err
		}
		if result.Categories, err = seedCategories(ctx, uow, categories); err != nil {
			return err
		}
		result.AssetTypes, err = seedAssetTypes(ctx, uow, assetTypes)
		return err
	})
	if err != nil {
		logger.Error("seeding predefined data failed", "error", err)
		return Result{}, err
	}
	if result == (Result{}) {
		logger.Info("predefined data already seeded, skipping")
	} else {
		logger.Info("predefined data seeded",
			"currencies", result.Currencies,
			"categories", result.Categories,
			"asset_types", result.AssetTypes,
		)
	}
	return result, nil
}

func seedCurrencies(ctx context.Context, uow repository.UnitOfWork, rows []predefined.Currency) (int, error) {
	repo, err := repository.Get[currencyrepo.Repository](uow)
	if err != nil {
		return 0, err
	}
	created := 0
	for _, row := range rows {
		t, err := currency.ParseType("currency_type", row.Type)
		if err != nil {
			return created, err
		}
		c, err := currency.New(domain.Predefined(), row.Code, row.Name, row.Symbol, t)
		if err != nil {
			return created, err
		}
		exists, err := repo.Exists(ctx, nil, currencyrepo.FieldCode, c.Code, uuid.Nil)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}
		if err := repo.Create(ctx, &dto.CurrencyCreate{
			ID:           c.ID,
			Code:         c.Code,
			Name:         c.Name,
			Symbol:       c.Symbol,
			CurrencyType: string(c.Type),
			IsPredefined: true,
		}); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func seedCategories(ctx context.Context, uow repository.UnitOfWork, rows []predefined.Category) (int, error) {
	repo, err := repository.Get[category.Repository](uow)
	if err != nil {
		return 0, err
	}
	created := 0
	for _, row := range rows {
		t, err := transaction.ParseType("type", row.Type)
		if err != nil {
			return created, err
		}
		c, err := taxonomy.NewCategory(domain.Predefined(), row.Name, t)
		if err != nil {
			return created, err
		}
		exists, err := repo.ExistsByName(ctx, nil, c.Name, uuid.Nil)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}
		if err := repo.Create(ctx, &dto.CategoryCreate{
			ID:           c.ID,
			Name:         c.Name,
			Type:         string(c.Type),
			IsPredefined: true,
		}); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func seedAssetTypes(ctx context.Context, uow repository.UnitOfWork, names []string) (int, error) {
	repo, err := repository.Get[assettype.Repository](uow)
	if err != nil {
		return 0, err
	}
	created := 0
	for _, name := range names {
		a, err := taxonomy.NewAssetType(domain.Predefined(), name)
		if err != nil {
			return created, err
		}
		exists, err := repo.ExistsByName(ctx, nil, a.Name, uuid.Nil)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}
		if err := repo.Create(ctx, &dto.AssetTypeCreate{
			ID:           a.ID,
			Name:         a.Name,
			IsPredefined: true,
		}); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
