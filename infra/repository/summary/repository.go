package summary

import (
	"context"

	"github.com/amirasaad/networth/infra/database"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository/summary"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) summary.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.SummaryCreate) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&Summary{
			ID:             create.ID,
			UserID:         create.UserID,
			BaseCurrencyID: create.BaseCurrencyID,
			NetWorth:       database.Money(decimal.Zero),
			AssetsValue:    database.Money(decimal.Zero),
			WalletsValue:   database.Money(decimal.Zero),
		}).Error
	})
}

func (r *repository) Get(ctx context.Context, userID uuid.UUID) (*dto.SummaryRead, error) {
	return r.get(r.db.WithContext(ctx), userID)
}

func (r *repository) GetForUpdate(ctx context.Context, userID uuid.UUID) (*dto.SummaryRead, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), userID)
}

func (r *repository) get(db *gorm.DB, userID uuid.UUID) (*dto.SummaryRead, error) {
	var s Summary
	if err := db.Where("user_id = ?", userID).First(&s).Error; err != nil {
		return nil, database.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&s), nil
}

func (r *repository) Update(ctx context.Context, userID uuid.UUID, su *dto.SummaryUpdate) error {
	updates := make(map[string]interface{})
	if su.BaseCurrencyID != nil {
		updates["base_currency_id"] = *su.BaseCurrencyID
	}
	if su.NetWorth != nil {
		updates["net_worth"] = *su.NetWorth
	}
	if su.AssetsValue != nil {
		updates["assets_value"] = *su.AssetsValue
	}
	if su.WalletsValue != nil {
		updates["wallets_value"] = *su.WalletsValue
	}
	if len(updates) == 0 {
		return nil
	}
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Summary{}).
			Where("user_id = ?", userID).
			Updates(updates).Error
	})
}

func (r *repository) Delete(ctx context.Context, userID uuid.UUID) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Delete(&Summary{}, "user_id = ?", userID).Error
	})
}

func mapModelToDTO(s *Summary) *dto.SummaryRead {
	return &dto.SummaryRead{
		ID:             s.ID,
		UserID:         s.UserID,
		BaseCurrencyID: s.BaseCurrencyID,
		NetWorth:       s.NetWorth.Decimal(),
		AssetsValue:    s.AssetsValue.Decimal(),
		WalletsValue:   s.WalletsValue.Decimal(),
		UpdatedAt:      s.UpdatedAt,
	}
}
