package exchange

import (
	"context"

	"github.com/amirasaad/networth/infra/database"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository/exchange"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) exchange.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.ExchangeCreate) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&Exchange{
			ID:             create.ID,
			UserID:         create.UserID,
			FromCurrencyID: create.FromCurrencyID,
			ToCurrencyID:   create.ToCurrencyID,
			Rate:           database.Money(create.Rate),
			Date:           create.Date,
		}).Error
	})
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, eu *dto.ExchangeUpdate) error {
	updates := make(map[string]interface{})
	if eu.FromCurrencyID != nil {
		updates["from_currency_id"] = *eu.FromCurrencyID
	}
	if eu.ToCurrencyID != nil {
		updates["to_currency_id"] = *eu.ToCurrencyID
	}
	if eu.Rate != nil {
		updates["rate"] = *eu.Rate
	}
	if eu.Date != nil {
		updates["date"] = *eu.Date
	}
	if len(updates) == 0 {
		return nil
	}
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Exchange{}).
			Where("id = ?", id).
			Updates(updates).Error
	})
}

func (r *repository) Get(ctx context.Context, userID, id uuid.UUID) (*dto.ExchangeRead, error) {
	var e Exchange
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&e).Error; err != nil {
		return nil, database.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&e), nil
}

func (r *repository) FindPair(ctx context.Context, userID, from, to uuid.UUID) (*dto.ExchangeRead, error) {
	var e Exchange
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND from_currency_id = ? AND to_currency_id = ?", userID, from, to).
		First(&e).Error; err != nil {
		return nil, database.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&e), nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.ExchangeRead, error) {
	var rows []Exchange
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, database.MapGormErrorToDomain(err)
	}
	result := make([]*dto.ExchangeRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Delete(&Exchange{}, "id = ?", id).Error
	})
}

func (r *repository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Delete(&Exchange{}, "user_id = ?", userID).Error
	})
}

func mapModelToDTO(e *Exchange) *dto.ExchangeRead {
	return &dto.ExchangeRead{
		ID:             e.ID,
		UserID:         e.UserID,
		FromCurrencyID: e.FromCurrencyID,
		ToCurrencyID:   e.ToCurrencyID,
		Rate:           e.Rate.Decimal(),
		Date:           e.Date,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}
