package currency

import (
	"context"

	"github.com/amirasaad/networth/infra/database"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository/currency"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// referencingColumns lists every column holding a currency id.
var referencingColumns = []struct {
	table  string
	column string
}{
	{"wallet_balances", "currency_id"},
	{"exchanges", "from_currency_id"},
	{"exchanges", "to_currency_id"},
	{"assets", "currency_id"},
	{"transactions", "currency_id"},
	{"user_summaries", "base_currency_id"},
}

type repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) currency.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.CurrencyCreate) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&Currency{
			ID:           create.ID,
			UserID:       create.UserID,
			Code:         create.Code,
			Name:         create.Name,
			Symbol:       create.Symbol,
			CurrencyType: create.CurrencyType,
			IsPredefined: create.IsPredefined,
		}).Error
	})
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, cu *dto.CurrencyUpdate) error {
	updates := make(map[string]interface{})
	if cu.Code != nil {
		updates["code"] = *cu.Code
	}
	if cu.Name != nil {
		updates["name"] = *cu.Name
	}
	if cu.Symbol != nil {
		updates["symbol"] = *cu.Symbol
	}
	if cu.CurrencyType != nil {
		updates["currency_type"] = *cu.CurrencyType
	}
	if len(updates) == 0 {
		return nil
	}
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Currency{}).
			Where("id = ?", id).
			Updates(updates).Error
	})
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.CurrencyRead, error) {
	var c Currency
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, database.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&c), nil
}

func (r *repository) GetVisible(ctx context.Context, userID, id uuid.UUID) (*dto.CurrencyRead, error) {
	var c Currency
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("user_id IS NULL OR user_id = ?", userID).
		First(&c).Error; err != nil {
		return nil, database.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&c), nil
}

func (r *repository) GetPredefinedByCode(ctx context.Context, code string) (*dto.CurrencyRead, error) {
	var c Currency
	if err := r.db.WithContext(ctx).
		Where("user_id IS NULL AND code = ?", code).
		First(&c).Error; err != nil {
		return nil, database.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&c), nil
}

func (r *repository) ListVisible(ctx context.Context, userID uuid.UUID) ([]*dto.CurrencyRead, error) {
	var rows []Currency
	if err := r.db.WithContext(ctx).
		Where("user_id IS NULL OR user_id = ?", userID).
		Order("is_predefined DESC, code").
		Find(&rows).Error; err != nil {
		return nil, database.MapGormErrorToDomain(err)
	}
	return mapModels(rows), nil
}

func (r *repository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*dto.CurrencyRead, error) {
	if len(ids) == 0 {
		return []*dto.CurrencyRead{}, nil
	}
	var rows []Currency
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, database.MapGormErrorToDomain(err)
	}
	return mapModels(rows), nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Delete(&Currency{}, "id = ?", id).Error
	})
}

func (r *repository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Delete(&Currency{}, "user_id = ?", userID).Error
	})
}

func (r *repository) Exists(
	ctx context.Context,
	owner *uuid.UUID,
	field currency.Field,
	value string,
	excludeID uuid.UUID,
) (bool, error) {
	q := r.db.WithContext(ctx).Model(&Currency{}).
		Where(string(field)+" = ?", value).
		Where("id <> ?", excludeID)
	if owner == nil {
		q = q.Where("user_id IS NULL")
	} else {
		q = q.Where("user_id = ?", *owner)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, database.MapGormErrorToDomain(err)
	}
	return count > 0, nil
}

func (r *repository) CountPredefined(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Currency{}).Where("user_id IS NULL").Count(&count).Error
	return count, database.MapGormErrorToDomain(err)
}

func (r *repository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	for _, ref := range referencingColumns {
		var count int64
		if err := r.db.WithContext(ctx).
			Table(ref.table).
			Where(ref.column+" = ?", id).
			Count(&count).Error; err != nil {
			return false, database.MapGormErrorToDomain(err)
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

func mapModels(rows []Currency) []*dto.CurrencyRead {
	result := make([]*dto.CurrencyRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result
}

func mapModelToDTO(c *Currency) *dto.CurrencyRead {
	return &dto.CurrencyRead{
		ID:           c.ID,
		UserID:       c.UserID,
		Code:         c.Code,
		Name:         c.Name,
		Symbol:       c.Symbol,
		CurrencyType: c.CurrencyType,
		IsPredefined: c.IsPredefined,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
