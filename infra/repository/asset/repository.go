package asset

import (
	"context"
	"strings"

	"github.com/amirasaad/networth/infra/database"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository/asset"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) asset.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.AssetCreate) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&Asset{
			ID:          create.ID,
			UserID:      create.UserID,
			AssetTypeID: create.AssetTypeID,
			CurrencyID:  create.CurrencyID,
			Name:        create.Name,
			Value:       database.Money(create.Value),
		}).Error
	})
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, au *dto.AssetUpdate) error {
	updates := make(map[string]interface{})
	if au.AssetTypeID != nil {
		updates["asset_type_id"] = *au.AssetTypeID
	}
	if au.CurrencyID != nil {
		updates["currency_id"] = *au.CurrencyID
	}
	if au.Name != nil {
		updates["name"] = *au.Name
	}
	if au.Value != nil {
		updates["value"] = *au.Value
	}
	if len(updates) == 0 {
		return nil
	}
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Asset{}).
			Where("id = ?", id).
			Updates(updates).Error
	})
}

func (r *repository) Get(ctx context.Context, userID, id uuid.UUID) (*dto.AssetRead, error) {
	var a Asset
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&a).Error; err != nil {
		return nil, database.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&a), nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.AssetRead, error) {
	rows, _, err := r.Filter(ctx, userID, nil)
	return rows, err
}

func (r *repository) Filter(
	ctx context.Context,
	userID uuid.UUID,
	filter *dto.AssetFilter,
) ([]*dto.AssetRead, int64, error) {
	q := r.db.WithContext(ctx).Model(&Asset{}).Where("user_id = ?", userID)
	if filter != nil {
		if filter.AssetTypeID != nil {
			q = q.Where("asset_type_id = ?", *filter.AssetTypeID)
		}
		if filter.CurrencyID != nil {
			q = q.Where("currency_id = ?", *filter.CurrencyID)
		}
		if filter.Name != "" {
			q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
		}
		if filter.MinValue != nil {
			q = q.Where(database.NumericColumn(q, "value")+" >= ?", *filter.MinValue)
		}
		if filter.MaxValue != nil {
			q = q.Where(database.NumericColumn(q, "value")+" <= ?", *filter.MaxValue)
		}
	}

	var total int64
	q = q.Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, database.MapGormErrorToDomain(err)
	}

	q = q.Order("name")
	if filter != nil && filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		q = q.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var rows []Asset
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, database.MapGormErrorToDomain(err)
	}
	result := make([]*dto.AssetRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result, total, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Delete(&Asset{}, "id = ?", id).Error
	})
}

func (r *repository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Delete(&Asset{}, "user_id = ?", userID).Error
	})
}

func (r *repository) ExistsByName(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	excludeID uuid.UUID,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Asset{}).
		Where("user_id = ? AND name = ?", userID, name).
		Where("id <> ?", excludeID).
		Count(&count).Error
	if err != nil {
		return false, database.MapGormErrorToDomain(err)
	}
	return count > 0, nil
}

func (r *repository) ClearAssetType(ctx context.Context, assetTypeID uuid.UUID) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Asset{}).
			Where("asset_type_id = ?", assetTypeID).
			Update("asset_type_id", nil).Error
	})
}

func (r *repository) CurrencyIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&Asset{}).
		Distinct("currency_id").
		Where("user_id = ?", userID).
		Pluck("currency_id", &ids).Error
	if err != nil {
		return nil, database.MapGormErrorToDomain(err)
	}
	return ids, nil
}

func mapModelToDTO(a *Asset) *dto.AssetRead {
	return &dto.AssetRead{
		ID:          a.ID,
		UserID:      a.UserID,
		AssetTypeID: a.AssetTypeID,
		CurrencyID:  a.CurrencyID,
		Name:        a.Name,
		Value:       a.Value.Decimal(),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
