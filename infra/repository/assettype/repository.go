package assettype

import (
	"context"

	"github.com/amirasaad/networth/infra/database"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository/assettype"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) assettype.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.AssetTypeCreate) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&AssetType{
			ID:           create.ID,
			UserID:       create.UserID,
			Name:         create.Name,
			IsPredefined: create.IsPredefined,
		}).Error
	})
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, au *dto.AssetTypeUpdate) error {
	if au.Name == nil {
		return nil
	}
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&AssetType{}).
			Where("id = ?", id).
			Update("name", *au.Name).Error
	})
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.AssetTypeRead, error) {
	var a AssetType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, database.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&a), nil
}

func (r *repository) GetVisible(ctx context.Context, userID, id uuid.UUID) (*dto.AssetTypeRead, error) {
	var a AssetType
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("user_id IS NULL OR user_id = ?", userID).
		First(&a).Error; err != nil {
		return nil, database.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&a), nil
}

func (r *repository) ListVisible(ctx context.Context, userID uuid.UUID) ([]*dto.AssetTypeRead, error) {
	var rows []AssetType
	if err := r.db.WithContext(ctx).
		Where("user_id IS NULL OR user_id = ?", userID).
		Order("is_predefined DESC, name").
		Find(&rows).Error; err != nil {
		return nil, database.MapGormErrorToDomain(err)
	}
	result := make([]*dto.AssetTypeRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Delete(&AssetType{}, "id = ?", id).Error
	})
}

func (r *repository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Delete(&AssetType{}, "user_id = ?", userID).Error
	})
}

func (r *repository) ExistsByName(
	ctx context.Context,
	owner *uuid.UUID,
	name string,
	excludeID uuid.UUID,
) (bool, error) {
	q := r.db.WithContext(ctx).Model(&AssetType{}).
		Where("name = ?", name).
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

func mapModelToDTO(a *AssetType) *dto.AssetTypeRead {
	return &dto.AssetTypeRead{
		ID:           a.ID,
		UserID:       a.UserID,
		Name:         a.Name,
		IsPredefined: a.IsPredefined,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
