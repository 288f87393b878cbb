package category

import (
	"context"

	"github.com/amirasaad/networth/infra/database"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository/category"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) category.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.CategoryCreate) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&Category{
			ID:           create.ID,
			UserID:       create.UserID,
			Name:         create.Name,
			Type:         create.Type,
			IsPredefined: create.IsPredefined,
		}).Error
	})
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, cu *dto.CategoryUpdate) error {
	updates := make(map[string]interface{})
	if cu.Name != nil {
		updates["name"] = *cu.Name
	}
	if cu.Type != nil {
		updates["type"] = *cu.Type
	}
	if len(updates) == 0 {
		return nil
	}
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Category{}).
			Where("id = ?", id).
			Updates(updates).Error
	})
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.CategoryRead, error) {
	var c Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, database.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&c), nil
}

func (r *repository) GetVisible(ctx context.Context, userID, id uuid.UUID) (*dto.CategoryRead, error) {
	var c Category
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("user_id IS NULL OR user_id = ?", userID).
		First(&c).Error; err != nil {
		return nil, database.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&c), nil
}

func (r *repository) ListVisible(ctx context.Context, userID uuid.UUID) ([]*dto.CategoryRead, error) {
	var rows []Category
	if err := r.db.WithContext(ctx).
		Where("user_id IS NULL OR user_id = ?", userID).
		Order("is_predefined DESC, name").
		Find(&rows).Error; err != nil {
		return nil, database.MapGormErrorToDomain(err)
	}
	result := make([]*dto.CategoryRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Delete(&Category{}, "id = ?", id).Error
	})
}

func (r *repository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Delete(&Category{}, "user_id = ?", userID).Error
	})
}

func (r *repository) ExistsByName(
	ctx context.Context,
	owner *uuid.UUID,
	name string,
	excludeID uuid.UUID,
) (bool, error) {
	q := r.db.WithContext(ctx).Model(&Category{}).
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

func mapModelToDTO(c *Category) *dto.CategoryRead {
	return &dto.CategoryRead{
		ID:           c.ID,
		UserID:       c.UserID,
		Name:         c.Name,
		Type:         c.Type,
		IsPredefined: c.IsPredefined,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
