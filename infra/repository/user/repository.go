package user

import (
	"context"

	"github.com/amirasaad/networth/infra/database"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) user.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create *dto.UserCreate,
) error {
	u := &User{
		ID:       create.ID,
		Username: create.Username,
		Email:    create.Email,
		Password: create.Password,
		Role:     create.Role,
	}
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Create(u).Error
	})
}

func (r *repository) Update(
	ctx context.Context,
	id uuid.UUID,
	uu *dto.UserUpdate,
) error {
	updates := make(map[string]interface{})

	// Only include non-nil fields in the update
	if uu.Username != nil {
		updates["username"] = *uu.Username
	}
	if uu.Email != nil {
		updates["email"] = *uu.Email
	}
	if uu.Password != nil {
		updates["password"] = *uu.Password
	}
	if uu.Role != nil {
		updates["role"] = *uu.Role
	}
	if len(updates) == 0 {
		return nil
	}

	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&User{}).
			Where("id = ?", id).
			Updates(updates).Error
	})
}

func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.UserRead, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*dto.UserRead, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *repository) GetByUsername(
	ctx context.Context,
	username string,
) (*dto.UserRead, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *repository) first(ctx context.Context, query string, arg any) (*dto.UserRead, error) {
	var u User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		return nil, database.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&u), nil
}

func (r *repository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Delete(&User{}, "id = ?", id).Error
	})
}

func (r *repository) List(
	ctx context.Context,
	page, pageSize int,
) ([]*dto.UserRead, error) {
	if page < 1 {
		page = 1
	}
	var users []User
	if err := r.db.WithContext(ctx).
		Order("created_at, username").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error; err != nil {
		return nil, database.MapGormErrorToDomain(err)
	}

	result := make([]*dto.UserRead, 0, len(users))
	for i := range users {
		result = append(result, mapModelToDTO(&users[i]))
	}
	return result, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).Count(&count).Error
	return count, database.MapGormErrorToDomain(err)
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
	excludeID uuid.UUID,
) (bool, error) {
	return r.exists(ctx, "email = ?", email, excludeID)
}

func (r *repository) ExistsByUsername(
	ctx context.Context,
	username string,
	excludeID uuid.UUID,
) (bool, error) {
	return r.exists(ctx, "username = ?", username, excludeID)
}

func (r *repository) exists(ctx context.Context, query string, arg any, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where(query, arg).
		Where("id <> ?", excludeID).
		Count(&count).Error
	if err != nil {
		return false, database.MapGormErrorToDomain(err)
	}
	return count > 0, nil
}

func mapModelToDTO(u *User) *dto.UserRead {
	return &dto.UserRead{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		HashedPassword: u.Password,
		Role:           u.Role,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
