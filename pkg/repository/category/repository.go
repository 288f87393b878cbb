package category

import (
	"context"

	"github.com/amirasaad/networth/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines data access for predefined and user-owned categories.
type Repository interface {
	Create(ctx context.Context, create *dto.CategoryCreate) error

	Update(ctx context.Context, id uuid.UUID, update *dto.CategoryUpdate) error

	Get(ctx context.Context, id uuid.UUID) (*dto.CategoryRead, error)

	// GetVisible retrieves a category that is predefined or owned by userID.
	GetVisible(ctx context.Context, userID, id uuid.UUID) (*dto.CategoryRead, error)

	ListVisible(ctx context.Context, userID uuid.UUID) ([]*dto.CategoryRead, error)

	Delete(ctx context.Context, id uuid.UUID) error

	DeleteByUser(ctx context.Context, userID uuid.UUID) error

	// ExistsByName reports whether a category of owner (nil for predefined)
	// other than excludeID uses name.
	ExistsByName(ctx context.Context, owner *uuid.UUID, name string, excludeID uuid.UUID) (bool, error)
}
