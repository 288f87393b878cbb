package assettype

import (
	"context"

	"github.com/amirasaad/networth/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines data access for predefined and user-owned asset types.
type Repository interface {
	Create(ctx context.Context, create *dto.AssetTypeCreate) error

	Update(ctx context.Context, id uuid.UUID, update *dto.AssetTypeUpdate) error

	Get(ctx context.Context, id uuid.UUID) (*dto.AssetTypeRead, error)

	// GetVisible retrieves an asset type that is predefined or owned by userID.
	GetVisible(ctx context.Context, userID, id uuid.UUID) (*dto.AssetTypeRead, error)

	ListVisible(ctx context.Context, userID uuid.UUID) ([]*dto.AssetTypeRead, error)

	Delete(ctx context.Context, id uuid.UUID) error

	DeleteByUser(ctx context.Context, userID uuid.UUID) error

	// ExistsByName reports whether an asset type of owner (nil for
	// predefined) other than excludeID uses name.
	ExistsByName(ctx context.Context, owner *uuid.UUID, name string, excludeID uuid.UUID) (bool, error)
}
