package asset

import (
	"context"

	"github.com/amirasaad/networth/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines data access for assets.
type Repository interface {
	Create(ctx context.Context, create *dto.AssetCreate) error

	Update(ctx context.Context, id uuid.UUID, update *dto.AssetUpdate) error

	// Get retrieves an asset owned by userID.
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.AssetRead, error)

	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.AssetRead, error)

	// Filter lists the assets of userID and returns the total number of matches.
	Filter(ctx context.Context, userID uuid.UUID, filter *dto.AssetFilter) ([]*dto.AssetRead, int64, error)

	Delete(ctx context.Context, id uuid.UUID) error

	DeleteByUser(ctx context.Context, userID uuid.UUID) error

	// ExistsByName reports whether another asset of userID uses name.
	ExistsByName(ctx context.Context, userID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)

	// ClearAssetType nullifies the asset type of every asset referencing it.
	ClearAssetType(ctx context.Context, assetTypeID uuid.UUID) error

	// CurrencyIDsByUser lists the distinct currencies the assets of userID are valued in.
	CurrencyIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
