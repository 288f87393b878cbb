package exchange

import (
	"context"

	"github.com/amirasaad/networth/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines data access for user-scoped exchange rate rows.
type Repository interface {
	Create(ctx context.Context, create *dto.ExchangeCreate) error

	Update(ctx context.Context, id uuid.UUID, update *dto.ExchangeUpdate) error

	// Get retrieves a rate row owned by userID.
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.ExchangeRead, error)

	// FindPair retrieves the row stored for exactly (userID, from, to).
	FindPair(ctx context.Context, userID, from, to uuid.UUID) (*dto.ExchangeRead, error)

	// ListByUser lists the rate rows of userID.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.ExchangeRead, error)

	Delete(ctx context.Context, id uuid.UUID) error

	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
