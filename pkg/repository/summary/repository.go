package summary

import (
	"context"

	"github.com/amirasaad/networth/pkg/dto"
	"github.com/google/uuid"
)

// Repository stores one summary row per user.
type Repository interface {
	Create(ctx context.Context, create *dto.SummaryCreate) error

	// Get retrieves the summary of a user.
	Get(ctx context.Context, userID uuid.UUID) (*dto.SummaryRead, error)

	// GetForUpdate retrieves the summary and locks the row until the
	// surrounding transaction ends.
	GetForUpdate(ctx context.Context, userID uuid.UUID) (*dto.SummaryRead, error)

	Update(ctx context.Context, userID uuid.UUID, update *dto.SummaryUpdate) error

	Delete(ctx context.Context, userID uuid.UUID) error
}
