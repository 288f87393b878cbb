package user

import (
	"context"

	"github.com/amirasaad/networth/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for user data access operations.
// Lookups of missing rows return domain.ErrNotFound.
type Repository interface {
	// Create inserts a new user record from a DTO.
	Create(ctx context.Context, create *dto.UserCreate) error

	// Update applies the non-nil fields of a DTO to a user.
	Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) error

	// Get retrieves a user by its ID.
	Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*dto.UserRead, error)

	// GetByUsername retrieves a user by username.
	GetByUsername(ctx context.Context, username string) (*dto.UserRead, error)

	// Delete deletes a user by its ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves users ordered by creation with pagination support.
	List(ctx context.Context, page, pageSize int) ([]*dto.UserRead, error)

	// Count returns the number of users.
	Count(ctx context.Context) (int64, error)

	// ExistsByEmail checks if another user holds the email.
	ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)

	// ExistsByUsername checks if another user holds the username.
	ExistsByUsername(ctx context.Context, username string, excludeID uuid.UUID) (bool, error)
}
