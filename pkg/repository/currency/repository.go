package currency

import (
	"context"

	"github.com/amirasaad/networth/pkg/dto"
	"github.com/google/uuid"
)

// Field names a uniquely indexed currency column.
type Field string

const (
	FieldCode   Field = "code"
	FieldName   Field = "name"
	FieldSymbol Field = "symbol"
)

// Repository defines data access for predefined and user-owned currencies.
type Repository interface {
	Create(ctx context.Context, create *dto.CurrencyCreate) error

	Update(ctx context.Context, id uuid.UUID, update *dto.CurrencyUpdate) error

	// Get retrieves a currency regardless of owner.
	Get(ctx context.Context, id uuid.UUID) (*dto.CurrencyRead, error)

	// GetVisible retrieves a currency that is predefined or owned by userID.
	GetVisible(ctx context.Context, userID, id uuid.UUID) (*dto.CurrencyRead, error)

	// GetPredefinedByCode retrieves a predefined currency by code.
	GetPredefinedByCode(ctx context.Context, code string) (*dto.CurrencyRead, error)

	// ListVisible lists predefined currencies followed by those owned by userID.
	ListVisible(ctx context.Context, userID uuid.UUID) ([]*dto.CurrencyRead, error)

	// ListByIDs retrieves the currencies with the given ids.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*dto.CurrencyRead, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUser removes every currency owned by userID.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error

	// Exists reports whether a currency of owner (nil for predefined) other
	// than excludeID already uses value in field.
	Exists(ctx context.Context, owner *uuid.UUID, field Field, value string, excludeID uuid.UUID) (bool, error)

	// CountPredefined returns the number of predefined currencies.
	CountPredefined(ctx context.Context) (int64, error)

	// IsReferenced reports whether any balance, exchange, asset, transaction
	// or summary refers to the currency.
	IsReferenced(ctx context.Context, id uuid.UUID) (bool, error)
}
