package wallet

import (
	"context"

	"github.com/amirasaad/networth/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines data access for wallets and their balances.
type Repository interface {
	// Create inserts the wallet together with its initial balances.
	Create(ctx context.Context, create *dto.WalletCreate) error

	// Get retrieves a wallet owned by userID with its balances.
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.WalletRead, error)

	// GetForUpdate is Get with the wallet row locked until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*dto.WalletRead, error)

	// ListByUser lists the wallets of userID with their balances.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.WalletRead, error)

	Update(ctx context.Context, id uuid.UUID, update *dto.WalletUpdate) error

	// Delete removes the wallet and its balances.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUser removes every wallet and balance of userID.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error

	// ExistsByName reports whether another wallet of userID uses name.
	ExistsByName(ctx context.Context, userID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)

	CreateBalance(ctx context.Context, create *dto.BalanceCreate) error

	UpdateBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error

	DeleteBalance(ctx context.Context, id uuid.UUID) error

	// CurrencyIDsByUser lists the distinct currencies held in any balance of userID.
	CurrencyIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
