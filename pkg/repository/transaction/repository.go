package transaction

import (
	"context"

	"github.com/amirasaad/networth/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines data access for transactions.
type Repository interface {
	Create(ctx context.Context, create *dto.TransactionCreate) error

	// Save overwrites every mutable column of an existing transaction.
	Save(ctx context.Context, tx *dto.TransactionRead) error

	// Get retrieves a transaction owned by userID.
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.TransactionRead, error)

	// Filter lists the transactions of userID newest first and returns the
	// total number of matches.
	Filter(ctx context.Context, userID uuid.UUID, filter *dto.TransactionFilter) ([]*dto.TransactionRead, int64, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByWallet removes every transaction referencing the wallet.
	DeleteByWallet(ctx context.Context, walletID uuid.UUID) (int64, error)

	DeleteByUser(ctx context.Context, userID uuid.UUID) error

	// ClearCategory nullifies the category of every transaction referencing it.
	ClearCategory(ctx context.Context, categoryID uuid.UUID) error
}
