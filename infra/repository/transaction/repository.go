package transaction

import (
	"context"

	"github.com/amirasaad/networth/infra/database"
	"github.com/amirasaad/networth/pkg/dto"
	repo "github.com/amirasaad/networth/pkg/repository/transaction"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a transaction repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements transaction.Repository.
func (r *repository) Create(
	ctx context.Context,
	create *dto.TransactionCreate,
) error {
	tx := mapCreateDTOToModel(create)
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&tx).Error
	})
}

// Save implements transaction.Repository.
func (r *repository) Save(
	ctx context.Context,
	tx *dto.TransactionRead,
) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).
			Model(&Transaction{}).
			Where("id = ?", tx.ID).
			Updates(map[string]any{
				"from_wallet_id": tx.FromWalletID,
				"to_wallet_id":   tx.ToWalletID,
				"category_id":    tx.CategoryID,
				"currency_id":    tx.CurrencyID,
				"type":           tx.Type,
				"amount":         tx.Amount,
				"date":           tx.Date,
				"description":    tx.Description,
			}).Error
	})
}

// Get implements transaction.Repository.
func (r *repository) Get(
	ctx context.Context,
	userID, id uuid.UUID,
) (*dto.TransactionRead, error) {
	var tx Transaction
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&tx).Error; err != nil {
		return nil, database.MapGormErrorToDomain(err)
	}
	return mapModelToReadDTO(&tx), nil
}

// Filter implements transaction.Repository.
func (r *repository) Filter(
	ctx context.Context,
	userID uuid.UUID,
	filter *dto.TransactionFilter,
) ([]*dto.TransactionRead, int64, error) {
	q := r.db.WithContext(ctx).Model(&Transaction{}).Where("user_id = ?", userID)
	if filter != nil {
		q = applyFilter(q, filter)
	}

	var total int64
	q = q.Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, database.MapGormErrorToDomain(err)
	}

	q = q.Order("date DESC, created_at DESC")
	if filter != nil && filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		q = q.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var txs []Transaction
	if err := q.Find(&txs).Error; err != nil {
		return nil, 0, database.MapGormErrorToDomain(err)
	}
	result := make([]*dto.TransactionRead, 0, len(txs))
	for i := range txs {
		result = append(result, mapModelToReadDTO(&txs[i]))
	}
	return result, total, nil
}

func applyFilter(q *gorm.DB, f *dto.TransactionFilter) *gorm.DB {
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.WalletID != nil {
		q = q.Where("from_wallet_id = ? OR to_wallet_id = ?", *f.WalletID, *f.WalletID)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.CurrencyID != nil {
		q = q.Where("currency_id = ?", *f.CurrencyID)
	}
	if f.DateFrom != nil {
		q = q.Where("date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("date <= ?", *f.DateTo)
	}
	if f.MinAmount != nil {
		q = q.Where(database.NumericColumn(q, "amount")+" >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		q = q.Where(database.NumericColumn(q, "amount")+" <= ?", *f.MaxAmount)
	}
	return q
}

// Delete implements transaction.Repository.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Delete(&Transaction{}, "id = ?", id).Error
	})
}

// DeleteByWallet implements transaction.Repository.
func (r *repository) DeleteByWallet(ctx context.Context, walletID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("from_wallet_id = ? OR to_wallet_id = ?", walletID, walletID).
		Delete(&Transaction{})
	return res.RowsAffected, database.MapGormErrorToDomain(res.Error)
}

// DeleteByUser implements transaction.Repository.
func (r *repository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Delete(&Transaction{}, "user_id = ?", userID).Error
	})
}

// ClearCategory implements transaction.Repository.
func (r *repository) ClearCategory(ctx context.Context, categoryID uuid.UUID) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).
			Model(&Transaction{}).
			Where("category_id = ?", categoryID).
			Update("category_id", nil).Error
	})
}

// --- Mappers ---

func mapCreateDTOToModel(create *dto.TransactionCreate) Transaction {
	return Transaction{
		ID:           create.ID,
		UserID:       create.UserID,
		FromWalletID: create.FromWalletID,
		ToWalletID:   create.ToWalletID,
		CategoryID:   create.CategoryID,
		CurrencyID:   create.CurrencyID,
		Type:         create.Type,
		Amount:       database.Money(create.Amount),
		Date:         create.Date,
		Description:  create.Description,
	}
}

func mapModelToReadDTO(tx *Transaction) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:           tx.ID,
		UserID:       tx.UserID,
		FromWalletID: tx.FromWalletID,
		ToWalletID:   tx.ToWalletID,
		CategoryID:   tx.CategoryID,
		CurrencyID:   tx.CurrencyID,
		Type:         tx.Type,
		Amount:       tx.Amount.Decimal(),
		Date:         tx.Date,
		Description:  tx.Description,
		CreatedAt:    tx.CreatedAt,
		UpdatedAt:    tx.UpdatedAt,
	}
}
