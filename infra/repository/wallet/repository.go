package wallet

import (
	"context"

	"github.com/amirasaad/networth/infra/database"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository/wallet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) wallet.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.WalletCreate) error {
	w := &Wallet{
		ID:         create.ID,
		UserID:     create.UserID,
		Name:       create.Name,
		Type:       create.Type,
		TotalValue: database.Money(create.TotalValue),
	}
	return database.WrapError(func() error {
		db := r.db.WithContext(ctx)
		if err := db.Create(w).Error; err != nil {
			return err
		}
		if len(create.Balances) == 0 {
			return nil
		}
		balances := make([]Balance, 0, len(create.Balances))
		for _, b := range create.Balances {
			balances = append(balances, Balance{
				ID:         b.ID,
				WalletID:   create.ID,
				CurrencyID: b.CurrencyID,
				Amount:     database.Money(b.Amount),
			})
		}
		return db.Create(&balances).Error
	})
}

func (r *repository) Get(ctx context.Context, userID, id uuid.UUID) (*dto.WalletRead, error) {
	return r.get(ctx, r.db.WithContext(ctx), userID, id)
}

func (r *repository) GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*dto.WalletRead, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), userID, id)
}

func (r *repository) get(ctx context.Context, db *gorm.DB, userID, id uuid.UUID) (*dto.WalletRead, error) {
	var w Wallet
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&w).Error; err != nil {
		return nil, database.MapGormErrorToDomain(err)
	}
	result := mapModelToDTO(&w)
	if err := r.attachBalances(ctx, []*dto.WalletRead{result}); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.WalletRead, error) {
	var rows []Wallet
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at, name").
		Find(&rows).Error; err != nil {
		return nil, database.MapGormErrorToDomain(err)
	}
	result := make([]*dto.WalletRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	if err := r.attachBalances(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// attachBalances loads the balances of every wallet in one query.
func (r *repository) attachBalances(ctx context.Context, wallets []*dto.WalletRead) error {
	if len(wallets) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*dto.WalletRead, len(wallets))
	ids := make([]uuid.UUID, 0, len(wallets))
	for _, w := range wallets {
		byID[w.ID] = w
		ids = append(ids, w.ID)
	}

	var rows []balanceRow
	if err := r.db.WithContext(ctx).
		Table("wallet_balances AS b").
		Select("b.id, b.wallet_id, b.currency_id, b.amount, c.code AS currency_code, c.currency_type AS currency_type").
		Joins("JOIN currencies c ON c.id = b.currency_id").
		Where("b.wallet_id IN ?", ids).
		Order("c.code").
		Scan(&rows).Error; err != nil {
		return database.MapGormErrorToDomain(err)
	}
	for _, row := range rows {
		w := byID[row.WalletID]
		w.Balances = append(w.Balances, &dto.BalanceRead{
			ID:           row.ID,
			WalletID:     row.WalletID,
			CurrencyID:   row.CurrencyID,
			CurrencyCode: row.CurrencyCode,
			CurrencyType: row.CurrencyType,
			Amount:       row.Amount,
		})
	}
	return nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, wu *dto.WalletUpdate) error {
	updates := make(map[string]interface{})
	if wu.Name != nil {
		updates["name"] = *wu.Name
	}
	if wu.Type != nil {
		updates["type"] = *wu.Type
	}
	if wu.TotalValue != nil {
		updates["total_value"] = *wu.TotalValue
	}
	if len(updates) == 0 {
		return nil
	}
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Wallet{}).
			Where("id = ?", id).
			Updates(updates).Error
	})
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WrapError(func() error {
		db := r.db.WithContext(ctx)
		if err := db.Delete(&Balance{}, "wallet_id = ?", id).Error; err != nil {
			return err
		}
		return db.Delete(&Wallet{}, "id = ?", id).Error
	})
}

func (r *repository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return database.WrapError(func() error {
		db := r.db.WithContext(ctx)
		owned := db.Model(&Wallet{}).Select("id").Where("user_id = ?", userID)
		if err := db.Where("wallet_id IN (?)", owned).Delete(&Balance{}).Error; err != nil {
			return err
		}
		return db.Delete(&Wallet{}, "user_id = ?", userID).Error
	})
}

func (r *repository) ExistsByName(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	excludeID uuid.UUID,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Wallet{}).
		Where("user_id = ? AND name = ?", userID, name).
		Where("id <> ?", excludeID).
		Count(&count).Error
	if err != nil {
		return false, database.MapGormErrorToDomain(err)
	}
	return count > 0, nil
}

func (r *repository) CreateBalance(ctx context.Context, create *dto.BalanceCreate) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&Balance{
			ID:         create.ID,
			WalletID:   create.WalletID,
			CurrencyID: create.CurrencyID,
			Amount:     database.Money(create.Amount),
		}).Error
	})
}

func (r *repository) UpdateBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Balance{}).
			Where("id = ?", id).
			Update("amount", amount).Error
	})
}

func (r *repository) DeleteBalance(ctx context.Context, id uuid.UUID) error {
	return database.WrapError(func() error {
		return r.db.WithContext(ctx).Delete(&Balance{}, "id = ?", id).Error
	})
}

func (r *repository) CurrencyIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("wallet_balances AS b").
		Distinct("b.currency_id").
		Joins("JOIN wallets w ON w.id = b.wallet_id").
		Where("w.user_id = ?", userID).
		Pluck("b.currency_id", &ids).Error
	if err != nil {
		return nil, database.MapGormErrorToDomain(err)
	}
	return ids, nil
}

func mapModelToDTO(w *Wallet) *dto.WalletRead {
	return &dto.WalletRead{
		ID:         w.ID,
		UserID:     w.UserID,
		Name:       w.Name,
		Type:       w.Type,
		TotalValue: w.TotalValue.Decimal(),
		Balances:   []*dto.BalanceRead{},
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}
