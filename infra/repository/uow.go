package repository

import (
	"context"
	"fmt"
	"reflect"

	assetrepo "github.com/amirasaad/networth/infra/repository/asset"
	assettyperepo "github.com/amirasaad/networth/infra/repository/assettype"
	categoryrepo "github.com/amirasaad/networth/infra/repository/category"
	currencyrepo "github.com/amirasaad/networth/infra/repository/currency"
	exchangerepo "github.com/amirasaad/networth/infra/repository/exchange"
	summaryrepo "github.com/amirasaad/networth/infra/repository/summary"
	transactionrepo "github.com/amirasaad/networth/infra/repository/transaction"
	userrepo "github.com/amirasaad/networth/infra/repository/user"
	walletrepo "github.com/amirasaad/networth/infra/repository/wallet"
	"github.com/amirasaad/networth/pkg/repository"
	"github.com/amirasaad/networth/pkg/repository/asset"
	"github.com/amirasaad/networth/pkg/repository/assettype"
	"github.com/amirasaad/networth/pkg/repository/category"
	"github.com/amirasaad/networth/pkg/repository/currency"
	"github.com/amirasaad/networth/pkg/repository/exchange"
	"github.com/amirasaad/networth/pkg/repository/summary"
	"github.com/amirasaad/networth/pkg/repository/transaction"
	"github.com/amirasaad/networth/pkg/repository/user"
	"github.com/amirasaad/networth/pkg/repository/wallet"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// Repositories obtained inside Do share the transaction session.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			typeOf((*user.Repository)(nil)):        func(db *gorm.DB) any { return userrepo.New(db) },
			typeOf((*summary.Repository)(nil)):     func(db *gorm.DB) any { return summaryrepo.New(db) },
			typeOf((*currency.Repository)(nil)):    func(db *gorm.DB) any { return currencyrepo.New(db) },
			typeOf((*exchange.Repository)(nil)):    func(db *gorm.DB) any { return exchangerepo.New(db) },
			typeOf((*category.Repository)(nil)):    func(db *gorm.DB) any { return categoryrepo.New(db) },
			typeOf((*assettype.Repository)(nil)):   func(db *gorm.DB) any { return assettyperepo.New(db) },
			typeOf((*wallet.Repository)(nil)):      func(db *gorm.DB) any { return walletrepo.New(db) },
			typeOf((*transaction.Repository)(nil)): func(db *gorm.DB) any { return transactionrepo.New(db) },
			typeOf((*asset.Repository)(nil)):       func(db *gorm.DB) any { return assetrepo.New(db) },
		},
	}
}

// Do runs fn in a transaction boundary, providing a UoW bound to it.
// Calling Do on a UoW already inside a transaction reuses that transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry})
	})
}

// GetRepository returns the repository registered for the interface repoType
// points to, bound to the current transaction when there is one.
func (u *UoW) GetRepository(repoType any) (any, error) {
	t := typeOf(repoType)
	constructor, ok := u.repoRegistry[t]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", t)
	}
	if u.tx != nil {
		return constructor(u.tx), nil
	}
	return constructor(u.db), nil
}

func typeOf(repoType any) reflect.Type {
	t := reflect.TypeOf(repoType)
	if t != nil && t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}
