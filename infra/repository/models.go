// Package repository wires the gorm-backed repositories behind a unit of work.
package repository

import (
	assetrepo "github.com/amirasaad/networth/infra/repository/asset"
	assettyperepo "github.com/amirasaad/networth/infra/repository/assettype"
	categoryrepo "github.com/amirasaad/networth/infra/repository/category"
	currencyrepo "github.com/amirasaad/networth/infra/repository/currency"
	exchangerepo "github.com/amirasaad/networth/infra/repository/exchange"
	summaryrepo "github.com/amirasaad/networth/infra/repository/summary"
	transactionrepo "github.com/amirasaad/networth/infra/repository/transaction"
	userrepo "github.com/amirasaad/networth/infra/repository/user"
	walletrepo "github.com/amirasaad/networth/infra/repository/wallet"
)

// Models lists every persisted model in dependency order, for AutoMigrate.
func Models() []any {
	return []any{
		&userrepo.User{},
		&currencyrepo.Currency{},
		&summaryrepo.Summary{},
		&exchangerepo.Exchange{},
		&categoryrepo.Category{},
		&assettyperepo.AssetType{},
		&walletrepo.Wallet{},
		&walletrepo.Balance{},
		&transactionrepo.Transaction{},
		&assetrepo.Asset{},
	}
}
