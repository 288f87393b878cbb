package summary

import (
	"context"

	"github.com/amirasaad/networth/pkg/domain/currency"
	"github.com/amirasaad/networth/pkg/domain/summary"
	"github.com/amirasaad/networth/pkg/domain/wallet"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository"
	assetrepo "github.com/amirasaad/networth/pkg/repository/asset"
	summaryrepo "github.com/amirasaad/networth/pkg/repository/summary"
	walletrepo "github.com/amirasaad/networth/pkg/repository/wallet"
	"github.com/amirasaad/networth/pkg/service/exchange"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger keeps one user's wallet totals and summary consistent during a
// single unit of work. Opening it locks the summary row, so every write
// that goes through a Ledger is serialized per user.
//
//	l, err := summary.Open(ctx, uow, userID)
//	w, err := l.LoadWallet(ctx, walletID)
//	_, _, err = w.Apply(currencyID, currencyType, amount)
//	err = l.SyncWallet(ctx, w)
//	err = l.Save(ctx)
type Ledger struct {
	userID    uuid.UUID
	summary   *summary.Summary
	resolver  *exchange.Resolver
	summaries summaryrepo.Repository
	wallets   walletrepo.Repository
	assets    assetrepo.Repository
	snapshots map[uuid.UUID]map[uuid.UUID]decimal.Decimal
	dirty     bool
}

// Open locks userID's summary inside uow.
func Open(ctx context.Context, uow repository.UnitOfWork, userID uuid.UUID) (*Ledger, error) {
	summaries, err := repository.Get[summaryrepo.Repository](uow)
	if err != nil {
		return nil, err
	}
	wallets, err := repository.Get[walletrepo.Repository](uow)
	if err != nil {
		return nil, err
	}
	assets, err := repository.Get[assetrepo.Repository](uow)
	if err != nil {
		return nil, err
	}
	row, err := summaries.GetForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Ledger{
		userID: userID,
		summary: &summary.Summary{
			ID:             row.ID,
			UserID:         row.UserID,
			BaseCurrencyID: row.BaseCurrencyID,
			NetWorth:       row.NetWorth,
			AssetsValue:    row.AssetsValue,
			WalletsValue:   row.WalletsValue,
		},
		resolver:  exchange.NewResolver(uow, userID),
		summaries: summaries,
		wallets:   wallets,
		assets:    assets,
		snapshots: make(map[uuid.UUID]map[uuid.UUID]decimal.Decimal),
	}, nil
}

// Base returns the currency every aggregate is expressed in.
func (l *Ledger) Base() uuid.UUID { return l.summary.BaseCurrencyID }

// Summary returns the in-memory summary, including unsaved changes.
func (l *Ledger) Summary() *summary.Summary { return l.summary }

// Resolver returns the rate resolver bound to this unit of work.
func (l *Ledger) Resolver() *exchange.Resolver { return l.resolver }

// Convert expresses amount, held in currencyID, in the base currency.
func (l *Ledger) Convert(ctx context.Context, amount decimal.Decimal, currencyID uuid.UUID) (decimal.Decimal, error) {
	return l.resolver.Convert(ctx, amount, currencyID, l.Base())
}

// ConvertFunc adapts Convert for wallet.Recompute.
func (l *Ledger) ConvertFunc(ctx context.Context) wallet.ConvertFunc {
	return func(amount decimal.Decimal, currencyID uuid.UUID) (decimal.Decimal, error) {
		return l.Convert(ctx, amount, currencyID)
	}
}

// LoadWallet locks one of the user's wallets and remembers its balances so
// SyncWallet can write back only what changed.
func (l *Ledger) LoadWallet(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	row, err := l.wallets.GetForUpdate(ctx, l.userID, id)
	if err != nil {
		return nil, err
	}
	w := WalletFromRead(row)
	l.snapshot(w)
	return w, nil
}

// SyncWallet persists balance changes made to w since it was loaded,
// recomputes its total and moves the difference into wallets_value.
func (l *Ledger) SyncWallet(ctx context.Context, w *wallet.Wallet) error {
	before := l.snapshots[w.ID]
	seen := make(map[uuid.UUID]bool, len(w.Balances))
	for _, b := range w.Balances {
		seen[b.ID] = true
		old, ok := before[b.ID]
		switch {
		case !ok:
			if err := l.wallets.CreateBalance(ctx, &dto.BalanceCreate{
				ID:         b.ID,
				WalletID:   w.ID,
				CurrencyID: b.CurrencyID,
				Amount:     b.Amount,
			}); err != nil {
				return err
			}
		case !old.Equal(b.Amount):
			if err := l.wallets.UpdateBalance(ctx, b.ID, b.Amount); err != nil {
				return err
			}
		}
	}
	for id := range before {
		if !seen[id] {
			if err := l.wallets.DeleteBalance(ctx, id); err != nil {
				return err
			}
		}
	}

	delta, err := w.Recompute(l.ConvertFunc(ctx))
	if err != nil {
		return err
	}
	if !delta.IsZero() {
		total := w.TotalValue
		if err := l.wallets.Update(ctx, w.ID, &dto.WalletUpdate{TotalValue: &total}); err != nil {
			return err
		}
		if err := l.AddWallets(delta); err != nil {
			return err
		}
	}
	l.snapshot(w)
	return nil
}

// CreateWallet computes the total of a new wallet and stores it with its
// balances.
func (l *Ledger) CreateWallet(ctx context.Context, w *wallet.Wallet) error {
	w.TotalValue = decimal.Zero
	if _, err := w.Recompute(l.ConvertFunc(ctx)); err != nil {
		return err
	}
	balances := make([]dto.BalanceCreate, 0, len(w.Balances))
	for _, b := range w.Balances {
		balances = append(balances, dto.BalanceCreate{
			ID:         b.ID,
			WalletID:   w.ID,
			CurrencyID: b.CurrencyID,
			Amount:     b.Amount,
		})
	}
	if err := l.wallets.Create(ctx, &dto.WalletCreate{
		ID:         w.ID,
		UserID:     w.UserID,
		Name:       w.Name,
		Type:       string(w.Type),
		TotalValue: w.TotalValue,
		Balances:   balances,
	}); err != nil {
		return err
	}
	l.snapshot(w)
	return l.AddWallets(w.TotalValue)
}

// DropWallet deletes w with its balances and removes its total from
// wallets_value.
func (l *Ledger) DropWallet(ctx context.Context, w *wallet.Wallet) error {
	if err := l.wallets.Delete(ctx, w.ID); err != nil {
		return err
	}
	delete(l.snapshots, w.ID)
	return l.AddWallets(w.TotalValue.Neg())
}

// AddWallets moves wallets_value by delta.
func (l *Ledger) AddWallets(delta decimal.Decimal) error {
	if err := l.summary.Apply(delta, decimal.Zero); err != nil {
		return err
	}
	l.dirty = true
	return nil
}

// AddAssets moves assets_value by delta.
func (l *Ledger) AddAssets(delta decimal.Decimal) error {
	if err := l.summary.Apply(decimal.Zero, delta); err != nil {
		return err
	}
	l.dirty = true
	return nil
}

// SetBase switches the base currency. Totals are stale until RecomputeAll.
func (l *Ledger) SetBase(currencyID uuid.UUID) {
	l.summary.BaseCurrencyID = currencyID
	l.dirty = true
}

// RecomputeAll rebuilds every wallet total and both summary figures from
// balances and assets at current rates.
func (l *Ledger) RecomputeAll(ctx context.Context) error {
	rows, err := l.wallets.ListByUser(ctx, l.userID)
	if err != nil {
		return err
	}
	walletsValue := decimal.Zero
	for _, row := range rows {
		w := WalletFromRead(row)
		delta, err := w.Recompute(l.ConvertFunc(ctx))
		if err != nil {
			return err
		}
		if !delta.IsZero() {
			total := w.TotalValue
			if err := l.wallets.Update(ctx, w.ID, &dto.WalletUpdate{TotalValue: &total}); err != nil {
				return err
			}
		}
		walletsValue = walletsValue.Add(w.TotalValue)
	}

	assets, err := l.assets.ListByUser(ctx, l.userID)
	if err != nil {
		return err
	}
	assetsValue := decimal.Zero
	for _, a := range assets {
		v, err := l.Convert(ctx, a.Value, a.CurrencyID)
		if err != nil {
			return err
		}
		assetsValue = assetsValue.Add(v)
	}

	if err := l.summary.Reset(walletsValue, assetsValue); err != nil {
		return err
	}
	l.dirty = true
	return nil
}

// Save writes the summary row if anything changed.
func (l *Ledger) Save(ctx context.Context) error {
	if !l.dirty {
		return nil
	}
	base := l.summary.BaseCurrencyID
	netWorth := l.summary.NetWorth
	assets := l.summary.AssetsValue
	wallets := l.summary.WalletsValue
	if err := l.summaries.Update(ctx, l.userID, &dto.SummaryUpdate{
		BaseCurrencyID: &base,
		NetWorth:       &netWorth,
		AssetsValue:    &assets,
		WalletsValue:   &wallets,
	}); err != nil {
		return err
	}
	l.dirty = false
	return nil
}

func (l *Ledger) snapshot(w *wallet.Wallet) {
	amounts := make(map[uuid.UUID]decimal.Decimal, len(w.Balances))
	for _, b := range w.Balances {
		amounts[b.ID] = b.Amount
	}
	l.snapshots[w.ID] = amounts
}

// WalletFromRead maps a stored wallet onto the aggregate.
func WalletFromRead(row *dto.WalletRead) *wallet.Wallet {
	w := &wallet.Wallet{
		ID:         row.ID,
		UserID:     row.UserID,
		Name:       row.Name,
		Type:       currency.Type(row.Type),
		TotalValue: row.TotalValue,
		Balances:   make([]*wallet.Balance, 0, len(row.Balances)),
	}
	for _, b := range row.Balances {
		w.Balances = append(w.Balances, &wallet.Balance{
			ID:           b.ID,
			CurrencyID:   b.CurrencyID,
			CurrencyType: currency.Type(b.CurrencyType),
			Amount:       b.Amount,
		})
	}
	return w
}
