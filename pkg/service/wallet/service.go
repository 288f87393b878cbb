// Package wallet manages wallets and their per-currency balances. Every
// balance change moves the wallet total and the user's wallets value in
// the same unit of work.
package wallet

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/domain/currency"
	"github.com/amirasaad/networth/pkg/domain/wallet"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository"
	currencyrepo "github.com/amirasaad/networth/pkg/repository/currency"
	transactionrepo "github.com/amirasaad/networth/pkg/repository/transaction"
	walletrepo "github.com/amirasaad/networth/pkg/repository/wallet"
	"github.com/amirasaad/networth/pkg/service/summary"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceInput is an initial or added balance.
type BalanceInput struct {
	CurrencyID uuid.UUID
	Amount     decimal.Decimal
}

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger.With("service", "wallet")}
}

// Create stores a wallet with its initial balances. Its total is the sum
// of the balances in the user's base currency.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	name, walletType string,
	balances []BalanceInput,
) (read *dto.WalletRead, err error) {
	log := s.logger.With("user_id", userID, "name", name)
	t, err := currency.ParseType("type", walletType)
	if err != nil {
		return nil, err
	}
	w, err := wallet.New(userID, name, t)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		l, err := summary.Open(ctx, uow, userID)
		if err != nil {
			return err
		}
		wallets, err := repository.Get[walletrepo.Repository](uow)
		if err != nil {
			return err
		}
		exists, err := wallets.ExistsByName(ctx, userID, w.Name, uuid.Nil)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrAlreadyExists
		}
		for _, b := range balances {
			c, err := visibleCurrency(ctx, uow, userID, b.CurrencyID)
			if err != nil {
				return err
			}
			if _, err := w.AddBalance(c.ID, currency.Type(c.CurrencyType), b.Amount); err != nil {
				return err
			}
		}
		if err := l.CreateWallet(ctx, w); err != nil {
			return err
		}
		if err := l.Save(ctx); err != nil {
			return err
		}
		read, err = wallets.Get(ctx, userID, w.ID)
		return err
	})
	if err != nil {
		log.Error("creating wallet failed", "error", err)
		return nil, err
	}
	log.Info("wallet created", "wallet_id", read.ID, "total_value", read.TotalValue)
	return read, nil
}

// Get returns one of userID's wallets with its balances.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (read *dto.WalletRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[walletrepo.Repository](uow)
		if err != nil {
			return err
		}
		read, err = repo.Get(ctx, userID, id)
		return err
	})
	return
}

// List returns every wallet of userID.
func (s *Service) List(ctx context.Context, userID uuid.UUID) (rows []*dto.WalletRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[walletrepo.Repository](uow)
		if err != nil {
			return err
		}
		rows, err = repo.ListByUser(ctx, userID)
		return err
	})
	return
}

// Update renames a wallet or changes its type. A type change is accepted
// only when every balance already has the new type.
func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	name, walletType *string,
) (read *dto.WalletRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		l, err := summary.Open(ctx, uow, userID)
		if err != nil {
			return err
		}
		repo, err := repository.Get[walletrepo.Repository](uow)
		if err != nil {
			return err
		}
		w, err := l.LoadWallet(ctx, id)
		if err != nil {
			return err
		}
		update := &dto.WalletUpdate{}
		if name != nil {
			trimmed := strings.TrimSpace(*name)
			if err := wallet.ValidateName(trimmed); err != nil {
				return err
			}
			exists, err := repo.ExistsByName(ctx, userID, trimmed, id)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrAlreadyExists
			}
			update.Name = &trimmed
		}
		if walletType != nil {
			t, err := currency.ParseType("type", *walletType)
			if err != nil {
				return err
			}
			if err := w.CanChangeType(t); err != nil {
				return err
			}
			typ := string(t)
			update.Type = &typ
		}
		if err := repo.Update(ctx, id, update); err != nil {
			return err
		}
		read, err = repo.Get(ctx, userID, id)
		return err
	})
	return
}

// Delete removes a wallet, its balances and every transaction that
// references it. The wallet total leaves the user's wallets value.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		l, err := summary.Open(ctx, uow, userID)
		if err != nil {
			return err
		}
		transactions, err := repository.Get[transactionrepo.Repository](uow)
		if err != nil {
			return err
		}
		w, err := l.LoadWallet(ctx, id)
		if err != nil {
			return err
		}
		removed, err := transactions.DeleteByWallet(ctx, id)
		if err != nil {
			return err
		}
		if err := l.DropWallet(ctx, w); err != nil {
			return err
		}
		s.logger.Info("wallet deleted", "user_id", userID, "wallet_id", id, "transactions_removed", removed)
		return l.Save(ctx)
	})
	if err != nil {
		s.logger.Error("deleting wallet failed", "user_id", userID, "wallet_id", id, "error", err)
	}
	return err
}

// AddBalance opens a balance in a currency the wallet does not hold yet.
func (s *Service) AddBalance(
	ctx context.Context,
	userID, walletID, currencyID uuid.UUID,
	amount decimal.Decimal,
) (*dto.WalletRead, error) {
	return s.mutate(ctx, userID, walletID, func(ctx context.Context, uow repository.UnitOfWork, w *wallet.Wallet) error {
		c, err := visibleCurrency(ctx, uow, userID, currencyID)
		if err != nil {
			return err
		}
		_, err = w.AddBalance(c.ID, currency.Type(c.CurrencyType), amount)
		return err
	})
}

// SetBalance overwrites the amount of an existing balance.
func (s *Service) SetBalance(
	ctx context.Context,
	userID, walletID, currencyID uuid.UUID,
	amount decimal.Decimal,
) (*dto.WalletRead, error) {
	return s.mutate(ctx, userID, walletID, func(_ context.Context, _ repository.UnitOfWork, w *wallet.Wallet) error {
		_, err := w.SetAmount(currencyID, amount)
		return err
	})
}

// RemoveBalance destroys the balance held in currencyID.
func (s *Service) RemoveBalance(
	ctx context.Context,
	userID, walletID, currencyID uuid.UUID,
) (*dto.WalletRead, error) {
	return s.mutate(ctx, userID, walletID, func(_ context.Context, _ repository.UnitOfWork, w *wallet.Wallet) error {
		_, err := w.RemoveBalance(currencyID)
		return err
	})
}

func (s *Service) mutate(
	ctx context.Context,
	userID, walletID uuid.UUID,
	fn func(context.Context, repository.UnitOfWork, *wallet.Wallet) error,
) (read *dto.WalletRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		l, err := summary.Open(ctx, uow, userID)
		if err != nil {
			return err
		}
		w, err := l.LoadWallet(ctx, walletID)
		if err != nil {
			return err
		}
		if err := fn(ctx, uow, w); err != nil {
			return err
		}
		if err := l.SyncWallet(ctx, w); err != nil {
			return err
		}
		if err := l.Save(ctx); err != nil {
			return err
		}
		repo, err := repository.Get[walletrepo.Repository](uow)
		if err != nil {
			return err
		}
		read, err = repo.Get(ctx, userID, walletID)
		return err
	})
	if err != nil {
		s.logger.Error("updating wallet balance failed", "user_id", userID, "wallet_id", walletID, "error", err)
		return nil, err
	}
	return read, nil
}

func visibleCurrency(ctx context.Context, uow repository.UnitOfWork, userID, id uuid.UUID) (*dto.CurrencyRead, error) {
	repo, err := repository.Get[currencyrepo.Repository](uow)
	if err != nil {
		return nil, err
	}
	return repo.GetVisible(ctx, userID, id)
}
