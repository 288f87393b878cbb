// Package transaction records income, expense and transfer transactions
// and keeps balances, wallet totals and the user summary in step with them.
package transaction

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/domain/currency"
	"github.com/amirasaad/networth/pkg/domain/transaction"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository"
	categoryrepo "github.com/amirasaad/networth/pkg/repository/category"
	currencyrepo "github.com/amirasaad/networth/pkg/repository/currency"
	transactionrepo "github.com/amirasaad/networth/pkg/repository/transaction"
	"github.com/amirasaad/networth/pkg/service/summary"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Input holds the fields of a new transaction.
type Input struct {
	Type         string
	FromWalletID *uuid.UUID
	ToWalletID   *uuid.UUID
	CategoryID   *uuid.UUID
	CurrencyID   uuid.UUID
	Amount       decimal.Decimal
	Date         time.Time
	Description  string
}

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger.With("service", "transaction")}
}

// Create records a transaction and applies its balance effects. Nothing is
// stored when any effect fails.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in Input) (read *dto.TransactionRead, err error) {
	log := s.logger.With("user_id", userID, "type", in.Type)
	t, err := transaction.ParseType("type", in.Type)
	if err != nil {
		return nil, err
	}
	tx := &transaction.Transaction{
		ID:           uuid.New(),
		UserID:       userID,
		FromWalletID: in.FromWalletID,
		ToWalletID:   in.ToWalletID,
		CategoryID:   in.CategoryID,
		CurrencyID:   in.CurrencyID,
		Type:         t,
		Amount:       in.Amount,
		Date:         in.Date,
		Description:  strings.TrimSpace(in.Description),
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now().UTC()
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		l, err := summary.Open(ctx, uow, userID)
		if err != nil {
			return err
		}
		repo, err := repository.Get[transactionrepo.Repository](uow)
		if err != nil {
			return err
		}
		e := newEffector(uow, l, userID)
		if err := e.checkReferences(ctx, tx); err != nil {
			return err
		}
		if err := repo.Create(ctx, &dto.TransactionCreate{
			ID:           tx.ID,
			UserID:       userID,
			FromWalletID: tx.FromWalletID,
			ToWalletID:   tx.ToWalletID,
			CategoryID:   tx.CategoryID,
			CurrencyID:   tx.CurrencyID,
			Type:         string(tx.Type),
			Amount:       tx.Amount,
			Date:         tx.Date,
			Description:  tx.Description,
		}); err != nil {
			return err
		}
		if err := e.apply(ctx, tx, tx.Effects()); err != nil {
			return err
		}
		if err := l.Save(ctx); err != nil {
			return err
		}
		read, err = repo.Get(ctx, userID, tx.ID)
		return err
	})
	if err != nil {
		log.Error("creating transaction failed", "error", err)
		return nil, err
	}
	log.Info("transaction created", "transaction_id", read.ID, "amount", read.Amount)
	return read, nil
}

// Update replaces a transaction. The effects of the stored version are
// reversed and those of the new version applied, netted per wallet and
// currency, so only the final balances must stay non-negative.
func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	update *dto.TransactionUpdate,
) (read *dto.TransactionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		l, err := summary.Open(ctx, uow, userID)
		if err != nil {
			return err
		}
		repo, err := repository.Get[transactionrepo.Repository](uow)
		if err != nil {
			return err
		}
		current, err := repo.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		before := fromRead(current)
		after, err := applyUpdate(fromRead(current), update)
		if err != nil {
			return err
		}

		e := newEffector(uow, l, userID)
		if err := e.checkReferences(ctx, after); err != nil {
			return err
		}
		effects := transaction.Net(transaction.Reverse(before.Effects()), after.Effects())
		if err := e.apply(ctx, after, effects); err != nil {
			return err
		}
		if err := repo.Save(ctx, &dto.TransactionRead{
			ID:           id,
			UserID:       userID,
			FromWalletID: after.FromWalletID,
			ToWalletID:   after.ToWalletID,
			CategoryID:   after.CategoryID,
			CurrencyID:   after.CurrencyID,
			Type:         string(after.Type),
			Amount:       after.Amount,
			Date:         after.Date,
			Description:  after.Description,
		}); err != nil {
			return err
		}
		if err := l.Save(ctx); err != nil {
			return err
		}
		read, err = repo.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		s.logger.Error("updating transaction failed", "user_id", userID, "transaction_id", id, "error", err)
		return nil, err
	}
	return read, nil
}

// Delete reverses a transaction's effects and removes it.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		l, err := summary.Open(ctx, uow, userID)
		if err != nil {
			return err
		}
		repo, err := repository.Get[transactionrepo.Repository](uow)
		if err != nil {
			return err
		}
		current, err := repo.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		tx := fromRead(current)
		e := newEffector(uow, l, userID)
		if err := e.apply(ctx, nil, transaction.Reverse(tx.Effects())); err != nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		return l.Save(ctx)
	})
	if err != nil {
		s.logger.Error("deleting transaction failed", "user_id", userID, "transaction_id", id, "error", err)
	}
	return err
}

// Get returns one of userID's transactions.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (read *dto.TransactionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[transactionrepo.Repository](uow)
		if err != nil {
			return err
		}
		read, err = repo.Get(ctx, userID, id)
		return err
	})
	return
}

// Filter lists userID's transactions, newest first, with the total number
// of matches before paging.
func (s *Service) Filter(
	ctx context.Context,
	userID uuid.UUID,
	filter *dto.TransactionFilter,
) (rows []*dto.TransactionRead, total int64, err error) {
	if err := normalizeFilter(filter); err != nil {
		return nil, 0, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[transactionrepo.Repository](uow)
		if err != nil {
			return err
		}
		rows, total, err = repo.Filter(ctx, userID, filter)
		return err
	})
	return
}

func normalizeFilter(filter *dto.TransactionFilter) error {
	if filter == nil || filter.Type == nil {
		return nil
	}
	t, err := transaction.ParseType("type", *filter.Type)
	if err != nil {
		return err
	}
	typ := string(t)
	filter.Type = &typ
	return nil
}

func fromRead(r *dto.TransactionRead) *transaction.Transaction {
	return &transaction.Transaction{
		ID:           r.ID,
		UserID:       r.UserID,
		FromWalletID: r.FromWalletID,
		ToWalletID:   r.ToWalletID,
		CategoryID:   r.CategoryID,
		CurrencyID:   r.CurrencyID,
		Type:         transaction.Type(r.Type),
		Amount:       r.Amount,
		Date:         r.Date,
		Description:  r.Description,
	}
}

func applyUpdate(tx *transaction.Transaction, update *dto.TransactionUpdate) (*transaction.Transaction, error) {
	if update.Type != nil {
		t, err := transaction.ParseType("type", *update.Type)
		if err != nil {
			return nil, err
		}
		tx.Type = t
	}
	if update.FromWalletID != nil {
		tx.FromWalletID = update.FromWalletID
	}
	if update.ToWalletID != nil {
		tx.ToWalletID = update.ToWalletID
	}
	switch {
	case update.ClearCategory:
		tx.CategoryID = nil
	case update.CategoryID != nil:
		tx.CategoryID = update.CategoryID
	}
	if update.CurrencyID != nil {
		tx.CurrencyID = *update.CurrencyID
	}
	if update.Amount != nil {
		tx.Amount = *update.Amount
	}
	if update.Date != nil {
		tx.Date = *update.Date
	}
	if update.Description != nil {
		tx.Description = strings.TrimSpace(*update.Description)
	}
	tx.Normalize()
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	return tx, nil
}

// effector applies signed effects to the wallets of one user.
type effector struct {
	uow    repository.UnitOfWork
	ledger *summary.Ledger
	userID uuid.UUID
}

func newEffector(uow repository.UnitOfWork, l *summary.Ledger, userID uuid.UUID) *effector {
	return &effector{uow: uow, ledger: l, userID: userID}
}

// checkReferences resolves the currency and category of tx for the user.
// A category must carry the transaction's type.
func (e *effector) checkReferences(ctx context.Context, tx *transaction.Transaction) error {
	currencies, err := repository.Get[currencyrepo.Repository](e.uow)
	if err != nil {
		return err
	}
	if _, err := currencies.GetVisible(ctx, e.userID, tx.CurrencyID); err != nil {
		return err
	}
	if tx.CategoryID == nil {
		return nil
	}
	categories, err := repository.Get[categoryrepo.Repository](e.uow)
	if err != nil {
		return err
	}
	c, err := categories.GetVisible(ctx, e.userID, *tx.CategoryID)
	if err != nil {
		return err
	}
	if c.Type != string(tx.Type) {
		return domain.NewValidationError("category_id", "category type must match transaction type")
	}
	return nil
}

// apply loads each affected wallet once, applies its effects and syncs it.
// after is the resulting transaction; a transfer needs a balance in its
// currency on both sides.
func (e *effector) apply(ctx context.Context, after *transaction.Transaction, effects []transaction.Effect) error {
	if after != nil && after.Type == transaction.Transfer {
		if err := e.checkTransfer(ctx, after); err != nil {
			return err
		}
	}

	currencies, err := repository.Get[currencyrepo.Repository](e.uow)
	if err != nil {
		return err
	}
	order, groups := transaction.ByWallet(effects)
	for _, walletID := range order {
		w, err := e.ledger.LoadWallet(ctx, walletID)
		if err != nil {
			return err
		}
		for _, eff := range groups[walletID] {
			c, err := currencies.Get(ctx, eff.CurrencyID)
			if err != nil {
				return err
			}
			if _, _, err := w.Apply(eff.CurrencyID, currency.Type(c.CurrencyType), eff.Amount); err != nil {
				return err
			}
		}
		if err := e.ledger.SyncWallet(ctx, w); err != nil {
			return err
		}
	}
	return nil
}

func (e *effector) checkTransfer(ctx context.Context, tx *transaction.Transaction) error {
	from, err := e.ledger.LoadWallet(ctx, *tx.FromWalletID)
	if err != nil {
		return err
	}
	if _, ok := from.Balance(tx.CurrencyID); !ok {
		return domain.ErrInsufficientBalance
	}
	to, err := e.ledger.LoadWallet(ctx, *tx.ToWalletID)
	if err != nil {
		return err
	}
	if _, ok := to.Balance(tx.CurrencyID); !ok {
		return domain.NewValidationError("to_wallet_id", "wallet holds no balance in the transaction currency")
	}
	return nil
}
