package exchange

import (
	"context"
	"errors"

	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/domain/currency"
	"github.com/amirasaad/networth/pkg/repository"
	currencyrepo "github.com/amirasaad/networth/pkg/repository/currency"
	exchangerepo "github.com/amirasaad/networth/pkg/repository/exchange"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type pair struct{ from, to uuid.UUID }

// Resolver looks up a user's rates inside one unit of work and remembers
// every rate it resolved. It must not outlive the unit of work it was
// created for.
type Resolver struct {
	uow    repository.UnitOfWork
	userID uuid.UUID
	rates  map[pair]currency.Rate
}

// NewResolver returns a resolver for userID's rates.
func NewResolver(uow repository.UnitOfWork, userID uuid.UUID) *Resolver {
	return &Resolver{uow: uow, userID: userID, rates: make(map[pair]currency.Rate)}
}

// Rate resolves from -> to: identity for equal currencies, then the stored
// row in either direction. A missing row yields *domain.ExchangeRateMissingError.
func (r *Resolver) Rate(ctx context.Context, from, to uuid.UUID) (currency.Rate, error) {
	if from == to {
		return currency.Identity(), nil
	}
	if rate, ok := r.rates[pair{from, to}]; ok {
		return rate, nil
	}

	repo, err := repository.Get[exchangerepo.Repository](r.uow)
	if err != nil {
		return currency.Rate{}, err
	}

	rate, err := r.lookup(ctx, repo, from, to)
	if err != nil {
		return currency.Rate{}, err
	}
	r.rates[pair{from, to}] = rate
	return rate, nil
}

func (r *Resolver) lookup(
	ctx context.Context,
	repo exchangerepo.Repository,
	from, to uuid.UUID,
) (currency.Rate, error) {
	row, err := repo.FindPair(ctx, r.userID, from, to)
	if err == nil {
		return currency.Forward(row.Rate), nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return currency.Rate{}, err
	}

	row, err = repo.FindPair(ctx, r.userID, to, from)
	if err == nil {
		return currency.Reverse(row.Rate), nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return currency.Rate{}, err
	}
	return currency.Rate{}, r.missing(ctx, from, to)
}

// Convert expresses amount, held in from, in to.
func (r *Resolver) Convert(ctx context.Context, amount decimal.Decimal, from, to uuid.UUID) (decimal.Decimal, error) {
	rate, err := r.Rate(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return rate.Convert(amount), nil
}

// Forget drops every remembered rate. Callers that write exchange rows
// through the same unit of work call it before resolving again.
func (r *Resolver) Forget() {
	r.rates = make(map[pair]currency.Rate)
}

func (r *Resolver) missing(ctx context.Context, from, to uuid.UUID) error {
	e := &domain.ExchangeRateMissingError{From: from.String(), To: to.String()}
	repo, err := repository.Get[currencyrepo.Repository](r.uow)
	if err != nil {
		return e
	}
	if c, err := repo.Get(ctx, from); err == nil {
		e.From = c.Code
	}
	if c, err := repo.Get(ctx, to); err == nil {
		e.To = c.Code
	}
	return e
}
