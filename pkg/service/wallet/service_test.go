package wallet_test

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository"
	exchangerepo "github.com/amirasaad/networth/pkg/repository/exchange"
	"github.com/amirasaad/networth/pkg/service/summary"
	"github.com/amirasaad/networth/pkg/service/transaction"
	"github.com/amirasaad/networth/pkg/service/wallet"
	"github.com/amirasaad/networth/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	uow      repository.UnitOfWork
	svc      *wallet.Service
	summary  *summary.Service
	userID   uuid.UUID
	usd, eur uuid.UUID
	btc      uuid.UUID
}

func setup(t *testing.T) *fixture {
	t.Helper()
	uow, _ := testutils.NewTestUoW(t)
	return &fixture{
		uow:     uow,
		svc:     wallet.New(uow, testutils.Logger()),
		summary: summary.New(uow, nil, testutils.Logger()),
		userID:  testutils.NewUser(t, uow, "alice", "USD"),
		usd:     testutils.CurrencyID(t, uow, "USD"),
		eur:     testutils.CurrencyID(t, uow, "EUR"),
		btc:     testutils.CurrencyID(t, uow, "BTC"),
	}
}

// addRate stores 1 from = rate to for the fixture user.
func (f *fixture) addRate(t *testing.T, from, to uuid.UUID, rate string) {
	t.Helper()
	ctx := context.Background()
	err := f.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[exchangerepo.Repository](uow)
		if err != nil {
			return err
		}
		return repo.Create(ctx, &dto.ExchangeCreate{
			ID:             uuid.New(),
			UserID:         f.userID,
			FromCurrencyID: from,
			ToCurrencyID:   to,
			Rate:           decimal.RequireFromString(rate),
			Date:           time.Now(),
		})
	})
	require.NoError(t, err)
}

func (f *fixture) walletsValue(t *testing.T) decimal.Decimal {
	t.Helper()
	s, err := f.summary.Get(context.Background(), f.userID)
	require.NoError(t, err)
	assert.True(t, s.NetWorth.Equal(s.WalletsValue.Add(s.AssetsValue)))
	return s.WalletsValue
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("total is the converted sum of balances", func(t *testing.T) {
		f := setup(t)
		f.addRate(t, f.eur, f.usd, "1.1")
		w, err := f.svc.Create(ctx, f.userID, "Main", "fiat", []wallet.BalanceInput{
			{CurrencyID: f.usd, Amount: d("1000")},
			{CurrencyID: f.eur, Amount: d("100")},
		})
		require.NoError(t, err)
		assert.Equal(t, "Main", w.Name)
		assert.Len(t, w.Balances, 2)
		assert.True(t, d("1110").Equal(w.TotalValue), w.TotalValue.String())
		assert.True(t, d("1110").Equal(f.walletsValue(t)))
	})

	t.Run("balance currency must match wallet type", func(t *testing.T) {
		f := setup(t)
		_, err := f.svc.Create(ctx, f.userID, "Main", "fiat", []wallet.BalanceInput{
			{CurrencyID: f.btc, Amount: d("1")},
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
		rows, err := f.svc.List(ctx, f.userID)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("one balance per currency", func(t *testing.T) {
		f := setup(t)
		_, err := f.svc.Create(ctx, f.userID, "Main", "fiat", []wallet.BalanceInput{
			{CurrencyID: f.usd, Amount: d("1")},
			{CurrencyID: f.usd, Amount: d("2")},
		})
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	t.Run("names are unique per user", func(t *testing.T) {
		f := setup(t)
		_, err := f.svc.Create(ctx, f.userID, "Main", "fiat", nil)
		require.NoError(t, err)
		_, err = f.svc.Create(ctx, f.userID, "Main", "crypto", nil)
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)

		other := testutils.NewUser(t, f.uow, "bob", "USD")
		_, err = f.svc.Create(ctx, other, "Main", "fiat", nil)
		assert.NoError(t, err)
	})

	t.Run("missing rate rolls back", func(t *testing.T) {
		f := setup(t)
		_, err := f.svc.Create(ctx, f.userID, "Main", "fiat", []wallet.BalanceInput{
			{CurrencyID: f.eur, Amount: d("10")},
		})
		assert.ErrorIs(t, err, domain.ErrExchangeRateMissing)
		assert.True(t, f.walletsValue(t).IsZero())
	})
}

func TestBalances(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.addRate(t, f.usd, f.eur, "0.8")
	w, err := f.svc.Create(ctx, f.userID, "Main", "fiat", []wallet.BalanceInput{
		{CurrencyID: f.usd, Amount: d("500")},
	})
	require.NoError(t, err)

	w, err = f.svc.AddBalance(ctx, f.userID, w.ID, f.eur, d("80"))
	require.NoError(t, err)
	assert.True(t, d("600").Equal(w.TotalValue), w.TotalValue.String())
	assert.True(t, d("600").Equal(f.walletsValue(t)))

	_, err = f.svc.AddBalance(ctx, f.userID, w.ID, f.eur, d("1"))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	_, err = f.svc.AddBalance(ctx, f.userID, w.ID, f.btc, d("1"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	w, err = f.svc.SetBalance(ctx, f.userID, w.ID, f.usd, d("200"))
	require.NoError(t, err)
	assert.True(t, d("300").Equal(w.TotalValue), w.TotalValue.String())
	assert.True(t, d("300").Equal(f.walletsValue(t)))

	_, err = f.svc.SetBalance(ctx, f.userID, w.ID, f.usd, d("-1"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	w, err = f.svc.RemoveBalance(ctx, f.userID, w.ID, f.eur)
	require.NoError(t, err)
	assert.Len(t, w.Balances, 1)
	assert.True(t, d("200").Equal(w.TotalValue))
	assert.True(t, d("200").Equal(f.walletsValue(t)))

	_, err = f.svc.RemoveBalance(ctx, f.userID, w.ID, f.eur)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	w, err := f.svc.Create(ctx, f.userID, "Main", "fiat", []wallet.BalanceInput{{CurrencyID: f.usd, Amount: d("1")}})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.userID, "Savings", "fiat", nil)
	require.NoError(t, err)

	name := "Daily"
	w, err = f.svc.Update(ctx, f.userID, w.ID, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "Daily", w.Name)

	taken := "Savings"
	_, err = f.svc.Update(ctx, f.userID, w.ID, &taken, nil)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	padded := "  Savings "
	_, err = f.svc.Update(ctx, f.userID, w.ID, &padded, nil)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	padded = " Spending  "
	w, err = f.svc.Update(ctx, f.userID, w.ID, &padded, nil)
	require.NoError(t, err)
	assert.Equal(t, "Spending", w.Name)

	blank := "   "
	_, err = f.svc.Update(ctx, f.userID, w.ID, &blank, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	crypto := "crypto"
	_, err = f.svc.Update(ctx, f.userID, w.ID, nil, &crypto)
	assert.ErrorIs(t, err, domain.ErrValidation)

	empty, err := f.svc.Create(ctx, f.userID, "Empty", "fiat", nil)
	require.NoError(t, err)
	empty, err = f.svc.Update(ctx, f.userID, empty.ID, nil, &crypto)
	require.NoError(t, err)
	assert.Equal(t, "crypto", empty.Type)

	_, err = f.svc.Update(ctx, uuid.New(), w.ID, &name, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	main, err := f.svc.Create(ctx, f.userID, "Main", "fiat", []wallet.BalanceInput{{CurrencyID: f.usd, Amount: d("700")}})
	require.NoError(t, err)
	other, err := f.svc.Create(ctx, f.userID, "Other", "fiat", []wallet.BalanceInput{{CurrencyID: f.usd, Amount: d("300")}})
	require.NoError(t, err)

	txs := transaction.New(f.uow, testutils.Logger())
	_, err = txs.Create(ctx, f.userID, transaction.Input{
		Type:         "transfer",
		FromWalletID: &main.ID,
		ToWalletID:   &other.ID,
		CurrencyID:   f.usd,
		Amount:       d("100"),
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, f.userID, main.ID))
	assert.True(t, d("400").Equal(f.walletsValue(t)), f.walletsValue(t).String())

	_, err = f.svc.Get(ctx, f.userID, main.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	rows, total, err := txs.Filter(ctx, f.userID, &dto.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Zero(t, total)

	assert.ErrorIs(t, f.svc.Delete(ctx, f.userID, main.ID), domain.ErrNotFound)
}

func TestPrecision(t *testing.T) {
	ctx := context.Background()

	t.Run("full precision balance is stored exactly", func(t *testing.T) {
		f := setup(t)
		amount := d("1234567890.0123456789")
		created, err := f.svc.Create(ctx, f.userID, "Main", "fiat", []wallet.BalanceInput{
			{CurrencyID: f.usd, Amount: amount},
		})
		require.NoError(t, err)

		w, err := f.svc.Get(ctx, f.userID, created.ID)
		require.NoError(t, err)
		require.Len(t, w.Balances, 1)
		assert.True(t, amount.Equal(w.Balances[0].Amount), w.Balances[0].Amount.String())
		assert.True(t, amount.Equal(w.TotalValue), w.TotalValue.String())
		assert.True(t, amount.Equal(f.walletsValue(t)), f.walletsValue(t).String())
	})

	t.Run("wallets value overflow is rejected", func(t *testing.T) {
		f := setup(t)
		_, err := f.svc.Create(ctx, f.userID, "First", "fiat", []wallet.BalanceInput{
			{CurrencyID: f.usd, Amount: d("6000000000")},
		})
		require.NoError(t, err)

		_, err = f.svc.Create(ctx, f.userID, "Second", "fiat", []wallet.BalanceInput{
			{CurrencyID: f.usd, Amount: d("6000000000")},
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.True(t, d("6000000000").Equal(f.walletsValue(t)))
		rows, err := f.svc.List(ctx, f.userID)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("converted wallet total overflow is rejected", func(t *testing.T) {
		f := setup(t)
		f.addRate(t, f.eur, f.usd, "2")
		w, err := f.svc.Create(ctx, f.userID, "Main", "fiat", []wallet.BalanceInput{
			{CurrencyID: f.usd, Amount: d("1")},
		})
		require.NoError(t, err)

		_, err = f.svc.AddBalance(ctx, f.userID, w.ID, f.eur, d("6000000000"))
		assert.ErrorIs(t, err, domain.ErrValidation)
		got, err := f.svc.Get(ctx, f.userID, w.ID)
		require.NoError(t, err)
		assert.Len(t, got.Balances, 1)
		assert.True(t, d("1").Equal(f.walletsValue(t)))
	})
}
