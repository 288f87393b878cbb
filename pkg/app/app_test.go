package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	infracache "github.com/amirasaad/networth/infra/cache"
	infraeventbus "github.com/amirasaad/networth/infra/eventbus"
	"github.com/amirasaad/networth/pkg/app"
	"github.com/amirasaad/networth/pkg/config"
	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/domain/events"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/service/transaction"
	"github.com/amirasaad/networth/pkg/service/wallet"
	"github.com/amirasaad/networth/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) (*app.App, *infraeventbus.MemoryEventBus) {
	t.Helper()
	uow, _ := testutils.NewTestUoW(t)
	bus := infraeventbus.NewWithMemory(testutils.Logger())
	quotes := infracache.NewMemoryCache(0)
	t.Cleanup(quotes.Close)
	a := app.New(&app.Deps{
		Uow:       uow,
		RateCache: quotes,
		EventBus:  bus,
		Logger:    testutils.Logger(),
	}, &config.App{
		Auth: &config.Auth{Jwt: &config.Jwt{Secret: "secret", Algorithm: "HS256", ExpiryMinutes: 5}},
		RateCache: &config.RateCache{
			TTL: time.Minute,
		},
	})
	return a, bus
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

// assertConsistent checks that the summary agrees with the stored wallets.
func assertConsistent(t *testing.T, a *app.App, userID uuid.UUID) *dto.SummaryRead {
	t.Helper()
	ctx := context.Background()
	s, err := a.SummaryService.Get(ctx, userID)
	require.NoError(t, err)
	wallets, err := a.WalletService.List(ctx, userID)
	require.NoError(t, err)
	sum := decimal.Zero
	for _, w := range wallets {
		sum = sum.Add(w.TotalValue)
	}
	assert.Truef(t, sum.Equal(s.WalletsValue), "wallet totals %s != wallets_value %s", sum, s.WalletsValue)
	assert.True(t, s.NetWorth.Equal(s.WalletsValue.Add(s.AssetsValue)))
	return s
}

func balanceOf(t *testing.T, a *app.App, userID, walletID, currencyID uuid.UUID) decimal.Decimal {
	t.Helper()
	w, err := a.WalletService.Get(context.Background(), userID, walletID)
	require.NoError(t, err)
	for _, b := range w.Balances {
		if b.CurrencyID == currencyID {
			return b.Amount
		}
	}
	t.Fatalf("wallet %s has no balance in %s", walletID, currencyID)
	return decimal.Zero
}

func TestNetWorthScenarios(t *testing.T) {
	ctx := context.Background()
	a, bus := newApp(t)
	uow := a.Deps.Uow
	usd := testutils.CurrencyID(t, uow, "USD")
	groceries := testutils.CategoryID(t, uow, "Groceries")

	u, err := a.UserService.Register(ctx, "alice", "alice@example.com", "Secret123", "USD")
	require.NoError(t, err)
	userID := u.ID

	// 1. fiat wallet W holding 1000 USD
	w, err := a.WalletService.Create(ctx, userID, "W", "fiat", []wallet.BalanceInput{{CurrencyID: usd, Amount: dec("1000")}})
	require.NoError(t, err)
	s := assertConsistent(t, a, userID)
	assertDecimal(t, "1000", s.WalletsValue, "wallets_value")
	assertDecimal(t, "1000", s.NetWorth, "net_worth")

	// 2. asset House worth 350000 USD
	_, err = a.AssetService.Create(ctx, userID, "House", dec("350000"), usd, nil)
	require.NoError(t, err)
	s = assertConsistent(t, a, userID)
	assertDecimal(t, "350000", s.AssetsValue, "assets_value")
	assertDecimal(t, "351000", s.NetWorth, "net_worth")

	// 3. expense of 100 USD from W
	expense, err := a.TransactionService.Create(ctx, userID, transaction.Input{
		Type:         "expense",
		FromWalletID: &w.ID,
		CategoryID:   &groceries,
		CurrencyID:   usd,
		Amount:       dec("100"),
	})
	require.NoError(t, err)
	assertDecimal(t, "900", balanceOf(t, a, userID, w.ID, usd), "W(USD)")
	s = assertConsistent(t, a, userID)
	assertDecimal(t, "900", s.WalletsValue, "wallets_value")
	assertDecimal(t, "350900", s.NetWorth, "net_worth")

	// 4. second wallet W2 and a transfer of 200 USD
	w2, err := a.WalletService.Create(ctx, userID, "W2", "fiat", []wallet.BalanceInput{{CurrencyID: usd, Amount: dec("1000")}})
	require.NoError(t, err)
	_, err = a.TransactionService.Create(ctx, userID, transaction.Input{
		Type:         "transfer",
		FromWalletID: &w.ID,
		ToWalletID:   &w2.ID,
		CurrencyID:   usd,
		Amount:       dec("200"),
	})
	require.NoError(t, err)
	assertDecimal(t, "700", balanceOf(t, a, userID, w.ID, usd), "W(USD)")
	assertDecimal(t, "1200", balanceOf(t, a, userID, w2.ID, usd), "W2(USD)")
	s = assertConsistent(t, a, userID)
	assertDecimal(t, "1900", s.WalletsValue, "wallets_value")
	assertDecimal(t, "351900", s.NetWorth, "net_worth")

	// 5. deleting the expense credits W again
	require.NoError(t, a.TransactionService.Delete(ctx, userID, expense.ID))
	assertDecimal(t, "800", balanceOf(t, a, userID, w.ID, usd), "W(USD)")
	s = assertConsistent(t, a, userID)
	assertDecimal(t, "2000", s.WalletsValue, "wallets_value")
	assertDecimal(t, "352000", s.NetWorth, "net_worth")

	// 10. an expense larger than the balance changes nothing
	_, err = a.TransactionService.Create(ctx, userID, transaction.Input{
		Type:         "expense",
		FromWalletID: &w.ID,
		CurrencyID:   usd,
		Amount:       dec("10000"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assertDecimal(t, "800", balanceOf(t, a, userID, w.ID, usd), "W(USD)")
	_, total, err := a.TransactionService.Filter(ctx, userID, &dto.TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	s = assertConsistent(t, a, userID)
	assertDecimal(t, "352000", s.NetWorth, "net_worth")

	// 6. base currency UDD with USD->UDD = 2 doubles every aggregate
	udd, err := a.CurrencyService.Create(ctx, userID, "UDD", "Double Dollar", "D$", "fiat")
	require.NoError(t, err)
	_, err = a.ExchangeService.Create(ctx, userID, usd, udd.ID, dec("2"), time.Now())
	require.NoError(t, err)
	s, err = a.SummaryService.ChangeBase(ctx, userID, udd.ID)
	require.NoError(t, err)
	assert.Equal(t, udd.ID, s.BaseCurrencyID)
	s = assertConsistent(t, a, userID)
	assertDecimal(t, "4000", s.WalletsValue, "wallets_value")
	assertDecimal(t, "700000", s.AssetsValue, "assets_value")
	assertDecimal(t, "704000", s.NetWorth, "net_worth")
	wr, err := a.WalletService.Get(ctx, userID, w2.ID)
	require.NoError(t, err)
	assertDecimal(t, "2400", wr.TotalValue, "W2 total_value")

	// 7. no rate into EUR: nothing changes
	eur := testutils.CurrencyID(t, uow, "EUR")
	_, err = a.SummaryService.ChangeBase(ctx, userID, eur)
	var missing *domain.ExchangeRateMissingError
	require.ErrorAs(t, err, &missing)
	assert.ErrorIs(t, err, domain.ErrExchangeRateMissing)
	after := assertConsistent(t, a, userID)
	assert.Equal(t, udd.ID, after.BaseCurrencyID)
	assertDecimal(t, "704000", after.NetWorth, "net_worth")

	// 8. the reverse pair of a stored rate is rejected
	_, err = a.ExchangeService.Create(ctx, userID, udd.ID, usd, dec("0.5"), time.Now())
	assert.ErrorIs(t, err, domain.ErrValidation)

	// 9. fiat codes have three letters
	_, err = a.CurrencyService.Create(ctx, userID, "ABCD", "Four Letters", "F4", "fiat")
	assert.ErrorIs(t, err, domain.ErrValidation)

	var types []string
	for _, e := range bus.Published() {
		types = append(types, e.Type())
	}
	assert.Contains(t, types, events.EventTypeUserRegistered.String())
	assert.Contains(t, types, events.EventTypeExchangeRateChanged.String())
	assert.Contains(t, types, events.EventTypeBaseCurrencyChanged.String())
}

func TestBaseCurrencyRoundTrip(t *testing.T) {
	ctx := context.Background()
	a, _ := newApp(t)
	uow := a.Deps.Uow
	usd := testutils.CurrencyID(t, uow, "USD")
	eur := testutils.CurrencyID(t, uow, "EUR")
	userID := testutils.NewUser(t, uow, "bob", "USD")

	_, err := a.WalletService.Create(ctx, userID, "Cash", "fiat", []wallet.BalanceInput{
		{CurrencyID: usd, Amount: dec("100")},
		{CurrencyID: eur, Amount: dec("50")},
	})
	assert.True(t, errors.Is(err, domain.ErrExchangeRateMissing))

	_, err = a.ExchangeService.Create(ctx, userID, eur, usd, dec("1.25"), time.Now())
	require.NoError(t, err)
	_, err = a.WalletService.Create(ctx, userID, "Cash", "fiat", []wallet.BalanceInput{
		{CurrencyID: usd, Amount: dec("100")},
		{CurrencyID: eur, Amount: dec("50")},
	})
	require.NoError(t, err)
	before := assertConsistent(t, a, userID)
	assertDecimal(t, "162.5", before.WalletsValue, "wallets_value")

	_, err = a.SummaryService.ChangeBase(ctx, userID, eur)
	require.NoError(t, err)
	mid := assertConsistent(t, a, userID)
	assertDecimal(t, "130", mid.WalletsValue, "wallets_value")

	_, err = a.SummaryService.ChangeBase(ctx, userID, usd)
	require.NoError(t, err)
	back := assertConsistent(t, a, userID)
	assertDecimal(t, "162.5", back.WalletsValue, "wallets_value")
	assert.Equal(t, usd, back.BaseCurrencyID)
}

func TestRateChangeEvictsCachedQuote(t *testing.T) {
	ctx := context.Background()
	a, _ := newApp(t)
	uow := a.Deps.Uow
	usd := testutils.CurrencyID(t, uow, "USD")
	gbp := testutils.CurrencyID(t, uow, "GBP")
	userID := testutils.NewUser(t, uow, "carol", "USD")

	row, err := a.ExchangeService.Create(ctx, userID, gbp, usd, dec("1.3"), time.Now())
	require.NoError(t, err)
	q, err := a.ExchangeService.Quote(ctx, userID, usd, gbp)
	require.NoError(t, err)
	assert.True(t, q.Inverse)
	assertDecimal(t, "0.7692307692", q.Rate, "rate")

	rate := dec("1.5")
	_, err = a.ExchangeService.Update(ctx, userID, row.ID, &dto.ExchangeUpdate{Rate: &rate})
	require.NoError(t, err)

	q, err = a.ExchangeService.Quote(ctx, userID, usd, gbp)
	require.NoError(t, err)
	assertDecimal(t, "0.6666666667", q.Rate, "rate")
}
