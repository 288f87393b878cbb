package summary_test

import (
	"context"
	"testing"
	"time"

	infraeventbus "github.com/amirasaad/networth/infra/eventbus"
	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/domain/events"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository"
	exchangerepo "github.com/amirasaad/networth/pkg/repository/exchange"
	summaryrepo "github.com/amirasaad/networth/pkg/repository/summary"
	"github.com/amirasaad/networth/pkg/service/asset"
	"github.com/amirasaad/networth/pkg/service/summary"
	"github.com/amirasaad/networth/pkg/service/wallet"
	"github.com/amirasaad/networth/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	uow           repository.UnitOfWork
	svc           *summary.Service
	bus           *infraeventbus.MemoryEventBus
	userID        uuid.UUID
	usd, eur, jpy uuid.UUID
}

// setup gives a USD user a wallet of 100 USD + 50 EUR and an asset of
// 1000 USD, with EUR->USD = 1.2 and USD->JPY = 150.
func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	uow, _ := testutils.NewTestUoW(t)
	bus := infraeventbus.NewWithMemory(testutils.Logger())
	f := &fixture{
		uow:    uow,
		svc:    summary.New(uow, bus, testutils.Logger()),
		bus:    bus,
		userID: testutils.NewUser(t, uow, "alice", "USD"),
		usd:    testutils.CurrencyID(t, uow, "USD"),
		eur:    testutils.CurrencyID(t, uow, "EUR"),
		jpy:    testutils.CurrencyID(t, uow, "JPY"),
	}
	f.addRate(t, f.eur, f.usd, "1.2")
	f.addRate(t, f.usd, f.jpy, "150")

	_, err := wallet.New(uow, testutils.Logger()).Create(ctx, f.userID, "Main", "fiat", []wallet.BalanceInput{
		{CurrencyID: f.usd, Amount: d("100")},
		{CurrencyID: f.eur, Amount: d("50")},
	})
	require.NoError(t, err)
	_, err = asset.New(uow, testutils.Logger()).Create(ctx, f.userID, "Watch", d("1000"), f.usd, nil)
	require.NoError(t, err)
	return f
}

func (f *fixture) addRate(t *testing.T, from, to uuid.UUID, rate string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[exchangerepo.Repository](uow)
		if err != nil {
			return err
		}
		return repo.Create(ctx, &dto.ExchangeCreate{
			ID: uuid.New(), UserID: f.userID, FromCurrencyID: from, ToCurrencyID: to, Rate: d(rate), Date: time.Now(),
		})
	}))
}

func assertTotals(t *testing.T, s *dto.SummaryRead, wallets, assets string) {
	t.Helper()
	assert.Truef(t, d(wallets).Equal(s.WalletsValue), "wallets_value: want %s, got %s", wallets, s.WalletsValue)
	assert.Truef(t, d(assets).Equal(s.AssetsValue), "assets_value: want %s, got %s", assets, s.AssetsValue)
	assert.True(t, s.NetWorth.Equal(s.WalletsValue.Add(s.AssetsValue)))
}

func TestGetAndTotals(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	s, err := f.svc.Get(ctx, f.userID)
	require.NoError(t, err)
	assertTotals(t, s, "160", "1000")

	data, err := f.svc.AppData(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, "USD", data.BaseCurrency.Code)
	assert.Equal(t, f.usd, data.Summary.BaseCurrencyID)

	total, err := f.svc.WalletsTotal(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, "USD", total.BaseCurrency)
	assert.Equal(t, "$160.00", total.Display)

	total, err = f.svc.AssetsTotal(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, "$1,000.00", total.Display)

	_, err = f.svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecompute(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	first, err := f.svc.Recompute(ctx, f.userID)
	require.NoError(t, err)
	assertTotals(t, first, "160", "1000")
	second, err := f.svc.Recompute(ctx, f.userID)
	require.NoError(t, err)
	assert.True(t, first.NetWorth.Equal(second.NetWorth))

	// Drifted figures are rebuilt from balances and assets.
	drift := d("1")
	require.NoError(t, f.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[summaryrepo.Repository](uow)
		if err != nil {
			return err
		}
		return repo.Update(ctx, f.userID, &dto.SummaryUpdate{WalletsValue: &drift, NetWorth: &drift})
	}))
	fixed, err := f.svc.Recompute(ctx, f.userID)
	require.NoError(t, err)
	assertTotals(t, fixed, "160", "1000")

	var recomputed int
	for _, e := range f.bus.Published() {
		if e.Type() == events.EventTypeSummaryRecomputed.String() {
			recomputed++
		}
	}
	assert.Equal(t, 3, recomputed)
}

func TestChangeBase(t *testing.T) {
	ctx := context.Background()

	t.Run("re-expresses every aggregate", func(t *testing.T) {
		f := setup(t)
		// EUR has no direct JPY rate.
		_, err := f.svc.ChangeBase(ctx, f.userID, f.jpy)
		var missing *domain.ExchangeRateMissingError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "EUR", missing.From)
		assert.Equal(t, "JPY", missing.To)

		s, err := f.svc.Get(ctx, f.userID)
		require.NoError(t, err)
		assert.Equal(t, f.usd, s.BaseCurrencyID)
		assertTotals(t, s, "160", "1000")
		assert.Empty(t, f.bus.Published())

		f.addRate(t, f.eur, f.jpy, "160")
		s, err = f.svc.ChangeBase(ctx, f.userID, f.jpy)
		require.NoError(t, err)
		assert.Equal(t, f.jpy, s.BaseCurrencyID)
		// 100*150 + 50*160 and 1000*150
		assertTotals(t, s, "23000", "150000")

		published := f.bus.Published()
		require.Len(t, published, 1)
		changed, ok := published[0].(*events.BaseCurrencyChanged)
		require.True(t, ok)
		assert.Equal(t, f.usd, changed.From)
		assert.Equal(t, f.jpy, changed.To)
	})

	t.Run("round trip restores aggregates", func(t *testing.T) {
		f := setup(t)
		_, err := f.svc.ChangeBase(ctx, f.userID, f.eur)
		require.NoError(t, err)
		s, err := f.svc.Get(ctx, f.userID)
		require.NoError(t, err)
		// 100/1.2 + 50 and 1000/1.2
		assertTotals(t, s, "133.3333333333", "833.3333333333")

		s, err = f.svc.ChangeBase(ctx, f.userID, f.usd)
		require.NoError(t, err)
		assertTotals(t, s, "160", "1000")
	})

	t.Run("currency must be visible", func(t *testing.T) {
		f := setup(t)
		_, err := f.svc.ChangeBase(ctx, f.userID, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("cancelled before mutation", func(t *testing.T) {
		f := setup(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := f.svc.ChangeBase(cctx, f.userID, f.eur)
		assert.Error(t, err)
		s, err := f.svc.Get(ctx, f.userID)
		require.NoError(t, err)
		assert.Equal(t, f.usd, s.BaseCurrencyID)
	})
}

func TestPrecision(t *testing.T) {
	ctx := context.Background()

	// other returns a fixture for a second USD user sharing f's database.
	other := func(t *testing.T, f *fixture) *fixture {
		g := *f
		g.userID = testutils.NewUser(t, f.uow, "bob", "USD")
		return &g
	}

	t.Run("full precision totals survive a base round trip", func(t *testing.T) {
		g := other(t, setup(t))
		g.addRate(t, g.eur, g.usd, "1.2")
		_, err := wallet.New(g.uow, testutils.Logger()).Create(ctx, g.userID, "Main", "fiat", []wallet.BalanceInput{
			{CurrencyID: g.usd, Amount: d("1234567890.0123456789")},
		})
		require.NoError(t, err)
		_, err = asset.New(g.uow, testutils.Logger()).Create(ctx, g.userID, "House", d("8765432109.987654321"), g.usd, nil)
		require.NoError(t, err)

		s, err := g.svc.Get(ctx, g.userID)
		require.NoError(t, err)
		assertTotals(t, s, "1234567890.0123456789", "8765432109.987654321")
		assert.True(t, d("9999999999.9999999999").Equal(s.NetWorth), s.NetWorth.String())

		s, err = g.svc.ChangeBase(ctx, g.userID, g.eur)
		require.NoError(t, err)
		assert.True(t, s.NetWorth.LessThan(d("9999999999.9999999999")))
		assert.True(t, s.NetWorth.Equal(s.NetWorth.Truncate(10)))

		s, err = g.svc.ChangeBase(ctx, g.userID, g.usd)
		require.NoError(t, err)
		assertTotals(t, s, "1234567890.0123456789", "8765432109.987654321")
	})

	t.Run("asset pushing net worth past the limit is rejected", func(t *testing.T) {
		g := other(t, setup(t))
		_, err := wallet.New(g.uow, testutils.Logger()).Create(ctx, g.userID, "Main", "fiat", []wallet.BalanceInput{
			{CurrencyID: g.usd, Amount: d("6000000000")},
		})
		require.NoError(t, err)
		_, err = asset.New(g.uow, testutils.Logger()).Create(ctx, g.userID, "House", d("6000000000"), g.usd, nil)
		assert.ErrorIs(t, err, domain.ErrValidation)

		s, err := g.svc.Get(ctx, g.userID)
		require.NoError(t, err)
		assertTotals(t, s, "6000000000", "0")
	})

	t.Run("base change that overflows leaves the summary untouched", func(t *testing.T) {
		g := other(t, setup(t))
		g.addRate(t, g.usd, g.jpy, "150")
		_, err := wallet.New(g.uow, testutils.Logger()).Create(ctx, g.userID, "Main", "fiat", []wallet.BalanceInput{
			{CurrencyID: g.usd, Amount: d("5000000000")},
		})
		require.NoError(t, err)
		published := len(g.bus.Published())

		_, err = g.svc.ChangeBase(ctx, g.userID, g.jpy)
		assert.ErrorIs(t, err, domain.ErrValidation)

		s, err := g.svc.Get(ctx, g.userID)
		require.NoError(t, err)
		assert.Equal(t, g.usd, s.BaseCurrencyID)
		assertTotals(t, s, "5000000000", "0")
		assert.Len(t, g.bus.Published(), published)
	})
}
