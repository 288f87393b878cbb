package asset_test

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository"
	exchangerepo "github.com/amirasaad/networth/pkg/repository/exchange"
	"github.com/amirasaad/networth/pkg/service/asset"
	"github.com/amirasaad/networth/pkg/service/summary"
	"github.com/amirasaad/networth/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	uow      repository.UnitOfWork
	svc      *asset.Service
	summary  *summary.Service
	userID   uuid.UUID
	usd, gbp uuid.UUID
	estate   uuid.UUID
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	uow, _ := testutils.NewTestUoW(t)
	f := &fixture{
		uow:     uow,
		svc:     asset.New(uow, testutils.Logger()),
		summary: summary.New(uow, nil, testutils.Logger()),
		userID:  testutils.NewUser(t, uow, "alice", "USD"),
		usd:     testutils.CurrencyID(t, uow, "USD"),
		gbp:     testutils.CurrencyID(t, uow, "GBP"),
		estate:  testutils.AssetTypeID(t, uow, "Real Estate"),
	}
	err := uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[exchangerepo.Repository](uow)
		if err != nil {
			return err
		}
		return repo.Create(ctx, &dto.ExchangeCreate{
			ID: uuid.New(), UserID: f.userID, FromCurrencyID: f.gbp, ToCurrencyID: f.usd, Rate: d("1.25"), Date: time.Now(),
		})
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) assetsValue(t *testing.T) decimal.Decimal {
	t.Helper()
	s, err := f.summary.Get(context.Background(), f.userID)
	require.NoError(t, err)
	assert.True(t, s.NetWorth.Equal(s.WalletsValue.Add(s.AssetsValue)))
	return s.AssetsValue
}

func TestCreateUpdateDelete(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	house, err := f.svc.Create(ctx, f.userID, "House", d("350000"), f.usd, &f.estate)
	require.NoError(t, err)
	assert.Equal(t, "House", house.Name)
	assert.True(t, d("350000").Equal(f.assetsValue(t)))

	flat, err := f.svc.Create(ctx, f.userID, "London flat", d("200000"), f.gbp, &f.estate)
	require.NoError(t, err)
	assert.True(t, d("600000").Equal(f.assetsValue(t)), f.assetsValue(t).String())

	_, err = f.svc.Update(ctx, f.userID, house.ID, &dto.AssetUpdate{Value: ptr(d("400000"))})
	require.NoError(t, err)
	assert.True(t, d("650000").Equal(f.assetsValue(t)))

	// Revaluing in another currency moves the converted difference.
	_, err = f.svc.Update(ctx, f.userID, house.ID, &dto.AssetUpdate{Value: ptr(d("320000")), CurrencyID: &f.gbp})
	require.NoError(t, err)
	assert.True(t, d("650000").Equal(f.assetsValue(t)), f.assetsValue(t).String())

	_, err = f.svc.Update(ctx, f.userID, house.ID, &dto.AssetUpdate{Value: ptr(d("400000")), CurrencyID: &f.usd})
	require.NoError(t, err)
	assert.True(t, d("650000").Equal(f.assetsValue(t)))

	require.NoError(t, f.svc.Delete(ctx, f.userID, flat.ID))
	assert.True(t, d("400000").Equal(f.assetsValue(t)))
	require.NoError(t, f.svc.Delete(ctx, f.userID, house.ID))
	assert.True(t, f.assetsValue(t).IsZero())

	assert.ErrorIs(t, f.svc.Delete(ctx, f.userID, house.ID), domain.ErrNotFound)
}

func TestValidation(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	_, err := f.svc.Create(ctx, f.userID, "Car", d("10000"), f.usd, nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		create func() error
		want   error
	}{
		{"short name", func() error {
			_, err := f.svc.Create(ctx, f.userID, "ab", d("1"), f.usd, nil)
			return err
		}, domain.ErrValidation},
		{"zero value", func() error {
			_, err := f.svc.Create(ctx, f.userID, "Boat", d("0"), f.usd, nil)
			return err
		}, domain.ErrValidation},
		{"duplicate name", func() error {
			_, err := f.svc.Create(ctx, f.userID, "Car", d("1"), f.usd, nil)
			return err
		}, domain.ErrAlreadyExists},
		{"unknown asset type", func() error {
			_, err := f.svc.Create(ctx, f.userID, "Boat", d("1"), f.usd, ptr(uuid.New()))
			return err
		}, domain.ErrNotFound},
		{"no rate to base", func() error {
			eur := testutils.CurrencyID(t, f.uow, "EUR")
			_, err := f.svc.Create(ctx, f.userID, "Boat", d("1"), eur, nil)
			return err
		}, domain.ErrExchangeRateMissing},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.create(), tc.want)
			assert.True(t, d("10000").Equal(f.assetsValue(t)))
		})
	}
}

func TestFilter(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	for _, name := range []string{"Gold bars", "Gold coins", "Painting"} {
		_, err := f.svc.Create(ctx, f.userID, name, d("100"), f.usd, nil)
		require.NoError(t, err)
	}
	rows, total, err := f.svc.Filter(ctx, f.userID, &dto.AssetFilter{Name: "gold", Page: 1, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 1)

	all, err := f.svc.List(ctx, f.userID)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func ptr[T any](v T) *T { return &v }
