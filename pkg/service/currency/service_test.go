package currency_test

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository"
	exchangerepo "github.com/amirasaad/networth/pkg/repository/exchange"
	"github.com/amirasaad/networth/pkg/service/currency"
	"github.com/amirasaad/networth/pkg/service/wallet"
	"github.com/amirasaad/networth/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCreate(t *testing.T) {
	ctx := context.Background()
	uow, _ := testutils.NewTestUoW(t)
	svc := currency.New(uow, testutils.Logger())
	userID := testutils.NewUser(t, uow, "alice", "USD")

	c, err := svc.Create(ctx, userID, " gld ", "Gold Gram", "g", "fiat")
	require.NoError(t, err)
	assert.Equal(t, "GLD", c.Code)
	assert.False(t, c.IsPredefined)
	require.NotNil(t, c.UserID)
	assert.Equal(t, userID, *c.UserID)

	tests := []struct {
		name                       string
		code, cname, symbol, ctype string
		want                       error
	}{
		{"four letter fiat code", "ABCD", "Four", "F4", "fiat", domain.ErrValidation},
		{"digits in fiat code", "AB1", "Digits", "D1", "fiat", domain.ErrValidation},
		{"unknown type", "ABC", "Abc", "A", "metal", domain.ErrValidation},
		{"empty symbol", "ABC", "Abc", "", "fiat", domain.ErrValidation},
		{"own code again", "GLD", "Other", "o", "fiat", domain.ErrAlreadyExists},
		{"predefined code", "EUR", "My Euro", "e", "fiat", domain.ErrAlreadyExists},
		{"predefined name", "XYZ", "Bitcoin", "x", "fiat", domain.ErrAlreadyExists},
		{"predefined symbol", "XYZ", "Xyz", "₿", "fiat", domain.ErrAlreadyExists},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, userID, tc.code, tc.cname, tc.symbol, tc.ctype)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	token, err := svc.Create(ctx, userID, "doge42", "Doge Token", "Ð", "crypto")
	require.NoError(t, err)
	assert.Equal(t, "DOGE42", token.Code)

	// Another user may reuse the code.
	other := testutils.NewUser(t, uow, "bob", "USD")
	_, err = svc.Create(ctx, other, "GLD", "Gold Gram", "g", "fiat")
	assert.NoError(t, err)
}

func TestVisibility(t *testing.T) {
	ctx := context.Background()
	uow, _ := testutils.NewTestUoW(t)
	svc := currency.New(uow, testutils.Logger())
	alice := testutils.NewUser(t, uow, "alice", "USD")
	bob := testutils.NewUser(t, uow, "bob", "USD")

	c, err := svc.Create(ctx, alice, "GLD", "Gold Gram", "g", "fiat")
	require.NoError(t, err)

	list, err := svc.List(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, list, 16)
	list, err = svc.List(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, list, 15)

	_, err = svc.Get(ctx, bob, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Update(ctx, bob, c.ID, &dto.CurrencyUpdate{Name: ptr("Mine")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, bob, c.ID), domain.ErrNotFound)

	usd := testutils.CurrencyID(t, uow, "USD")
	got, err := svc.Get(ctx, bob, usd)
	require.NoError(t, err)
	assert.True(t, got.IsPredefined)
}

func TestPredefinedAreImmutable(t *testing.T) {
	ctx := context.Background()
	uow, _ := testutils.NewTestUoW(t)
	svc := currency.New(uow, testutils.Logger())
	userID := testutils.NewUser(t, uow, "alice", "USD")
	usd := testutils.CurrencyID(t, uow, "USD")

	_, err := svc.Update(ctx, userID, usd, &dto.CurrencyUpdate{Name: ptr("Greenback")})
	assert.ErrorIs(t, err, domain.ErrImmutable)
	assert.ErrorIs(t, svc.Delete(ctx, userID, usd), domain.ErrImmutable)
}

func TestInUse(t *testing.T) {
	ctx := context.Background()
	uow, _ := testutils.NewTestUoW(t)
	svc := currency.New(uow, testutils.Logger())
	wallets := wallet.New(uow, testutils.Logger())
	userID := testutils.NewUser(t, uow, "alice", "USD")

	gld, err := svc.Create(ctx, userID, "GLD", "Gold Gram", "g", "fiat")
	require.NoError(t, err)
	updated, err := svc.Update(ctx, userID, gld.ID, &dto.CurrencyUpdate{Name: ptr("Gold"), CurrencyType: ptr("crypto")})
	require.NoError(t, err)
	assert.Equal(t, "Gold", updated.Name)
	assert.Equal(t, "crypto", updated.CurrencyType)

	_, err = svc.Update(ctx, userID, gld.ID, &dto.CurrencyUpdate{Code: ptr("usd")})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	usd := testutils.CurrencyID(t, uow, "USD")
	err = uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[exchangerepo.Repository](uow)
		if err != nil {
			return err
		}
		return repo.Create(ctx, &dto.ExchangeCreate{
			ID:             uuid.New(),
			UserID:         userID,
			FromCurrencyID: gld.ID,
			ToCurrencyID:   usd,
			Rate:           decimal.NewFromInt(60),
			Date:           time.Now(),
		})
	})
	require.NoError(t, err)
	_, err = wallets.Create(ctx, userID, "Vault", "crypto", []wallet.BalanceInput{{CurrencyID: gld.ID, Amount: decimal.NewFromInt(2)}})
	require.NoError(t, err)

	_, err = svc.Update(ctx, userID, gld.ID, &dto.CurrencyUpdate{CurrencyType: ptr("fiat")})
	assert.ErrorIs(t, err, domain.ErrValidation)
	err = svc.Delete(ctx, userID, gld.ID)
	assert.ErrorIs(t, err, domain.ErrInUse)
	assert.ErrorIs(t, err, domain.ErrValidation)

	unused, err := svc.Create(ctx, userID, "SLV", "Silver", "s", "fiat")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, userID, unused.ID))
	_, err = svc.Get(ctx, userID, unused.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateTrimsText(t *testing.T) {
	ctx := context.Background()
	uow, _ := testutils.NewTestUoW(t)
	svc := currency.New(uow, testutils.Logger())
	userID := testutils.NewUser(t, uow, "alice", "USD")

	gld, err := svc.Create(ctx, userID, "GLD", "Gold Gram", "g", "fiat")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, userID, gld.ID, &dto.CurrencyUpdate{Name: ptr("  Gold Ounce "), Symbol: ptr(" oz ")})
	require.NoError(t, err)
	assert.Equal(t, "Gold Ounce", updated.Name)
	assert.Equal(t, "oz", updated.Symbol)

	_, err = svc.Update(ctx, userID, gld.ID, &dto.CurrencyUpdate{Name: ptr(" Bitcoin ")})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	_, err = svc.Update(ctx, userID, gld.ID, &dto.CurrencyUpdate{Name: ptr("   ")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
