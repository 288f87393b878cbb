package user_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amirasaad/networth/infra/eventbus"
	"github.com/amirasaad/networth/pkg/config"
	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/domain/events"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository"
	summaryrepo "github.com/amirasaad/networth/pkg/repository/summary"
	"github.com/amirasaad/networth/pkg/service/auth"
	"github.com/amirasaad/networth/pkg/service/currency"
	"github.com/amirasaad/networth/pkg/service/summary"
	"github.com/amirasaad/networth/pkg/service/transaction"
	"github.com/amirasaad/networth/pkg/service/user"
	"github.com/amirasaad/networth/pkg/service/wallet"
	"github.com/amirasaad/networth/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestRegister(t *testing.T) {
	ctx := context.Background()
	uow, _ := testutils.NewTestUoW(t)
	bus := eventbus.NewWithMemory(testutils.Logger())
	svc := user.New(uow, bus, 0, testutils.Logger())
	summaries := summary.New(uow, nil, testutils.Logger())

	u, err := svc.Register(ctx, " alice ", "alice@example.com", "Secret123", "eur")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "USER", u.Role)
	assert.NotEqual(t, "Secret123", u.HashedPassword)

	s, err := summaries.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, testutils.CurrencyID(t, uow, "EUR"), s.BaseCurrencyID)
	assert.True(t, s.NetWorth.IsZero())

	def, err := svc.Register(ctx, "bob", "bob@example.com", "Secret123", "")
	require.NoError(t, err)
	s, err = summaries.Get(ctx, def.ID)
	require.NoError(t, err)
	assert.Equal(t, testutils.CurrencyID(t, uow, "USD"), s.BaseCurrencyID)

	published := bus.Published()
	require.Len(t, published, 2)
	assert.Equal(t, events.EventTypeUserRegistered.String(), published[0].Type())

	tests := []struct {
		name                            string
		username, email, password, base string
		want                            error
	}{
		{"duplicate username", "alice", "other@example.com", "Secret123", "USD", domain.ErrAlreadyExists},
		{"duplicate email", "carol", "alice@example.com", "Secret123", "USD", domain.ErrAlreadyExists},
		{"short username", "al", "al@example.com", "Secret123", "USD", domain.ErrValidation},
		{"bad email", "carol", "carol.example.com", "Secret123", "USD", domain.ErrValidation},
		{"password without digit", "carol", "carol@example.com", "SecretPass", "USD", domain.ErrValidation},
		{"short password", "carol", "carol@example.com", "Ab1", "USD", domain.ErrValidation},
		{"unknown base currency", "carol", "carol@example.com", "Secret123", "XYZ", domain.ErrValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.email, tc.password, tc.base)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, total, err := svc.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := user.New(uow, nil, 3, testutils.Logger())

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "Password1", "USD")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

type mockSummaries struct {
	mock.Mock
	summaryrepo.Repository
}

func (m *mockSummaries) Create(ctx context.Context, create *dto.SummaryCreate) error {
	return m.Called(ctx, create).Error(0)
}

// summaryFailingUoW serves mocked summary repositories and delegates the rest.
type summaryFailingUoW struct {
	repository.UnitOfWork
	summaries summaryrepo.Repository
}

func (u *summaryFailingUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.UnitOfWork.Do(ctx, func(inner repository.UnitOfWork) error {
		return fn(&summaryFailingUoW{UnitOfWork: inner, summaries: u.summaries})
	})
}

func (u *summaryFailingUoW) GetRepository(repoType any) (any, error) {
	if _, ok := repoType.(*summaryrepo.Repository); ok {
		return u.summaries, nil
	}
	return u.UnitOfWork.GetRepository(repoType)
}

func TestRegisterRollsBackUserWhenSummaryFails(t *testing.T) {
	ctx := context.Background()
	uow, _ := testutils.NewTestUoW(t)
	summaries := &mockSummaries{}
	cause := errors.New("disk full")
	summaries.On("Create", mock.Anything, mock.Anything).Return(cause)
	bus := eventbus.NewWithMemory(testutils.Logger())

	svc := user.New(&summaryFailingUoW{UnitOfWork: uow, summaries: summaries}, bus, 0, testutils.Logger())
	_, err := svc.Register(ctx, "alice", "alice@example.com", "Secret123", "USD")

	var rollback *domain.RegistrationRollbackError
	require.ErrorAs(t, err, &rollback)
	assert.ErrorIs(t, err, cause)
	summaries.AssertExpectations(t)
	assert.Empty(t, bus.Published())

	plain := user.New(uow, nil, 0, testutils.Logger())
	_, err = plain.GetByUsername(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The username is free again.
	_, err = plain.Register(ctx, "alice", "alice@example.com", "Secret123", "USD")
	assert.NoError(t, err)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	uow, _ := testutils.NewTestUoW(t)
	svc := user.New(uow, nil, 0, testutils.Logger())
	authSvc := auth.New(uow, &config.Jwt{Secret: "test-secret", ExpiryMinutes: 5}, testutils.Logger())

	alice, err := svc.Register(ctx, "alice", "alice@example.com", "Secret123", "USD")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "bob", "bob@example.com", "Secret123", "USD")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, alice.ID, &dto.UserUpdate{
		Username: ptr("alice2"),
		Password: ptr("NewSecret456"),
		Role:     ptr("admin"),
	})
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)
	assert.Equal(t, "ADMIN", updated.Role)
	assert.Equal(t, "alice@example.com", updated.Email)

	_, err = authSvc.Login(ctx, "alice2", "Secret123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = authSvc.Login(ctx, "alice2", "NewSecret456")
	assert.NoError(t, err)

	_, err = svc.Update(ctx, alice.ID, &dto.UserUpdate{Email: ptr("bob@example.com")})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	_, err = svc.Update(ctx, alice.ID, &dto.UserUpdate{Role: ptr("root")})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Update(ctx, alice.ID, &dto.UserUpdate{Password: ptr("short")})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Update(ctx, uuid.New(), &dto.UserUpdate{Username: ptr("ghost")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteRemovesOwnedData(t *testing.T) {
	ctx := context.Background()
	uow, _ := testutils.NewTestUoW(t)
	svc := user.New(uow, nil, 0, testutils.Logger())
	summaries := summary.New(uow, nil, testutils.Logger())
	wallets := wallet.New(uow, testutils.Logger())
	transactions := transaction.New(uow, testutils.Logger())
	currencies := currency.New(uow, testutils.Logger())

	alice, err := svc.Register(ctx, "alice", "alice@example.com", "Secret123", "USD")
	require.NoError(t, err)
	bob, err := svc.Register(ctx, "bob", "bob@example.com", "Secret123", "USD")
	require.NoError(t, err)
	usd := testutils.CurrencyID(t, uow, "USD")

	_, err = currencies.Create(ctx, alice.ID, "GLD", "Gold Gram", "g", "fiat")
	require.NoError(t, err)
	w, err := wallets.Create(ctx, alice.ID, "Main", "fiat", []wallet.BalanceInput{{CurrencyID: usd, Amount: decimal.NewFromInt(100)}})
	require.NoError(t, err)
	_, err = transactions.Create(ctx, alice.ID, transaction.Input{
		Type:         "expense",
		FromWalletID: &w.ID,
		CurrencyID:   usd,
		Amount:       decimal.NewFromInt(10),
		Date:         time.Now(),
	})
	require.NoError(t, err)
	_, err = wallets.Create(ctx, bob.ID, "Main", "fiat", []wallet.BalanceInput{{CurrencyID: usd, Amount: decimal.NewFromInt(5)}})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, alice.ID))

	_, err = svc.Get(ctx, alice.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = summaries.Get(ctx, alice.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, alice.ID), domain.ErrNotFound)

	bobWallets, err := wallets.List(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, bobWallets, 1)

	// The code is free for a new account.
	carol, err := svc.Register(ctx, "carol", "carol@example.com", "Secret123", "USD")
	require.NoError(t, err)
	_, err = currencies.Create(ctx, carol.ID, "GLD", "Gold Gram", "g", "fiat")
	assert.NoError(t, err)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	uow, _ := testutils.NewTestUoW(t)
	svc := user.New(uow, nil, 0, testutils.Logger())
	for _, name := range []string{"alice", "bob", "carol"} {
		_, err := svc.Register(ctx, name, name+"@example.com", "Secret123", "USD")
		require.NoError(t, err)
	}

	rows, total, err := svc.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, rows, 2)

	rows, _, err = svc.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
