package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/networth/pkg/repository"
	"github.com/amirasaad/networth/pkg/repository/asset"
	"github.com/amirasaad/networth/pkg/repository/summary"
	"github.com/amirasaad/networth/pkg/repository/user"
	"github.com/amirasaad/networth/pkg/repository/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestUoW_DoAndGetRepository(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		userRepo, err := repository.Get[user.Repository](txUow)
		require.NoError(err)
		assert.NotNil(userRepo)

		summaryRepo, err := repository.Get[summary.Repository](txUow)
		require.NoError(err)
		assert.NotNil(summaryRepo)

		repoAny, err := txUow.GetRepository((*wallet.Repository)(nil))
		require.NoError(err)
		_, ok := repoAny.(wallet.Repository)
		assert.True(ok)

		_, err = repository.Get[asset.Repository](txUow)
		return err
	})
	assert.NoError(err)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestUoW_DoRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := uow.Do(context.Background(), func(repository.UnitOfWork) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_NestedDoReusesTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(outer repository.UnitOfWork) error {
		return outer.Do(context.Background(), func(inner repository.UnitOfWork) error {
			assert.Same(t, outer, inner)
			return nil
		})
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_GetRepositoryOutsideTransaction(t *testing.T) {
	db, _ := newMockDB(t)
	uow := NewUoW(db)

	repo, err := repository.Get[user.Repository](uow)
	require.NoError(t, err)
	assert.NotNil(t, repo)
}

type unknownRepository interface{ Nothing() }

func TestUoW_GetRepositoryUnsupported(t *testing.T) {
	db, _ := newMockDB(t)
	uow := NewUoW(db)

	_, err := uow.GetRepository((*unknownRepository)(nil))
	assert.Error(t, err)
}

func TestModels(t *testing.T) {
	assert.Len(t, Models(), 10)
}
