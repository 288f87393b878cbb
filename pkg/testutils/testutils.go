// Package testutils provides database, logging and HTTP helpers shared by tests.
package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	infrarepo "github.com/amirasaad/networth/infra/repository"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/repository"
	"github.com/amirasaad/networth/pkg/repository/assettype"
	"github.com/amirasaad/networth/pkg/repository/category"
	currencyrepo "github.com/amirasaad/networth/pkg/repository/currency"
	summaryrepo "github.com/amirasaad/networth/pkg/repository/summary"
	userrepo "github.com/amirasaad/networth/pkg/repository/user"
	"github.com/amirasaad/networth/pkg/seed"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewTestDB opens a private in-memory sqlite database with every table migrated.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(infrarepo.Models()...))
	return db
}

// NewTestUoW returns a unit of work over a fresh database seeded with the
// predefined currencies, categories and asset types.
func NewTestUoW(t *testing.T) (repository.UnitOfWork, *gorm.DB) {
	t.Helper()
	db := NewTestDB(t)
	uow := infrarepo.NewUoW(db)
	_, err := seed.Run(context.Background(), uow, Logger())
	require.NoError(t, err)
	return uow, db
}

// NewUser stores a user and an empty summary in baseCode without going
// through registration. The stored password is not a valid hash.
func NewUser(t *testing.T, uow repository.UnitOfWork, username, baseCode string) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	id := uuid.New()
	base := CurrencyID(t, uow, baseCode)
	err := uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := repository.Get[userrepo.Repository](uow)
		if err != nil {
			return err
		}
		if err := users.Create(ctx, &dto.UserCreate{
			ID:       id,
			Username: username,
			Email:    username + "@example.com",
			Password: "unusable",
			Role:     "USER",
		}); err != nil {
			return err
		}
		summaries, err := repository.Get[summaryrepo.Repository](uow)
		if err != nil {
			return err
		}
		return summaries.Create(ctx, &dto.SummaryCreate{ID: uuid.New(), UserID: id, BaseCurrencyID: base})
	})
	require.NoError(t, err)
	return id
}

// CurrencyID returns the id of the predefined currency with code.
func CurrencyID(t *testing.T, uow repository.UnitOfWork, code string) uuid.UUID {
	t.Helper()
	repo, err := repository.Get[currencyrepo.Repository](uow)
	require.NoError(t, err)
	c, err := repo.GetPredefinedByCode(context.Background(), code)
	require.NoError(t, err)
	return c.ID
}

// CategoryID returns the id of the predefined category called name.
func CategoryID(t *testing.T, uow repository.UnitOfWork, name string) uuid.UUID {
	t.Helper()
	repo, err := repository.Get[category.Repository](uow)
	require.NoError(t, err)
	list, err := repo.ListVisible(context.Background(), uuid.Nil)
	require.NoError(t, err)
	for _, c := range list {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("predefined category %q not found", name)
	return uuid.Nil
}

// AssetTypeID returns the id of the predefined asset type called name.
func AssetTypeID(t *testing.T, uow repository.UnitOfWork, name string) uuid.UUID {
	t.Helper()
	repo, err := repository.Get[assettype.Repository](uow)
	require.NoError(t, err)
	list, err := repo.ListVisible(context.Background(), uuid.Nil)
	require.NoError(t, err)
	for _, a := range list {
		if a.Name == name {
			return a.ID
		}
	}
	t.Fatalf("predefined asset type %q not found", name)
	return uuid.Nil
}

// MakeRequest sends a request through app and returns the response.
func MakeRequest(t *testing.T, app *fiber.App, method, path, body, token string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// DecodeBody decodes a JSON response body into a map and closes it.
func DecodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}
