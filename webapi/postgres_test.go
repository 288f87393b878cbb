//go:build integration

package webapi_test

import (
	"context"
	"testing"

	infracache "github.com/amirasaad/networth/infra/cache"
	infraeventbus "github.com/amirasaad/networth/infra/eventbus"
	infrarepo "github.com/amirasaad/networth/infra/repository"
	"github.com/amirasaad/networth/pkg/app"
	"github.com/amirasaad/networth/pkg/seed"
	"github.com/amirasaad/networth/pkg/testutils"
	"github.com/amirasaad/networth/webapi"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// PostgresAPITestSuite runs every API scenario against the SQL migrations
// on a real Postgres server.
type PostgresAPITestSuite struct {
	APITestSuite
	db *gorm.DB
}

func (s *PostgresAPITestSuite) SetupSuite() {
	s.db = testutils.NewPostgresDB(s.T())
	_, err := seed.Run(context.Background(), infrarepo.NewUoW(s.db), testutils.Logger())
	s.Require().NoError(err)
}

func (s *PostgresAPITestSuite) SetupTest() {
	// Every user-owned row cascades from users; predefined rows stay.
	s.Require().NoError(s.db.Exec("DELETE FROM users").Error)

	quotes := infracache.NewMemoryCache(0)
	s.T().Cleanup(quotes.Close)
	s.uow = infrarepo.NewUoW(s.db)
	s.app = app.New(&app.Deps{
		Uow:       s.uow,
		RateCache: quotes,
		EventBus:  infraeventbus.NewWithMemory(testutils.Logger()),
		Logger:    testutils.Logger(),
	}, newConfig())
	s.api = webapi.SetupApp(s.app)
}

func TestPostgresAPITestSuite(t *testing.T) {
	suite.Run(t, new(PostgresAPITestSuite))
}
