package app

import (
	"log/slog"

	"github.com/amirasaad/networth/pkg/cache"
	"github.com/amirasaad/networth/pkg/config"
	"github.com/amirasaad/networth/pkg/eventbus"
	"github.com/amirasaad/networth/pkg/repository"
	"github.com/amirasaad/networth/pkg/service/asset"
	"github.com/amirasaad/networth/pkg/service/auth"
	"github.com/amirasaad/networth/pkg/service/currency"
	"github.com/amirasaad/networth/pkg/service/exchange"
	"github.com/amirasaad/networth/pkg/service/summary"
	"github.com/amirasaad/networth/pkg/service/taxonomy"
	"github.com/amirasaad/networth/pkg/service/transaction"
	"github.com/amirasaad/networth/pkg/service/user"
	"github.com/amirasaad/networth/pkg/service/wallet"
)

// Deps contains the infrastructure every service is built from.
type Deps struct {
	Uow       repository.UnitOfWork
	RateCache cache.RateCache
	EventBus  eventbus.Bus
	Logger    *slog.Logger
}

type App struct {
	Deps               *Deps
	Config             *config.App
	AuthService        *auth.Service
	UserService        *user.Service
	SummaryService     *summary.Service
	CurrencyService    *currency.Service
	ExchangeService    *exchange.Service
	TaxonomyService    *taxonomy.Service
	WalletService      *wallet.Service
	TransactionService *transaction.Service
	AssetService       *asset.Service
}

func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	var ttl = exchange.DefaultCacheTTL
	if cfg.RateCache != nil {
		ttl = cfg.RateCache.TTL
	}
	minStrength := 0
	var jwtCfg *config.Jwt
	if cfg.Auth != nil {
		minStrength = cfg.Auth.MinPasswordStrength
		jwtCfg = cfg.Auth.Jwt
	}

	app.AuthService = auth.New(deps.Uow, jwtCfg, deps.Logger)
	app.UserService = user.New(deps.Uow, deps.EventBus, minStrength, deps.Logger)
	app.SummaryService = summary.New(deps.Uow, deps.EventBus, deps.Logger)
	app.CurrencyService = currency.New(deps.Uow, deps.Logger)
	app.ExchangeService = exchange.New(deps.Uow, app.SummaryService, deps.RateCache, ttl, deps.EventBus, deps.Logger)
	app.TaxonomyService = taxonomy.New(deps.Uow, deps.Logger)
	app.WalletService = wallet.New(deps.Uow, deps.Logger)
	app.TransactionService = transaction.New(deps.Uow, deps.Logger)
	app.AssetService = asset.New(deps.Uow, deps.Logger)

	app.setupEventBus()
	return app
}
