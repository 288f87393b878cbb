// Package webapi provides HTTP handlers and API endpoints for the networth service.
// It is organized into sub-packages per resource:
// - auth: registration and login
// - user, admin: the current user and user management
// - wallet, transaction, asset: holdings and the transactions moving them
// - currency, taxonomy: the registry of currencies, rates, categories and asset types
// - summary: the net worth summary and base currency change
package webapi

import (
	"errors"
	"strings"
	"time"

	"github.com/amirasaad/networth/pkg/app"
	"github.com/amirasaad/networth/pkg/middleware"
	adminweb "github.com/amirasaad/networth/webapi/admin"
	assetweb "github.com/amirasaad/networth/webapi/asset"
	authweb "github.com/amirasaad/networth/webapi/auth"
	"github.com/amirasaad/networth/webapi/common"
	currencyweb "github.com/amirasaad/networth/webapi/currency"
	summaryweb "github.com/amirasaad/networth/webapi/summary"
	taxonomyweb "github.com/amirasaad/networth/webapi/taxonomy"
	transactionweb "github.com/amirasaad/networth/webapi/transaction"
	userweb "github.com/amirasaad/networth/webapi/user"
	walletweb "github.com/amirasaad/networth/webapi/wallet"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/swagger"
)

const (
	defaultMaxRequests = 100
	defaultWindow      = time.Minute
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	cfg := a.Config

	fiberApp := fiber.New(fiber.Config{
		AppName: "networth",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, utils.StatusMessage(common.ErrorToStatusCode(err)), err)
		},
	})
	fiberApp.Use(recover.New())
	if !cfg.TestMode {
		fiberApp.Use(logger.New())
	}

	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))

	maxRequests, window := defaultMaxRequests, defaultWindow
	if cfg.RateLimit != nil {
		maxRequests, window = cfg.RateLimit.MaxRequests, cfg.RateLimit.Window
	}
	// Configure rate limiting middleware
	// Uses X-Forwarded-For header when behind a proxy
	// Falls back to X-Real-IP or direct IP if needed
	fiberApp.Use(limiter.New(limiter.Config{
		Max:          maxRequests,
		Expiration:   window,
		KeyGenerator: clientIP,
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	if cfg.Server != nil {
		fiberApp.Use(middleware.RequestTimeout(cfg.Server.RequestTimeout))
	}

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("networth API is running")
	})

	authweb.Routes(fiberApp, a.UserService, a.AuthService)
	userweb.Routes(fiberApp, a.UserService, a.AuthService, cfg)
	adminweb.Routes(fiberApp, a.UserService, a.SummaryService, a.AuthService, cfg)
	walletweb.Routes(fiberApp, a.WalletService, a.SummaryService, a.AuthService, cfg)
	transactionweb.Routes(fiberApp, a.TransactionService, a.AuthService, cfg)
	assetweb.Routes(fiberApp, a.AssetService, a.SummaryService, a.AuthService, cfg)
	currencyweb.Routes(fiberApp, a.CurrencyService, a.AuthService, cfg)
	currencyweb.ExchangeRoutes(fiberApp, a.ExchangeService, a.AuthService, cfg)
	taxonomyweb.Routes(fiberApp, a.TaxonomyService, a.AuthService, cfg)
	summaryweb.Routes(fiberApp, a.SummaryService, a.AuthService, cfg)
	return fiberApp
}

// clientIP keys the rate limiter by the first X-Forwarded-For hop, then
// X-Real-IP, then the peer address.
func clientIP(c *fiber.Ctx) string {
	if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
		if first, _, ok := strings.Cut(forwardedFor, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(forwardedFor)
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.IP()
}
