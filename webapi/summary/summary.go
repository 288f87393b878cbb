// Package summary exposes the user's net worth summary and the base currency switch.
package summary

import (
	"github.com/amirasaad/networth/pkg/config"
	"github.com/amirasaad/networth/pkg/middleware"
	authsvc "github.com/amirasaad/networth/pkg/service/auth"
	summarysvc "github.com/amirasaad/networth/pkg/service/summary"
	"github.com/amirasaad/networth/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, summarySvc *summarysvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	data := app.Group("/user-app-data", middleware.JwtProtected(cfg.Auth.Jwt), middleware.LoadUser(authSvc))
	data.Get("/", GetAppData(summarySvc))
	data.Post("/set-base/:currency_id", SetBaseCurrency(summarySvc))
}

// GetAppData returns the summary together with its base currency.
// @Summary Get net worth summary
// @Tags user-app-data
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /user-app-data [get]
// @Security Bearer
func GetAppData(summarySvc *summarysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		data, err := summarySvc.AppData(c.UserContext(), u.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load summary", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Summary fetched successfully", data)
	}
}

// SetBaseCurrency re-expresses every aggregate in a new base currency. It
// fails without changes when a held currency has no rate to the new base.
// @Summary Change the base currency
// @Tags user-app-data
// @Produce json
// @Param currency_id path string true "Currency ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /user-app-data/set-base/{currency_id} [post]
// @Security Bearer
func SetBaseCurrency(summarySvc *summarysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		currencyID, err := common.ParamUUID(c, "currency_id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid currency ID", err)
		}
		summary, err := summarySvc.ChangeBase(c.UserContext(), u.ID, currencyID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to change base currency", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Base currency changed", summary)
	}
}
