package currency

import (
	"github.com/amirasaad/networth/pkg/config"
	"github.com/amirasaad/networth/pkg/middleware"
	authsvc "github.com/amirasaad/networth/pkg/service/auth"
	currencysvc "github.com/amirasaad/networth/pkg/service/currency"
	"github.com/amirasaad/networth/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers HTTP routes for currency-related operations.
func Routes(app *fiber.App, currencySvc *currencysvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	currencies := app.Group("/currencies", middleware.JwtProtected(cfg.Auth.Jwt), middleware.LoadUser(authSvc))
	currencies.Post("/", CreateCurrency(currencySvc))
	currencies.Get("/", ListCurrencies(currencySvc))
	currencies.Get("/:id", GetCurrency(currencySvc))
	currencies.Put("/:id", UpdateCurrency(currencySvc))
	currencies.Delete("/:id", DeleteCurrency(currencySvc))
}

// CreateCurrency registers a user-owned currency.
// @Summary Create a currency
// @Description Fiat codes are three letters, crypto codes three to six alphanumerics. Codes, names and symbols must not clash with predefined currencies.
// @Tags currencies
// @Accept json
// @Produce json
// @Param request body CurrencyInput true "Currency data"
// @Success 201 {object} common.Response
// @Failure 409 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /currencies [post]
// @Security Bearer
func CreateCurrency(currencySvc *currencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CurrencyInput](c)
		if input == nil {
			return err
		}
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		cur, err := currencySvc.Create(c.UserContext(), u.ID, input.Code, input.Name, input.Symbol, input.CurrencyType)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create currency", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Currency created", cur)
	}
}

// ListCurrencies returns a Fiber handler for listing the predefined currencies and the user's own.
// @Summary List all currencies
// @Tags currencies
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /currencies [get]
// @Security Bearer
func ListCurrencies(currencySvc *currencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		rows, err := currencySvc.List(c.UserContext(), u.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list currencies", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currencies fetched successfully", rows)
	}
}

// GetCurrency returns a visible currency.
// @Summary Get a currency
// @Tags currencies
// @Produce json
// @Param id path string true "Currency ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /currencies/{id} [get]
// @Security Bearer
func GetCurrency(currencySvc *currencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid currency ID", err)
		}
		cur, err := currencySvc.Get(c.UserContext(), u.ID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Currency not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currency fetched successfully", cur)
	}
}

// UpdateCurrency changes a user-owned currency. Predefined currencies are immutable.
// @Summary Update a currency
// @Tags currencies
// @Accept json
// @Produce json
// @Param id path string true "Currency ID"
// @Param request body UpdateCurrencyInput true "Currency changes"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /currencies/{id} [put]
// @Security Bearer
func UpdateCurrency(currencySvc *currencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateCurrencyInput](c)
		if input == nil {
			return err
		}
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid currency ID", err)
		}
		cur, err := currencySvc.Update(c.UserContext(), u.ID, id, input.toUpdate())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update currency", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currency updated", cur)
	}
}

// DeleteCurrency deletes a user-owned currency that nothing references.
// @Summary Delete a currency
// @Tags currencies
// @Produce json
// @Param id path string true "Currency ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /currencies/{id} [delete]
// @Security Bearer
func DeleteCurrency(currencySvc *currencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid currency ID", err)
		}
		if err := currencySvc.Delete(c.UserContext(), u.ID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete currency", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currency deleted", nil)
	}
}
