package currency

import (
	"time"

	"github.com/amirasaad/networth/pkg/config"
	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/middleware"
	authsvc "github.com/amirasaad/networth/pkg/service/auth"
	exchangesvc "github.com/amirasaad/networth/pkg/service/exchange"
	"github.com/amirasaad/networth/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// ExchangeRoutes registers the user-scoped exchange rate endpoints.
func ExchangeRoutes(app *fiber.App, exchangeSvc *exchangesvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	rates := app.Group("/currency-exchanges", middleware.JwtProtected(cfg.Auth.Jwt), middleware.LoadUser(authSvc))
	rates.Post("/", CreateExchange(exchangeSvc))
	rates.Get("/", ListExchanges(exchangeSvc))
	rates.Get("/rate", Quote(exchangeSvc))
	rates.Get("/:id", GetExchange(exchangeSvc))
	rates.Put("/:id", UpdateExchange(exchangeSvc))
	rates.Delete("/:id", DeleteExchange(exchangeSvc))
}

// CreateExchange records a rate. A pair and its reverse cannot both exist.
// @Summary Create an exchange rate
// @Tags currency-exchanges
// @Accept json
// @Produce json
// @Param request body ExchangeInput true "Rate data"
// @Success 201 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /currency-exchanges [post]
// @Security Bearer
func CreateExchange(exchangeSvc *exchangesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ExchangeInput](c)
		if input == nil {
			return err
		}
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		var date time.Time
		if input.Date != nil {
			date = input.Date.UTC()
		}
		e, err := exchangeSvc.Create(c.UserContext(), u.ID, input.FromCurrencyID, input.ToCurrencyID, input.Rate, date)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create exchange rate", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Exchange rate created", e)
	}
}

// ListExchanges returns the user's rates.
// @Summary List exchange rates
// @Tags currency-exchanges
// @Produce json
// @Success 200 {object} common.Response
// @Router /currency-exchanges [get]
// @Security Bearer
func ListExchanges(exchangeSvc *exchangesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		rows, err := exchangeSvc.List(c.UserContext(), u.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list exchange rates", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Exchange rates fetched successfully", rows)
	}
}

// Quote resolves the rate between two currencies, using the reverse pair when
// only that one is stored.
// @Summary Resolve a rate
// @Tags currency-exchanges
// @Produce json
// @Param from query string true "Source currency ID"
// @Param to query string true "Target currency ID"
// @Success 200 {object} common.Response
// @Failure 422 {object} common.ProblemDetails
// @Router /currency-exchanges/rate [get]
// @Security Bearer
func Quote(exchangeSvc *exchangesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		from, err := common.QueryUUID(c, "from")
		if err == nil && from == nil {
			err = domain.NewValidationError("from", "is required")
		}
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", err)
		}
		to, err := common.QueryUUID(c, "to")
		if err == nil && to == nil {
			err = domain.NewValidationError("to", "is required")
		}
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", err)
		}
		quote, err := exchangeSvc.Quote(c.UserContext(), u.ID, *from, *to)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to resolve rate", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rate resolved", quote)
	}
}

// GetExchange returns one of the user's rates.
// @Summary Get an exchange rate
// @Tags currency-exchanges
// @Produce json
// @Param id path string true "Exchange ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /currency-exchanges/{id} [get]
// @Security Bearer
func GetExchange(exchangeSvc *exchangesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid exchange ID", err)
		}
		e, err := exchangeSvc.Get(c.UserContext(), u.ID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Exchange rate not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Exchange rate found", e)
	}
}

// UpdateExchange changes a rate and recomputes the user's aggregates.
// @Summary Update an exchange rate
// @Tags currency-exchanges
// @Accept json
// @Produce json
// @Param id path string true "Exchange ID"
// @Param request body UpdateExchangeInput true "Rate changes"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /currency-exchanges/{id} [put]
// @Security Bearer
func UpdateExchange(exchangeSvc *exchangesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateExchangeInput](c)
		if input == nil {
			return err
		}
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid exchange ID", err)
		}
		e, err := exchangeSvc.Update(c.UserContext(), u.ID, id, input.toUpdate())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update exchange rate", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Exchange rate updated", e)
	}
}

// DeleteExchange removes a rate unless a held currency depends on it.
// @Summary Delete an exchange rate
// @Tags currency-exchanges
// @Produce json
// @Param id path string true "Exchange ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /currency-exchanges/{id} [delete]
// @Security Bearer
func DeleteExchange(exchangeSvc *exchangesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid exchange ID", err)
		}
		if err := exchangeSvc.Delete(c.UserContext(), u.ID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete exchange rate", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Exchange rate deleted", nil)
	}
}
