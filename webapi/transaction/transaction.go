package transaction

import (
	"bytes"
	"fmt"
	"time"

	"github.com/amirasaad/networth/pkg/config"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/middleware"
	authsvc "github.com/amirasaad/networth/pkg/service/auth"
	transactionsvc "github.com/amirasaad/networth/pkg/service/transaction"
	"github.com/amirasaad/networth/webapi/common"
	"github.com/gofiber/fiber/v2"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Routes registers transaction endpoints.
func Routes(app *fiber.App, txSvc *transactionsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	txs := app.Group("/transactions", middleware.JwtProtected(cfg.Auth.Jwt), middleware.LoadUser(authSvc))
	txs.Post("/", CreateTransaction(txSvc))
	txs.Get("/", FilterTransactions(txSvc))
	txs.Get("/filter", FilterTransactions(txSvc))
	txs.Get("/statistics", Statistics(txSvc))
	txs.Get("/export", Export(txSvc))
	txs.Get("/:id", GetTransaction(txSvc))
	txs.Put("/:id", UpdateTransaction(txSvc))
	txs.Delete("/:id", DeleteTransaction(txSvc))
}

// CreateTransaction records an income, expense or transfer and applies it to
// the wallets involved.
// @Summary Create a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionInput true "Transaction data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /transactions [post]
// @Security Bearer
func CreateTransaction(txSvc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateTransactionInput](c)
		if input == nil {
			return err
		}
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		tx, err := txSvc.Create(c.UserContext(), u.ID, input.toInput())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transaction created", tx)
	}
}

// FilterTransactions lists transactions matching the query filters.
// @Summary Filter transactions
// @Tags transactions
// @Produce json
// @Param type query string false "income, expense or transfer"
// @Param wallet_id query string false "Source or destination wallet"
// @Param category_id query string false "Category"
// @Param currency_id query string false "Currency"
// @Param date_from query string false "Inclusive lower date bound"
// @Param date_to query string false "Inclusive upper date bound"
// @Param min_amount query string false "Minimum amount"
// @Param max_amount query string false "Maximum amount"
// @Param page query int false "Page number, starting at 1"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {object} common.Response
// @Failure 422 {object} common.ProblemDetails
// @Router /transactions [get]
// @Router /transactions/filter [get]
// @Security Bearer
func FilterTransactions(txSvc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		filter, err := parseFilter(c, true)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid filter", err)
		}
		rows, total, err := txSvc.Filter(c.UserContext(), u.ID, filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched successfully", common.Paginated[*dto.TransactionRead]{
			Items:    rows,
			Total:    total,
			Page:     filter.Page,
			PageSize: filter.PageSize,
		})
	}
}

// Statistics sums matching transactions by type and by category in the base currency.
// @Summary Transaction statistics
// @Tags transactions
// @Produce json
// @Param type query string false "income, expense or transfer"
// @Param date_from query string false "Inclusive lower date bound"
// @Param date_to query string false "Inclusive upper date bound"
// @Success 200 {object} common.Response
// @Failure 422 {object} common.ProblemDetails
// @Router /transactions/statistics [get]
// @Security Bearer
func Statistics(txSvc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		filter, err := parseFilter(c, false)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid filter", err)
		}
		stats, err := txSvc.Statistics(c.UserContext(), u.ID, filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to compute statistics", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction statistics", stats)
	}
}

// Export streams matching transactions as an xlsx workbook.
// @Summary Export transactions
// @Tags transactions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param type query string false "income, expense or transfer"
// @Param date_from query string false "Inclusive lower date bound"
// @Param date_to query string false "Inclusive upper date bound"
// @Success 200 {file} file
// @Failure 422 {object} common.ProblemDetails
// @Router /transactions/export [get]
// @Security Bearer
func Export(txSvc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		filter, err := parseFilter(c, false)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid filter", err)
		}
		var buf bytes.Buffer
		if err := txSvc.Export(c.UserContext(), u.ID, filter, &buf); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to export transactions", err)
		}
		c.Set(fiber.HeaderContentType, xlsxMIME)
		c.Attachment(fmt.Sprintf("transactions-%s.xlsx", time.Now().UTC().Format("20060102")))
		return c.Status(fiber.StatusOK).Send(buf.Bytes())
	}
}

// GetTransaction returns a single transaction.
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /transactions/{id} [get]
// @Security Bearer
func GetTransaction(txSvc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err)
		}
		tx, err := txSvc.Get(c.UserContext(), u.ID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Transaction not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction found", tx)
	}
}

// UpdateTransaction reverses the old effect of a transaction and applies the new one.
// @Summary Update a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body UpdateTransactionInput true "Transaction changes"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /transactions/{id} [put]
// @Security Bearer
func UpdateTransaction(txSvc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateTransactionInput](c)
		if input == nil {
			return err
		}
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err)
		}
		tx, err := txSvc.Update(c.UserContext(), u.ID, id, input.toUpdate())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction updated", tx)
	}
}

// DeleteTransaction reverses a transaction's effect and removes it.
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /transactions/{id} [delete]
// @Security Bearer
func DeleteTransaction(txSvc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err)
		}
		if err := txSvc.Delete(c.UserContext(), u.ID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction deleted", nil)
	}
}
