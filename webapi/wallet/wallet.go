package wallet

import (
	"github.com/amirasaad/networth/pkg/config"
	"github.com/amirasaad/networth/pkg/middleware"
	authsvc "github.com/amirasaad/networth/pkg/service/auth"
	summarysvc "github.com/amirasaad/networth/pkg/service/summary"
	walletsvc "github.com/amirasaad/networth/pkg/service/wallet"
	"github.com/amirasaad/networth/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers wallet and balance endpoints.
func Routes(
	app *fiber.App,
	walletSvc *walletsvc.Service,
	summarySvc *summarysvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	wallets := app.Group("/wallets", middleware.JwtProtected(cfg.Auth.Jwt), middleware.LoadUser(authSvc))
	wallets.Post("/", CreateWallet(walletSvc))
	wallets.Get("/", ListWallets(walletSvc))
	wallets.Get("/total-value", TotalValue(summarySvc))
	wallets.Get("/:id", GetWallet(walletSvc))
	wallets.Put("/:id", UpdateWallet(walletSvc))
	wallets.Delete("/:id", DeleteWallet(walletSvc))
	wallets.Post("/:id/currency-balance", AddBalance(walletSvc))
	wallets.Put("/:id/currency-balance/:currency_id", SetBalance(walletSvc))
	wallets.Delete("/:id/currency-balance/:currency_id", RemoveBalance(walletSvc))
}

// CreateWallet creates a wallet with its initial balances.
// @Summary Create a wallet
// @Tags wallets
// @Accept json
// @Produce json
// @Param request body CreateWalletInput true "Wallet data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /wallets [post]
// @Security Bearer
func CreateWallet(walletSvc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateWalletInput](c)
		if input == nil {
			return err
		}
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		w, err := walletSvc.Create(c.UserContext(), u.ID, input.Name, input.Type, input.balances())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create wallet", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Wallet created", w)
	}
}

// ListWallets returns the wallets of the authenticated user.
// @Summary List wallets
// @Tags wallets
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /wallets [get]
// @Security Bearer
func ListWallets(walletSvc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		rows, err := walletSvc.List(c.UserContext(), u.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list wallets", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Wallets fetched successfully", rows)
	}
}

// TotalValue returns the sum of all wallets in the base currency.
// @Summary Total value of wallets
// @Tags wallets
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /wallets/total-value [get]
// @Security Bearer
func TotalValue(summarySvc *summarysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		total, err := summarySvc.WalletsTotal(c.UserContext(), u.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to compute wallets value", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Wallets value", total)
	}
}

// GetWallet returns a wallet with its balances.
// @Summary Get a wallet
// @Tags wallets
// @Produce json
// @Param id path string true "Wallet ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /wallets/{id} [get]
// @Security Bearer
func GetWallet(walletSvc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid wallet ID", err)
		}
		w, err := walletSvc.Get(c.UserContext(), u.ID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Wallet not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Wallet found", w)
	}
}

// UpdateWallet renames or retypes a wallet.
// @Summary Update a wallet
// @Tags wallets
// @Accept json
// @Produce json
// @Param id path string true "Wallet ID"
// @Param request body UpdateWalletInput true "Wallet changes"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /wallets/{id} [put]
// @Security Bearer
func UpdateWallet(walletSvc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateWalletInput](c)
		if input == nil {
			return err
		}
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid wallet ID", err)
		}
		w, err := walletSvc.Update(c.UserContext(), u.ID, id, input.Name, input.Type)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update wallet", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Wallet updated", w)
	}
}

// DeleteWallet deletes a wallet, its balances and the transactions that reference it.
// @Summary Delete a wallet
// @Tags wallets
// @Produce json
// @Param id path string true "Wallet ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /wallets/{id} [delete]
// @Security Bearer
func DeleteWallet(walletSvc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid wallet ID", err)
		}
		if err := walletSvc.Delete(c.UserContext(), u.ID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete wallet", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Wallet deleted", nil)
	}
}

// AddBalance adds a currency balance to a wallet.
// @Summary Add a currency balance
// @Tags wallets
// @Accept json
// @Produce json
// @Param id path string true "Wallet ID"
// @Param request body BalanceInput true "Balance"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /wallets/{id}/currency-balance [post]
// @Security Bearer
func AddBalance(walletSvc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[BalanceInput](c)
		if input == nil {
			return err
		}
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid wallet ID", err)
		}
		w, err := walletSvc.AddBalance(c.UserContext(), u.ID, id, input.CurrencyID, input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to add balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Balance added", w)
	}
}

// SetBalance sets the amount of an existing balance.
// @Summary Set a balance amount
// @Tags wallets
// @Accept json
// @Produce json
// @Param id path string true "Wallet ID"
// @Param currency_id path string true "Currency ID"
// @Param request body AmountInput true "New amount"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /wallets/{id}/currency-balance/{currency_id} [put]
// @Security Bearer
func SetBalance(walletSvc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[AmountInput](c)
		if input == nil {
			return err
		}
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid wallet ID", err)
		}
		currencyID, err := common.ParamUUID(c, "currency_id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid currency ID", err)
		}
		w, err := walletSvc.SetBalance(c.UserContext(), u.ID, id, currencyID, input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance updated", w)
	}
}

// RemoveBalance removes a currency balance from a wallet.
// @Summary Remove a currency balance
// @Tags wallets
// @Produce json
// @Param id path string true "Wallet ID"
// @Param currency_id path string true "Currency ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /wallets/{id}/currency-balance/{currency_id} [delete]
// @Security Bearer
func RemoveBalance(walletSvc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid wallet ID", err)
		}
		currencyID, err := common.ParamUUID(c, "currency_id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid currency ID", err)
		}
		w, err := walletSvc.RemoveBalance(c.UserContext(), u.ID, id, currencyID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to remove balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance removed", w)
	}
}
