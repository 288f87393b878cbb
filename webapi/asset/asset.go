package asset

import (
	"github.com/amirasaad/networth/pkg/config"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/middleware"
	assetsvc "github.com/amirasaad/networth/pkg/service/asset"
	authsvc "github.com/amirasaad/networth/pkg/service/auth"
	summarysvc "github.com/amirasaad/networth/pkg/service/summary"
	"github.com/amirasaad/networth/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers asset endpoints.
func Routes(
	app *fiber.App,
	assetSvc *assetsvc.Service,
	summarySvc *summarysvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	assets := app.Group("/assets", middleware.JwtProtected(cfg.Auth.Jwt), middleware.LoadUser(authSvc))
	assets.Post("/", CreateAsset(assetSvc))
	assets.Get("/", ListAssets(assetSvc))
	assets.Get("/filter", FilterAssets(assetSvc))
	assets.Get("/total-value", TotalValue(summarySvc))
	assets.Get("/:id", GetAsset(assetSvc))
	assets.Put("/:id", UpdateAsset(assetSvc))
	assets.Delete("/:id", DeleteAsset(assetSvc))
}

// CreateAsset creates an asset and adds its value to the summary.
// @Summary Create an asset
// @Tags assets
// @Accept json
// @Produce json
// @Param request body CreateAssetInput true "Asset data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /assets [post]
// @Security Bearer
func CreateAsset(assetSvc *assetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateAssetInput](c)
		if input == nil {
			return err
		}
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		a, err := assetSvc.Create(c.UserContext(), u.ID, input.Name, input.Value, input.CurrencyID, input.AssetTypeID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create asset", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Asset created", a)
	}
}

// ListAssets returns every asset of the authenticated user.
// @Summary List assets
// @Tags assets
// @Produce json
// @Success 200 {object} common.Response
// @Router /assets [get]
// @Security Bearer
func ListAssets(assetSvc *assetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		rows, err := assetSvc.List(c.UserContext(), u.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list assets", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Assets fetched successfully", rows)
	}
}

// FilterAssets lists assets matching the query filters.
// @Summary Filter assets
// @Tags assets
// @Produce json
// @Param asset_type_id query string false "Asset type"
// @Param currency_id query string false "Currency"
// @Param name query string false "Name substring"
// @Param min_value query string false "Minimum value"
// @Param max_value query string false "Maximum value"
// @Param page query int false "Page number, starting at 1"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {object} common.Response
// @Failure 422 {object} common.ProblemDetails
// @Router /assets/filter [get]
// @Security Bearer
func FilterAssets(assetSvc *assetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		filter, err := parseFilter(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid filter", err)
		}
		rows, total, err := assetSvc.Filter(c.UserContext(), u.ID, filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to filter assets", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Assets fetched successfully", common.Paginated[*dto.AssetRead]{
			Items:    rows,
			Total:    total,
			Page:     filter.Page,
			PageSize: filter.PageSize,
		})
	}
}

func parseFilter(c *fiber.Ctx) (*dto.AssetFilter, error) {
	f := &dto.AssetFilter{Name: c.Query("name")}
	var err error
	if f.AssetTypeID, err = common.QueryUUID(c, "asset_type_id"); err != nil {
		return nil, err
	}
	if f.CurrencyID, err = common.QueryUUID(c, "currency_id"); err != nil {
		return nil, err
	}
	if f.MinValue, err = common.QueryDecimal(c, "min_value"); err != nil {
		return nil, err
	}
	if f.MaxValue, err = common.QueryDecimal(c, "max_value"); err != nil {
		return nil, err
	}
	if f.Page, f.PageSize, err = common.Page(c); err != nil {
		return nil, err
	}
	return f, nil
}

// TotalValue returns the sum of all assets in the base currency.
// @Summary Total value of assets
// @Tags assets
// @Produce json
// @Success 200 {object} common.Response
// @Router /assets/total-value [get]
// @Security Bearer
func TotalValue(summarySvc *summarysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		total, err := summarySvc.AssetsTotal(c.UserContext(), u.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to compute assets value", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Assets value", total)
	}
}

// GetAsset returns a single asset.
// @Summary Get an asset
// @Tags assets
// @Produce json
// @Param id path string true "Asset ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /assets/{id} [get]
// @Security Bearer
func GetAsset(assetSvc *assetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid asset ID", err)
		}
		a, err := assetSvc.Get(c.UserContext(), u.ID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Asset not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Asset found", a)
	}
}

// UpdateAsset changes an asset and moves the difference in value into the summary.
// @Summary Update an asset
// @Tags assets
// @Accept json
// @Produce json
// @Param id path string true "Asset ID"
// @Param request body UpdateAssetInput true "Asset changes"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /assets/{id} [put]
// @Security Bearer
func UpdateAsset(assetSvc *assetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateAssetInput](c)
		if input == nil {
			return err
		}
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid asset ID", err)
		}
		a, err := assetSvc.Update(c.UserContext(), u.ID, id, input.toUpdate())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update asset", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Asset updated", a)
	}
}

// DeleteAsset removes an asset and its value from the summary.
// @Summary Delete an asset
// @Tags assets
// @Produce json
// @Param id path string true "Asset ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /assets/{id} [delete]
// @Security Bearer
func DeleteAsset(assetSvc *assetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid asset ID", err)
		}
		if err := assetSvc.Delete(c.UserContext(), u.ID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete asset", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Asset deleted", nil)
	}
}
