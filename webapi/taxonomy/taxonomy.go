// Package taxonomy exposes the category and asset type endpoints.
package taxonomy

import (
	"github.com/amirasaad/networth/pkg/config"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/middleware"
	authsvc "github.com/amirasaad/networth/pkg/service/auth"
	taxonomysvc "github.com/amirasaad/networth/pkg/service/taxonomy"
	"github.com/amirasaad/networth/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, svc *taxonomysvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	categories := app.Group("/categories", middleware.JwtProtected(cfg.Auth.Jwt), middleware.LoadUser(authSvc))
	categories.Post("/", CreateCategory(svc))
	categories.Get("/", ListCategories(svc))
	categories.Get("/:id", GetCategory(svc))
	categories.Put("/:id", UpdateCategory(svc))
	categories.Delete("/:id", DeleteCategory(svc))

	assetTypes := app.Group("/asset-types", middleware.JwtProtected(cfg.Auth.Jwt), middleware.LoadUser(authSvc))
	assetTypes.Post("/", CreateAssetType(svc))
	assetTypes.Get("/", ListAssetTypes(svc))
	assetTypes.Get("/:id", GetAssetType(svc))
	assetTypes.Put("/:id", UpdateAssetType(svc))
	assetTypes.Delete("/:id", DeleteAssetType(svc))
}

// CreateCategory creates a user-owned category.
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CategoryInput true "Category data"
// @Success 201 {object} common.Response
// @Failure 409 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /categories [post]
// @Security Bearer
func CreateCategory(svc *taxonomysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CategoryInput](c)
		if input == nil {
			return err
		}
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		cat, err := svc.CreateCategory(c.UserContext(), u.ID, input.Name, input.Type)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create category", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Category created", cat)
	}
}

// ListCategories returns the predefined categories and the user's own.
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} common.Response
// @Router /categories [get]
// @Security Bearer
func ListCategories(svc *taxonomysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		rows, err := svc.ListCategories(c.UserContext(), u.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list categories", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Categories fetched successfully", rows)
	}
}

// GetCategory returns a visible category.
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /categories/{id} [get]
// @Security Bearer
func GetCategory(svc *taxonomysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid category ID", err)
		}
		cat, err := svc.GetCategory(c.UserContext(), u.ID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Category not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Category found", cat)
	}
}

// UpdateCategory renames or retypes a user-owned category.
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body UpdateCategoryInput true "Category changes"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /categories/{id} [put]
// @Security Bearer
func UpdateCategory(svc *taxonomysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateCategoryInput](c)
		if input == nil {
			return err
		}
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid category ID", err)
		}
		cat, err := svc.UpdateCategory(c.UserContext(), u.ID, id, &dto.CategoryUpdate{Name: input.Name, Type: input.Type})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update category", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Category updated", cat)
	}
}

// DeleteCategory deletes a user-owned category and detaches its transactions.
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /categories/{id} [delete]
// @Security Bearer
func DeleteCategory(svc *taxonomysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid category ID", err)
		}
		if err := svc.DeleteCategory(c.UserContext(), u.ID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete category", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Category deleted", nil)
	}
}

// CreateAssetType creates a user-owned asset type.
// @Summary Create an asset type
// @Tags asset-types
// @Accept json
// @Produce json
// @Param request body AssetTypeInput true "Asset type data"
// @Success 201 {object} common.Response
// @Failure 409 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /asset-types [post]
// @Security Bearer
func CreateAssetType(svc *taxonomysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[AssetTypeInput](c)
		if input == nil {
			return err
		}
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		at, err := svc.CreateAssetType(c.UserContext(), u.ID, input.Name)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create asset type", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Asset type created", at)
	}
}

// ListAssetTypes returns the predefined asset types and the user's own.
// @Summary List asset types
// @Tags asset-types
// @Produce json
// @Success 200 {object} common.Response
// @Router /asset-types [get]
// @Security Bearer
func ListAssetTypes(svc *taxonomysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		rows, err := svc.ListAssetTypes(c.UserContext(), u.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list asset types", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Asset types fetched successfully", rows)
	}
}

// GetAssetType returns a visible asset type.
// @Summary Get an asset type
// @Tags asset-types
// @Produce json
// @Param id path string true "Asset type ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /asset-types/{id} [get]
// @Security Bearer
func GetAssetType(svc *taxonomysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid asset type ID", err)
		}
		at, err := svc.GetAssetType(c.UserContext(), u.ID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Asset type not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Asset type found", at)
	}
}

// UpdateAssetType renames a user-owned asset type.
// @Summary Update an asset type
// @Tags asset-types
// @Accept json
// @Produce json
// @Param id path string true "Asset type ID"
// @Param request body AssetTypeInput true "Asset type changes"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /asset-types/{id} [put]
// @Security Bearer
func UpdateAssetType(svc *taxonomysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[AssetTypeInput](c)
		if input == nil {
			return err
		}
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid asset type ID", err)
		}
		at, err := svc.UpdateAssetType(c.UserContext(), u.ID, id, &dto.AssetTypeUpdate{Name: &input.Name})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update asset type", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Asset type updated", at)
	}
}

// DeleteAssetType deletes a user-owned asset type and detaches its assets.
// @Summary Delete an asset type
// @Tags asset-types
// @Produce json
// @Param id path string true "Asset type ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /asset-types/{id} [delete]
// @Security Bearer
func DeleteAssetType(svc *taxonomysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid asset type ID", err)
		}
		if err := svc.DeleteAssetType(c.UserContext(), u.ID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete asset type", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Asset type deleted", nil)
	}
}
