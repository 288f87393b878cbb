// Package admin exposes user management endpoints guarded by the ADMIN role.
package admin

import (
	"github.com/amirasaad/networth/pkg/config"
	"github.com/amirasaad/networth/pkg/domain/user"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/middleware"
	authsvc "github.com/amirasaad/networth/pkg/service/auth"
	summarysvc "github.com/amirasaad/networth/pkg/service/summary"
	usersvc "github.com/amirasaad/networth/pkg/service/user"
	"github.com/amirasaad/networth/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(
	app *fiber.App,
	userSvc *usersvc.Service,
	summarySvc *summarysvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	admin := app.Group("/admin",
		middleware.JwtProtected(cfg.Auth.Jwt),
		middleware.LoadUser(authSvc),
		middleware.RequireRole(user.RoleAdmin),
	)
	admin.Get("/users", ListUsers(userSvc))
	admin.Post("/users/:id/recompute", Recompute(summarySvc))
}

// ListUsers returns a page of users.
// @Summary List users
// @Tags admin
// @Produce json
// @Param page query int false "Page number, starting at 1"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /admin/users [get]
// @Security Bearer
func ListUsers(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, pageSize, err := common.Page(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid pagination", err)
		}
		rows, total, err := userSvc.List(c.UserContext(), page, pageSize)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list users", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Users fetched successfully", common.Paginated[*dto.UserRead]{
			Items:    rows,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

// Recompute rebuilds a user's wallet totals and summary from their balances and assets.
// @Summary Recompute a user's summary
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /admin/users/{id}/recompute [post]
// @Security Bearer
func Recompute(summarySvc *summarysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParamUUID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		summary, err := summarySvc.Recompute(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to recompute summary", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Summary recomputed", summary)
	}
}
