package user

import (
	"github.com/amirasaad/networth/pkg/config"
	"github.com/amirasaad/networth/pkg/middleware"
	authsvc "github.com/amirasaad/networth/pkg/service/auth"
	usersvc "github.com/amirasaad/networth/pkg/service/user"
	"github.com/amirasaad/networth/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

func Routes(app *fiber.App, userSvc *usersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	current := middleware.LoadUser(authSvc)
	app.Get("/user", protected, current, GetUser())
	app.Put("/user", protected, current, UpdateUser(userSvc))
	app.Delete("/user", protected, current, DeleteUser(userSvc))
}

// GetUser returns the authenticated user.
// @Summary Get current user
// @Tags users
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /user [get]
// @Security Bearer
func GetUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", u)
	}
}

// UpdateUser changes the username, email or password of the authenticated user.
// @Summary Update current user
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateUserInput true "User update data"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /user [put]
// @Security Bearer
func UpdateUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateUserInput](c)
		if input == nil {
			return err
		}
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		updated, err := userSvc.Update(c.UserContext(), u.ID, input.toUpdate())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User updated successfully", updated)
	}
}

// DeleteUser deletes the authenticated user and everything they own.
// @Summary Delete current user
// @Tags users
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /user [delete]
// @Security Bearer
func DeleteUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := middleware.CurrentUser(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		if err := userSvc.Delete(c.UserContext(), u.ID); err != nil {
			log.Errorw("failed to delete user", "user_id", u.ID, "error", err)
			return common.ProblemDetailsJSON(c, "Failed to delete user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User successfully deleted", nil)
	}
}
