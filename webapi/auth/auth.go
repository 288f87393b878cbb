package auth

import (
	"errors"

	"github.com/amirasaad/networth/pkg/domain"
	authsvc "github.com/amirasaad/networth/pkg/service/auth"
	usersvc "github.com/amirasaad/networth/pkg/service/user"
	"github.com/amirasaad/networth/webapi/common"
	"github.com/gofiber/fiber/v2"
)

const defaultBaseCurrency = "USD"

func Routes(app *fiber.App, userSvc *usersvc.Service, authSvc *authsvc.Service) {
	app.Post("/register", Register(userSvc, authSvc))
	app.Post("/login", Login(authSvc))
}

// Register creates a user with an empty summary and returns a token for it.
// @Summary Register a new user
// @Description Create a user account. base_currency is a predefined currency code and defaults to USD.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterInput true "Registration data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /register [post]
func Register(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err
		}
		base := input.BaseCurrency
		if base == "" {
			base = defaultBaseCurrency
		}
		u, err := userSvc.Register(c.UserContext(), input.Username, input.Email, input.Password, base)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't register user", err)
		}
		token, err := authSvc.GenerateToken(u)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User registered", TokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
		})
	}
}

// Login handles user authentication and returns a JWT token.
// @Summary User login
// @Description Authenticate user with identity (username or email) and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		u, err := authSvc.Login(c.UserContext(), input.Identity, input.Password)
		if errors.Is(err, domain.ErrUnauthorized) {
			return common.ProblemDetailsJSON(c, "Invalid identity or password", err, "Identity or password is incorrect")
		}
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		token, err := authSvc.GenerateToken(u)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", TokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
		})
	}
}
