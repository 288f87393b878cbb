// Package middleware holds the fiber middleware that authenticates requests,
// resolves the current user, guards roles and bounds request lifetimes.
package middleware

import (
	"errors"

	"github.com/amirasaad/networth/pkg/config"
	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/domain/user"
	"github.com/amirasaad/networth/pkg/dto"
	authsvc "github.com/amirasaad/networth/pkg/service/auth"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenKey       = "user"
	currentUserKey = "current_user"
)

// JwtProtected verifies the bearer token and stores it in the request locals.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{
			JWTAlg: cfg.Algorithm,
			Key:    []byte(cfg.Secret),
		},
		ContextKey:   tokenKey,
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
		return unauthorized(c, "Missing or malformed JWT")
	}
	return unauthorized(c, "Invalid or expired JWT")
}

func unauthorized(c *fiber.Ctx, detail string) error {
	return problem(c, fiber.StatusUnauthorized, "Unauthorized", detail)
}

func problem(c *fiber.Ctx, status int, title, detail string) error {
	return c.Status(status).JSON(fiber.Map{
		"type":     "about:blank",
		"title":    title,
		"status":   status,
		"detail":   detail,
		"instance": c.OriginalURL(),
	}, "application/problem+json")
}

// LoadUser resolves the user a verified token belongs to. It must run after
// JwtProtected. Tokens without an expiry and tokens of deleted users are rejected.
func LoadUser(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals(tokenKey).(*jwt.Token)
		if !ok {
			return unauthorized(c, "missing user context")
		}
		if exp, err := token.Claims.GetExpirationTime(); err != nil || exp == nil {
			return unauthorized(c, "token has no expiry")
		}
		u, err := authSvc.GetCurrentUser(c.UserContext(), token)
		if errors.Is(err, domain.ErrUnauthorized) {
			return unauthorized(c, "token does not belong to an active user")
		}
		if err != nil {
			log.Errorw("failed to resolve current user", "error", err)
			return err
		}
		c.Locals(currentUserKey, u)
		return c.Next()
	}
}

// CurrentUser returns the user resolved by LoadUser.
func CurrentUser(c *fiber.Ctx) (*dto.UserRead, error) {
	u, ok := c.Locals(currentUserKey).(*dto.UserRead)
	if !ok || u == nil {
		return nil, domain.ErrUnauthorized
	}
	return u, nil
}

// RequireRole rejects users that do not hold role. Admins pass every guard.
func RequireRole(role user.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := CurrentUser(c)
		if err != nil {
			return unauthorized(c, "missing user context")
		}
		if err := authsvc.RequireRole(u, role); err != nil {
			return problem(c, fiber.StatusForbidden, "Forbidden", "requires role "+string(role))
		}
		return c.Next()
	}
}
