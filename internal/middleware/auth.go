package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/liviin/homecare-api/internal/services"
	"github.com/liviin/homecare-api/internal/types"
)

// AuthUser validates that the request carries a valid user session
func AuthUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, auth, []string{"user"}, "catalog.authorization.user")
	}
}

// AuthAdmin validates that the request carries a valid admin session
func AuthAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, auth, []string{"admin"}, "catalog.authorization.admin")
	}
}

// authorize performs the authorization check
func authorize(c *fiber.Ctx, auth *services.AuthService, roles []string, errorType string) error {
	session := c.Cookies("cookie_session")
	if session == "" {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Authorizer cookie \"cookie_session\" not found",
			Type:    errorType,
		}
	}

	data, err := auth.ValidateSession(c.Protocol(), c.Hostname(), session, roles)
	if err != nil {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: fmt.Sprintf("Invalid session: %v", err),
			Type:    errorType,
		}
	}

	if user, ok := data["user"]; ok {
		c.Locals("user", user)
	}

	return c.Next()
}
