package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/utils"
)

// RequireStaff gates a route to staff accounts.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*utils.Claims)
		if !ok || claims == nil {
			return fiber.ErrUnauthorized
		}
		if !claims.Staff {
			return fiber.NewError(fiber.StatusForbidden, "forbidden: staff only")
		}
		return c.Next()
	}
}
