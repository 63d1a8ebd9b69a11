package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/utils"
)

// AttachJWTLocals unpacks verified claims into plain locals for handlers.
func AttachJWTLocals() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*utils.Claims)
		if !ok || claims == nil {
			return fiber.ErrUnauthorized
		}

		uid := strings.TrimSpace(claims.UserID)
		if uid == "" {
			return fiber.ErrUnauthorized
		}

		c.Locals("userId", uid)
		c.Locals("userType", claims.UserType)
		c.Locals("staff", claims.Staff)
		return c.Next()
	}
}
