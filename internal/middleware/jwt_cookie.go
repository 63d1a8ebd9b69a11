package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/session"
	"github.com/kushali13/woc8.0-job-recruitment-kushali/internal/utils"
)

const CookieName = "jr_token"

// JWTFromCookie authenticates the request from the session cookie. The token
// must verify and its session id must still be live in the registry, so a
// logged-out token is rejected even before its JWT expiry.
func JWTFromCookie(secret string, sessions *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(CookieName)
		if tokenStr == "" {
			return fiber.ErrUnauthorized
		}

		claims, err := utils.ParseJWT(secret, tokenStr)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		if sessions != nil {
			live, err := sessions.Exists(c.Context(), claims.SessionID)
			if err != nil || !live {
				return fiber.ErrUnauthorized
			}
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}
