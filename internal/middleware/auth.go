package middleware

import (
	"errors"
	"strings"

	"estates-backend/internal/pkg/response"
	"estates-backend/internal/tokens"

	"github.com/gofiber/fiber/v2"
)

const adminLocal = "admin"
const bearerPrefix = "Bearer "

// RequireAuth resolves the Authorization bearer token against the token
// store and attaches the session to Locals. 401 with the standard error
// envelope when the header is missing, malformed, or the token is unknown.
func RequireAuth(store *tokens.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return response.Unauthorized(c, "Not authenticated")
		}
		sess, err := store.Lookup(c.Context(), strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			if errors.Is(err, tokens.ErrNotFound) {
				return response.Unauthorized(c, "Invalid or expired token")
			}
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
		}
		c.Locals(adminLocal, sess)
		return c.Next()
	}
}

// SessionAdmin returns the authenticated admin session, or nil outside
// RequireAuth-guarded routes.
func SessionAdmin(c *fiber.Ctx) *tokens.Session {
	sess, _ := c.Locals(adminLocal).(*tokens.Session)
	return sess
}
