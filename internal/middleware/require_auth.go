package middleware

import "github.com/gofiber/fiber/v2"

// RequireAuth guards a route group: JWTUid must have resolved a user id.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if v, ok := c.Locals("user_id").(string); !ok || v == "" {
			return fiber.ErrUnauthorized
		}
		return c.Next()
	}
}
