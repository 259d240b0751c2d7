package middleware

import (
	"github.com/gofiber/fiber/v2"

	"gram-seva/internal/domain"
)

// RequireRole guards a route group for exactly one account variant.
// Roles are disjoint here: an admin is not a superset of a citizen.
func RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) != role {
			return Forbidden("Insufficient permissions for this operation")
		}
		return c.Next()
	}
}

func RequireAnyRole(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current := GetRole(c)
		for _, role := range roles {
			if current == role {
				return c.Next()
			}
		}
		return Forbidden("Insufficient permissions for this operation")
	}
}
