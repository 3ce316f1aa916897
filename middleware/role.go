package middleware

import (
	"lams/models"

	"github.com/gofiber/fiber/v2"
)

// RequireRole returns a middleware that rejects callers below the required
// role in the hierarchy. A missing identity is unauthenticated (401), an
// insufficient role is forbidden (403).
func RequireRole(requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("userId").(uint); !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}

		role, ok := c.Locals("userRole").(string)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: role not found in token", nil)
		}

		if models.RoleRank(role) < models.RoleRank(requiredRole) {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}

		return c.Next()
	}
}
