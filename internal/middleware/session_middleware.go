package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"inventorywidget/internal/session"
)

// GateRequired rejects requests before they reach the inventory layer unless
// an unlocked session exists and the request carries a valid session token.
func GateRequired(manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header must be in 'Bearer <token>' format",
			})
		}

		claims, err := manager.ValidateToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired session token",
			})
		}

		if !manager.Authenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Session is locked",
			})
		}

		c.Locals("session", claims)
		return c.Next()
	}
}
