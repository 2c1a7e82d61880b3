package middleware

import (
	"strings"

	"github.com/doguscu/barcode-scanner/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth is middleware that validates the bearer token and stores the
// operator name in the request context.
func RequireAuth(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals("operator", claims.Operator)
		c.Locals("token_id", claims.ID)

		return c.Next()
	}
}

// Operator returns the authenticated operator name, or "system" outside
// protected routes.
func Operator(c *fiber.Ctx) string {
	if name, ok := c.Locals("operator").(string); ok && name != "" {
		return name
	}
	return "system"
}
