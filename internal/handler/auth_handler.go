package handler

import (
	"github.com/doguscu/barcode-scanner/internal/middleware"
	"github.com/doguscu/barcode-scanner/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Login handles operator authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Name == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Name and password are required"})
	}

	response, err := h.authService.Login(req.Name, req.Password)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(response)
}

// Me returns the operator bound to the current token
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"operator": middleware.Operator(c)})
}
