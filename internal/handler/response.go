package handler

import (
	"errors"
	"strconv"

	"github.com/doguscu/barcode-scanner/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP statuses. Store failures are
// logged and reported without detail.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidDocument):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrStockNotFound), errors.Is(err, service.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	logger.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
