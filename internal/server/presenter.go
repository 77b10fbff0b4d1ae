package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/diogo/chatwidget/internal/models"
)

func writeJSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func writeError(c *fiber.Ctx, status int, message string) error {
	return writeJSON(c, status, models.ErrorResponse{Error: message})
}
