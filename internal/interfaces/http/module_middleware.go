package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/movements-api/internal/application/dto"
)

// RequireFeature responde 503 si una funcionalidad opcional está desactivada por
// configuración (por ejemplo la auditoría sin base de datos), en lugar de devolver
// listados vacíos que parezcan datos reales.
func RequireFeature(name string, enabled bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !enabled {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "FEATURE_DISABLED",
				Message: "la funcionalidad '" + name + "' no está habilitada en este entorno",
			})
		}
		return c.Next()
	}
}
