package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/movements-api/internal/application/auth"
	appmovement "github.com/jhoicas/movements-api/internal/application/movement"
	"github.com/jhoicas/movements-api/internal/domain/entity"
	"github.com/jhoicas/movements-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MovementUC   *appmovement.UseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
	AuditEnabled bool
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/metrics", MetricsHandler())

	api := app.Group("/api", MetricsMiddleware())

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Movimientos (requieren Bearer Token)
	readers := RequireRole(entity.RoleAdmin, entity.RoleOperator, entity.RoleViewer)
	writers := RequireRole(entity.RoleAdmin, entity.RoleOperator)

	movements := api.Group("/movements", AuthMiddleware(deps.JWTSecret))
	h := NewMovementHandler(deps.MovementUC, deps.Log)
	movements.Get("/", readers, h.List)
	movements.Get("/report.pdf", readers, h.Report)
	movements.Get("/audit", readers, RequireFeature("audit", deps.AuditEnabled), h.Audit)
	movements.Post("/transition-options", readers, h.TransitionOptions)
	movements.Post("/transitions", writers, h.SubmitTransition)
	movements.Patch("/:id/date", writers, h.CorrectDate)
}
