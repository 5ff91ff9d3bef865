package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/movements-api/internal/application/auth"
	appmovement "github.com/jhoicas/movements-api/internal/application/movement"
	"github.com/jhoicas/movements-api/internal/domain/repository"
	infrapdf "github.com/jhoicas/movements-api/internal/infrastructure/pdf"
	"github.com/jhoicas/movements-api/internal/infrastructure/postgres"
	"github.com/jhoicas/movements-api/internal/infrastructure/upstream"
	httpRouter "github.com/jhoicas/movements-api/internal/interfaces/http"
	"github.com/jhoicas/movements-api/pkg/config"
	"github.com/jhoicas/movements-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("upstream", cfg.Upstream.BaseURL).
		Bool("audit", cfg.Audit.Enabled).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}
	if !cfg.DB.Configured() {
		log.Fatal().Msg("DATABASE_URL o DB_HOST es obligatorio (operadores y auditoría)")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	txRunner := postgres.NewTxRunner(pool)
	if err := txRunner.Run(ctx, func(q postgres.Querier) error { return postgres.Migrate(ctx, q) }); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	operatorRepo := postgres.NewOperatorRepository(pool)

	// Sin auditoría el caso de uso usa un repositorio no-op.
	var auditRepo repository.TransitionAuditRepository
	if cfg.Audit.Enabled {
		auditRepo = postgres.NewTransitionAuditRepository(pool)
	}

	movementsSvc := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout(), log)
	reportGenerator := infrapdf.NewMarotoReportGenerator()
	movementUC := appmovement.NewUseCase(movementsSvc, auditRepo, reportGenerator, log)

	authUC := auth.NewAuthUseCase(operatorRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Upstream.Timeout() * 3,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Movements API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MovementUC:   movementUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
		AuditEnabled: cfg.Audit.Enabled,
		Log:          log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
