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
	"github.com/tu-usuario/bodega-epp/internal/application/audit"
	"github.com/tu-usuario/bodega-epp/internal/application/auth"
	"github.com/tu-usuario/bodega-epp/internal/application/item"
	"github.com/tu-usuario/bodega-epp/internal/application/movement"
	"github.com/tu-usuario/bodega-epp/internal/application/user"
	"github.com/tu-usuario/bodega-epp/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/bodega-epp/internal/interfaces/http"
	"github.com/tu-usuario/bodega-epp/pkg/config"
	"github.com/tu-usuario/bodega-epp/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	tokenRepo := postgres.NewRefreshTokenRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	recorder := audit.NewRecorder(auditRepo, log, nil)

	movementUC := movement.NewUseCase(txRunner, itemRepo, userRepo, movRepo, recorder, nil)
	itemUC := item.NewUseCase(txRunner, itemRepo, recorder, nil)
	userUC := user.NewUseCase(userRepo, tokenRepo, recorder, nil)
	authUC := auth.NewUseCase(userRepo, tokenRepo, txRunner, recorder, log, auth.JWTConfig{
		Secret:      cfg.JWT.Secret,
		ExpMinutes:  cfg.JWT.Expiration,
		RefreshDays: cfg.JWT.RefreshDays,
		Issuer:      cfg.JWT.Issuer,
	}, nil)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bodega EPP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		MovementUC: movementUC,
		ItemUC:     itemUC,
		UserUC:     userUC,
		Recorder:   recorder,
		JWTSecret:  cfg.JWT.Secret,
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
