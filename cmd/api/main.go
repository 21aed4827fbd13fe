package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	"github.com/jhoicas/almacen-ledger/internal/application/ledger"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/notify"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/almacen-ledger/internal/interfaces/http"
	"github.com/jhoicas/almacen-ledger/pkg/config"
	"github.com/jhoicas/almacen-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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
	catalogRepo := postgres.NewCatalogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	notifier := notify.NewWebhookNotifier(cfg.Alerts.WebhookURL)

	availabilityUC := ledger.NewAvailabilityUseCase(itemRepo)
	capacityUC := ledger.NewCapacityUseCase(itemRepo)
	deductUC := ledger.NewDeductUseCase(txRunner)
	orderUC := ledger.NewOrderUseCase(availabilityUC, catalogRepo)
	reorderUC := ledger.NewReorderUseCase(itemRepo, notifier, log)

	// Escaneo periódico de reorden para el dashboard operativo.
	scheduler := cron.New()
	if cfg.Alerts.ScanCron != "" {
		if _, err := scheduler.AddFunc(cfg.Alerts.ScanCron, func() {
			scanCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			reorderUC.RunScan(scanCtx)
		}); err != nil {
			log.Error().Err(err).Str("cron", cfg.Alerts.ScanCron).Msg("programar escaneo de reorden")
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Availability: availabilityUC,
		Capacity:     capacityUC,
		Deduct:       deductUC,
		Order:        orderUC,
		Reorder:      reorderUC,
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
