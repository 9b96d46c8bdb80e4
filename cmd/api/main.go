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

	"github.com/jhoicas/pantry-api/internal/application/inventory"
	"github.com/jhoicas/pantry-api/internal/application/shopping"
	"github.com/jhoicas/pantry-api/internal/domain/entity"
	"github.com/jhoicas/pantry-api/internal/domain/velocity"
	"github.com/jhoicas/pantry-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pantry-api/internal/interfaces/http"
	"github.com/jhoicas/pantry-api/pkg/config"
	"github.com/jhoicas/pantry-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	params := engineParams(cfg.Engine)

	productRepo := postgres.NewProductRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	eventRepo := postgres.NewConsumptionEventRepository(pool)
	shoppingRepo := postgres.NewShoppingListRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	recordPurchaseUC := inventory.NewRecordPurchaseUseCase(txRunner, params, log, nil)
	recordConsumptionUC := inventory.NewRecordConsumptionUseCase(txRunner, params, log, nil)
	queryUC := inventory.NewQueryUseCase(productRepo, purchaseRepo, eventRepo, params)
	profileUC := inventory.NewReassignProfileUseCase(txRunner, params, log)
	reconcileUC := inventory.NewReconcileUseCase(productRepo, recordConsumptionUC, txRunner, params, log)
	listUC := shopping.NewListUseCase(shoppingRepo, nil)
	generateUC := shopping.NewGenerateUseCase(queryUC, purchaseRepo, shoppingRepo, txRunner, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Pantry API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RecordPurchase:    recordPurchaseUC,
		RecordConsumption: recordConsumptionUC,
		Query:             queryUC,
		Profile:           profileUC,
		Reconcile:         reconcileUC,
		Lists:             listUC,
		Generate:          generateUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}

// engineParams overlays the configured tunables on the calibrated defaults.
func engineParams(cfg config.EngineConfig) velocity.Params {
	p := velocity.DefaultParams()
	p.ProfileMultipliers = map[entity.ConsumptionProfile]float64{
		entity.ProfilePerishable: cfg.PerishableMultiplier,
		entity.ProfilePantry:     cfg.PantryMultiplier,
		entity.ProfileHousehold:  cfg.HouseholdMultiplier,
		entity.ProfileFrozen:     cfg.FrozenMultiplier,
	}
	p.StockedCutoff = cfg.StockedCutoff
	p.MinPurchases = cfg.MinPurchases
	p.WasteRatioTrigger = cfg.WasteRatioTrigger
	return p
}
