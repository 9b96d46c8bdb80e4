package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/pantry-api/internal/application/inventory"
	"github.com/jhoicas/pantry-api/internal/domain/entity"
	"github.com/jhoicas/pantry-api/internal/domain/velocity"
	"github.com/jhoicas/pantry-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pantry-api/pkg/config"
	"github.com/jhoicas/pantry-api/pkg/logger"
)

// One-shot batch recompute of every product's derived fields. Stock estimates
// decay with the calendar, so a periodic run (cron, container job) keeps the
// low/out statuses fresh even when nobody touches the API. The sweep
// checkpoints after each batch and resumes where it left off if interrupted.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	params := engineParams(cfg.Engine)

	productRepo := postgres.NewProductRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	recomputeUC := inventory.NewRecomputeUseCase(txRunner, params, log)
	sweepUC := inventory.NewSweepUseCase(
		productRepo, settingsRepo, recomputeUC,
		cfg.Sweep.Concurrency, cfg.Sweep.BatchSize, log,
	)

	start := time.Now()
	processed, err := sweepUC.Run(ctx, start)
	if err != nil {
		log.Fatal().Err(err).Int("processed", processed).Msg("sweep aborted")
	}

	log.Info().
		Int("processed", processed).
		Dur("elapsed", time.Since(start)).
		Msg("sweep finished")
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
