package inventory

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/pantry-api/internal/domain/repository"
	"github.com/jhoicas/pantry-api/pkg/logger"
)

// sweepCheckpointKey stores the last fully processed product id so a restarted
// sweep resumes instead of redoing finished products.
const sweepCheckpointKey = "velocity_sweep_checkpoint"

// SweepUseCase runs the periodic recompute pass. Stock estimates decay with
// wall-clock time even when no new events arrive, so a nightly sweep refreshes
// the cached derived fields. It is an optimization, not the source of
// correctness: any single recompute would produce the same values.
//
// Products are independent, so batches recompute concurrently; the only
// serialization is the per-product row lock each recompute already takes.
type SweepUseCase struct {
	products    repository.ProductRepository
	settings    repository.SettingsRepository
	recompute   *RecomputeUseCase
	concurrency int
	batchSize   int
	log         *logger.Logger
}

// NewSweepUseCase builds the use case over pool-bound repositories.
func NewSweepUseCase(
	products repository.ProductRepository,
	settings repository.SettingsRepository,
	recompute *RecomputeUseCase,
	concurrency, batchSize int,
	log *logger.Logger,
) *SweepUseCase {
	if concurrency < 1 {
		concurrency = 1
	}
	if batchSize < 1 {
		batchSize = 100
	}
	return &SweepUseCase{
		products:    products,
		settings:    settings,
		recompute:   recompute,
		concurrency: concurrency,
		batchSize:   batchSize,
		log:         log,
	}
}

// Run walks every product in id order and recomputes it as of now. The
// checkpoint advances after each completed batch, and the context is checked
// between batches, so the sweep is interruptible and resumable.
func (uc *SweepUseCase) Run(ctx context.Context, now time.Time) (int, error) {
	afterID, err := uc.settings.Get(ctx, sweepCheckpointKey)
	if err != nil {
		return 0, err
	}
	if afterID != "" {
		uc.log.Info().Str("after_id", afterID).Msg("resuming sweep from checkpoint")
	}

	processed := 0
	for {
		if err := ctx.Err(); err != nil {
			return processed, err
		}

		ids, err := uc.products.ListIDsAfter(ctx, afterID, uc.batchSize)
		if err != nil {
			return processed, err
		}
		if len(ids) == 0 {
			break
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(uc.concurrency)
		for _, id := range ids {
			id := id
			g.Go(func() error {
				return uc.recompute.Recompute(gctx, id, now)
			})
		}
		if err := g.Wait(); err != nil {
			return processed, err
		}

		processed += len(ids)
		afterID = ids[len(ids)-1]
		if err := uc.settings.Set(ctx, sweepCheckpointKey, afterID); err != nil {
			return processed, err
		}
		uc.log.Debug().Int("processed", processed).Str("after_id", afterID).Msg("sweep batch done")
	}

	// Completed: clear the checkpoint so the next sweep starts from the top.
	if err := uc.settings.Set(ctx, sweepCheckpointKey, ""); err != nil {
		return processed, err
	}
	uc.log.Info().Int("processed", processed).Msg("sweep complete")
	return processed, nil
}
