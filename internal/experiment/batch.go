package experiment

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/chaosdata/pkg/dynamo"
)

// Realization is one member of a batch together with the seed that
// reproduces it.
type Realization struct {
	Index  int
	Seed   uint64
	Series *Series
}

// Batch runs count independent realizations of the experiment in parallel.
// Realization i draws from a source seeded seedStart+i, where seedStart is
// the config seed or a fresh random value. The first failure cancels the
// rest and no results are returned.
func (e *Experiment) Batch(ctx context.Context, count int, logger *slog.Logger) ([]Realization, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if count < 1 {
		count = 1
	}

	seedStart := rand.Uint64()
	if e.cfg.Seed != nil {
		seedStart = *e.cfg.Seed
	}

	results := make([]Realization, count)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := 0; i < count; i++ {
		seed := seedStart + uint64(i)
		g.Go(func() error {
			logger.Debug("realization started", "system", e.cfg.System, "index", i, "seed", seed)
			series, err := e.RunWith(ctx, dynamo.NewSource(seed))
			if err != nil {
				logger.Debug("realization failed", "index", i, "error", err)
				return err
			}
			results[i] = Realization{Index: i, Seed: seed, Series: series}
			logger.Debug("realization finished", "index", i, "samples", series.Len())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
