package cave

import (
	"context"
	"runtime"

	"cavegen/internal/core"

	"golang.org/x/sync/errgroup"
)

// GenerateVariants builds one cave per seed, each smoothed for steps
// iterations, using cfg for size and wall percentage. Caves are generated
// concurrently and share no state; results are returned in seed order.
func GenerateVariants(ctx context.Context, cfg Config, seeds []int64, steps int) ([]*core.Grid, error) {
	out := make([]*core.Grid, len(seeds))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, seed := range seeds {
		eg.Go(func() error {
			g, err := Generate(cfg.Width, cfg.Height, cfg.WallPercent, core.NewRNG(seed))
			if err != nil {
				return err
			}
			for s := 0; s < steps; s++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if g, err = Step(g); err != nil {
					return err
				}
			}
			out[i] = g
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
