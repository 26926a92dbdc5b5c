package cave

import (
	"context"
	"errors"
	"testing"

	"cavegen/internal/core"
)

func TestGenerateVariantsMatchesSequential(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 30, 20
	seeds := []int64{1, 2, 3, 4, 5}

	grids, err := GenerateVariants(context.Background(), cfg, seeds, 4)
	if err != nil {
		t.Fatalf("GenerateVariants: %v", err)
	}
	if len(grids) != len(seeds) {
		t.Fatalf("expected %d grids, got %d", len(seeds), len(grids))
	}
	for i, seed := range seeds {
		g, err := Generate(cfg.Width, cfg.Height, cfg.WallPercent, core.NewRNG(seed))
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		for s := 0; s < 4; s++ {
			g, _ = Step(g)
		}
		if !grids[i].Equal(g) {
			t.Fatalf("variant %d (seed %d) differs from sequential generation", i, seed)
		}
	}
}

func TestGenerateVariantsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := GenerateVariants(ctx, DefaultConfig(), []int64{1, 2}, 3)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGenerateVariantsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Height = 0
	if _, err := GenerateVariants(context.Background(), cfg, []int64{1}, 1); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions, got %v", err)
	}
}
