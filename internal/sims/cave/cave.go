package cave

import (
	"cavegen/internal/core"
)

// Cave runs the smoothing automaton over a single current grid. Each Step
// swaps in a freshly built generation, so grids handed out by Grid stay
// valid snapshots.
type Cave struct {
	cfg Config

	grid *core.Grid
	prev *core.Grid

	seed       int64
	generation int
	display    []uint8
}

// New returns a cave of the given size using the default parameters.
func New(w, h int) (*Cave, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig builds a cave and seeds it with cfg.Seed.
func NewWithConfig(cfg Config) (*Cave, error) {
	cfg.WallPercent = ClampPercent(cfg.WallPercent)
	g, err := core.NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	c := &Cave{
		cfg:     cfg,
		grid:    g,
		display: make([]uint8, cfg.Width*cfg.Height),
	}
	c.Reset(0)
	return c, nil
}

// Name returns the simulation identifier.
func (c *Cave) Name() string { return "cave" }

// Size reports the grid dimensions.
func (c *Cave) Size() core.Size { return core.Size{W: c.grid.W, H: c.grid.H} }

// Cells exposes the display buffer: 1 for walls, 0 for open cells.
func (c *Cave) Cells() []uint8 { return c.display }

// Grid returns the current generation. Callers must treat it as read-only.
func (c *Cave) Grid() *core.Grid { return c.grid }

// Generation counts steps since the last reset.
func (c *Cave) Generation() int { return c.generation }

// Seed reports the seed used by the last reset.
func (c *Cave) Seed() int64 { return c.seed }

// Config returns the active configuration.
func (c *Cave) Config() Config { return c.cfg }

// Reset reseeds the grid. A zero seed falls back to the configured seed.
func (c *Cave) Reset(seed int64) {
	if seed == 0 {
		seed = c.cfg.Seed
	}
	c.seed = seed
	g, err := Generate(c.cfg.Width, c.cfg.Height, c.cfg.WallPercent, core.NewRNG(seed))
	if err != nil {
		return
	}
	c.grid = g
	c.prev = nil
	c.generation = 0
	c.rebuildDisplay()
}

// Step advances the cave by one smoothing iteration.
func (c *Cave) Step() {
	next, err := StepParallel(c.grid, c.cfg.Workers)
	if err != nil {
		return
	}
	c.prev = c.grid
	c.grid = next
	c.generation++
	c.rebuildDisplay()
}

// Stable reports whether the last step left the grid unchanged.
func (c *Cave) Stable() bool {
	return c.prev != nil && c.prev.Equal(c.grid)
}

// WallRatio returns the fraction of cells that are walls.
func (c *Cave) WallRatio() float64 {
	total := c.grid.W * c.grid.H
	if total == 0 {
		return 0
	}
	return float64(c.grid.Count(core.Wall)) / float64(total)
}

// WallNeighborCounts returns CountWallNeighbors for every cell in row-major order.
func (c *Cave) WallNeighborCounts() []uint8 {
	g := c.grid
	counts := make([]uint8, g.W*g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			counts[g.Index(x, y)] = uint8(CountWallNeighbors(g, x, y))
		}
	}
	return counts
}

// Changed marks the cells that flipped during the last step. It is nil
// right after a reset.
func (c *Cave) Changed() []bool {
	if c.prev == nil {
		return nil
	}
	prev, cur := c.prev.Cells(), c.grid.Cells()
	changed := make([]bool, len(cur))
	for i := range cur {
		changed[i] = prev[i] != cur[i]
	}
	return changed
}

func (c *Cave) rebuildDisplay() {
	for i, v := range c.grid.Cells() {
		c.display[i] = uint8(v)
	}
}

func init() {
	core.Register("cave", func(cfg map[string]string) core.Sim {
		c, err := NewWithConfig(FromMap(cfg))
		if err != nil {
			return nil
		}
		return c
	})
}
