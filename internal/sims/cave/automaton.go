package cave

import (
	"fmt"

	"cavegen/internal/core"

	"golang.org/x/sync/errgroup"
)

const (
	// wallKeepThreshold is the wall-neighbor count a Wall cell needs to stay a Wall.
	wallKeepThreshold = 3
	// wallBirthThreshold is the wall-neighbor count that turns an Open cell into a Wall.
	wallBirthThreshold = 5
)

// ClampPercent limits a wall probability to [0, 100].
func ClampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Seed overwrites every cell of g with an independent draw from src. A cell
// becomes a Wall when its draw in [0,100) is below wallPercent. Cells are
// visited in row-major order so a fixed draw sequence yields a fixed grid.
func Seed(g *core.Grid, wallPercent int, src core.Source) error {
	if g == nil {
		return fmt.Errorf("seed: %w", core.ErrInvalidDimensions)
	}
	p := ClampPercent(wallPercent)
	cells := g.Cells()
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			state := core.Open
			if src.IntN(100) < p {
				state = core.Wall
			}
			cells[g.Index(x, y)] = state
		}
	}
	return nil
}

// Generate allocates a w*h grid and seeds it.
func Generate(w, h, wallPercent int, src core.Source) (*core.Grid, error) {
	g, err := core.NewGrid(w, h)
	if err != nil {
		return nil, err
	}
	if err := Seed(g, wallPercent, src); err != nil {
		return nil, err
	}
	return g, nil
}

// CountWallNeighbors counts the Wall cells in the Moore neighborhood of
// (x, y). Positions outside the grid count as walls.
func CountWallNeighbors(g *core.Grid, x, y int) int {
	cells := g.Cells()
	walls := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !g.InBounds(nx, ny) || cells[g.Index(nx, ny)] == core.Wall {
				walls++
			}
		}
	}
	return walls
}

// nextState applies the smoothing rule to a single cell.
func nextState(current core.Cell, walls int) core.Cell {
	if current == core.Wall {
		if walls >= wallKeepThreshold {
			return core.Wall
		}
		return core.Open
	}
	if walls >= wallBirthThreshold {
		return core.Wall
	}
	return core.Open
}

// Step returns the next generation of g. The input grid is left untouched.
func Step(g *core.Grid) (*core.Grid, error) {
	if g == nil {
		return nil, fmt.Errorf("step: %w", core.ErrInvalidDimensions)
	}
	next, err := core.NewGrid(g.W, g.H)
	if err != nil {
		return nil, err
	}
	stepRows(g, next, 0, g.H)
	return next, nil
}

// StepParallel computes the same generation as Step, splitting rows into
// bands that are evaluated concurrently by up to workers goroutines.
func StepParallel(g *core.Grid, workers int) (*core.Grid, error) {
	if workers <= 1 {
		return Step(g)
	}
	if g == nil {
		return nil, fmt.Errorf("step: %w", core.ErrInvalidDimensions)
	}
	next, err := core.NewGrid(g.W, g.H)
	if err != nil {
		return nil, err
	}
	if workers > g.H {
		workers = g.H
	}
	band := (g.H + workers - 1) / workers

	var eg errgroup.Group
	for y0 := 0; y0 < g.H; y0 += band {
		y1 := min(y0+band, g.H)
		eg.Go(func() error {
			stepRows(g, next, y0, y1)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return next, nil
}

// stepRows writes rows [y0, y1) of dst from src.
func stepRows(src, dst *core.Grid, y0, y1 int) {
	in := src.Cells()
	out := dst.Cells()
	for y := y0; y < y1; y++ {
		for x := 0; x < src.W; x++ {
			idx := src.Index(x, y)
			out[idx] = nextState(in[idx], CountWallNeighbors(src, x, y))
		}
	}
}
