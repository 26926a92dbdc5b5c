package cave

import (
	"errors"
	"testing"

	"cavegen/internal/core"
)

type scriptedSource struct {
	draws []int
	pos   int
}

func (s *scriptedSource) IntN(n int) int {
	v := s.draws[s.pos%len(s.draws)]
	s.pos++
	return v
}

// constSource always draws the same value.
type constSource int

func (c constSource) IntN(int) int { return int(c) }

func gridFrom(t *testing.T, rows ...string) *core.Grid {
	t.Helper()
	g, err := core.NewGrid(len(rows[0]), len(rows))
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	for y, row := range rows {
		for x, ch := range row {
			state := core.Open
			if ch == '#' {
				state = core.Wall
			}
			if err := g.Set(x, y, state); err != nil {
				t.Fatalf("Set(%d,%d): %v", x, y, err)
			}
		}
	}
	return g
}

func mustGet(t *testing.T, g *core.Grid, x, y int) core.Cell {
	t.Helper()
	c, err := g.Get(x, y)
	if err != nil {
		t.Fatalf("Get(%d,%d): %v", x, y, err)
	}
	return c
}

func TestSeedRowMajorOrder(t *testing.T) {
	g, _ := core.NewGrid(3, 2)
	src := &scriptedSource{draws: []int{0, 99, 0, 99, 99, 0}}
	if err := Seed(g, 50, src); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	want := gridFrom(t, "#.#", "..#")
	if !g.Equal(want) {
		t.Fatalf("seeded grid %v, want %v", g.Cells(), want.Cells())
	}
	if src.pos != 6 {
		t.Fatalf("expected one draw per cell (6), got %d", src.pos)
	}
}

func TestSeedThresholdIsStrict(t *testing.T) {
	g, _ := core.NewGrid(4, 4)
	if err := Seed(g, 45, constSource(45)); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if n := g.Count(core.Wall); n != 0 {
		t.Fatalf("draw equal to percent must be open, got %d walls", n)
	}
	if err := Seed(g, 45, constSource(44)); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if n := g.Count(core.Wall); n != 16 {
		t.Fatalf("draw below percent must be wall, got %d walls", n)
	}
}

func TestSeedExtremesAndClamping(t *testing.T) {
	cases := []struct {
		percent int
		want    core.Cell
	}{
		{0, core.Open},
		{-20, core.Open},
		{100, core.Wall},
		{250, core.Wall},
	}
	for _, tc := range cases {
		g, err := Generate(8, 6, tc.percent, core.NewRNG(7))
		if err != nil {
			t.Fatalf("Generate(%d): %v", tc.percent, err)
		}
		if n := g.Count(tc.want); n != 48 {
			t.Fatalf("percent %d: expected all %v, got %d of 48", tc.percent, tc.want, n)
		}
	}
}

func TestSeedDeterministic(t *testing.T) {
	a, err := Generate(32, 24, 45, core.NewRNG(99))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// Unrelated work in between must not influence the result.
	if _, err := Generate(5, 5, 80, core.NewRNG(3)); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(32, 24, 45, core.NewRNG(99))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !a.Equal(b) {
		t.Fatal("same seed produced different grids")
	}
}

func TestSeedOverwritesEveryCell(t *testing.T) {
	g, _ := core.NewGrid(5, 5)
	g.Fill(core.Wall)
	if err := Seed(g, 0, core.NewRNG(1)); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if n := g.Count(core.Open); n != 25 {
		t.Fatalf("expected reset to all open, got %d open", n)
	}
}

func TestSeedNilGrid(t *testing.T) {
	if err := Seed(nil, 50, constSource(0)); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions, got %v", err)
	}
}

func TestGenerateInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, -1}} {
		if _, err := Generate(dims[0], dims[1], 50, constSource(0)); !errors.Is(err, core.ErrInvalidDimensions) {
			t.Fatalf("Generate(%d,%d): expected ErrInvalidDimensions, got %v", dims[0], dims[1], err)
		}
	}
}

func TestCountWallNeighborsBoundaryAsWall(t *testing.T) {
	g := gridFrom(t, "...", "...", "...")
	if n := CountWallNeighbors(g, 1, 1); n != 0 {
		t.Fatalf("center of open 3x3: got %d, want 0", n)
	}
	for _, corner := range [][2]int{{0, 0}, {2, 0}, {0, 2}, {2, 2}} {
		if n := CountWallNeighbors(g, corner[0], corner[1]); n != 5 {
			t.Fatalf("corner %v of open 3x3: got %d, want 5", corner, n)
		}
	}
	if n := CountWallNeighbors(g, 1, 0); n != 3 {
		t.Fatalf("edge of open 3x3: got %d, want 3", n)
	}
}

func TestCountWallNeighborsExcludesCenter(t *testing.T) {
	g := gridFrom(t, "...", ".#.", "...")
	if n := CountWallNeighbors(g, 1, 1); n != 0 {
		t.Fatalf("center wall must not count itself, got %d", n)
	}
	g = gridFrom(t, "###", "#.#", "###")
	if n := CountWallNeighbors(g, 1, 1); n != 8 {
		t.Fatalf("ring of walls: got %d, want 8", n)
	}
}

func TestStepThresholds(t *testing.T) {
	cases := []struct {
		name string
		rows []string
		want core.Cell
	}{
		{"wall with 3 wall neighbors stays", []string{"###", ".#.", "..."}, core.Wall},
		{"wall with 2 wall neighbors opens", []string{"##.", ".#.", "..."}, core.Open},
		{"open with 5 wall neighbors walls", []string{"###", "#.#", "..."}, core.Wall},
		{"open with 4 wall neighbors stays", []string{"###", "#..", "..."}, core.Open},
	}
	for _, tc := range cases {
		g := gridFrom(t, tc.rows...)
		next, err := Step(g)
		if err != nil {
			t.Fatalf("%s: Step: %v", tc.name, err)
		}
		if got := mustGet(t, next, 1, 1); got != tc.want {
			t.Fatalf("%s: center became %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestStepPreservesDimensionsAndInput(t *testing.T) {
	g, err := Generate(17, 9, 45, core.NewRNG(5))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	before := g.Clone()
	next, err := Step(g)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if next.W != g.W || next.H != g.H {
		t.Fatalf("step changed size to %dx%d", next.W, next.H)
	}
	if next == g {
		t.Fatal("step must return a new grid")
	}
	if !g.Equal(before) {
		t.Fatal("step mutated its input")
	}
}

func TestStepReadsOnlyPreviousGeneration(t *testing.T) {
	g := gridFrom(t,
		"###",
		"#.#",
		"#.#",
		"...",
	)
	next, err := Step(g)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := mustGet(t, next, 1, 1); got != core.Wall {
		t.Fatalf("(1,1) has 7 wall neighbors and must close, got %v", got)
	}
	// (1,2) sees 4 walls in the previous generation. Counting the freshly
	// closed (1,1) would push it to 5.
	if got := mustGet(t, next, 1, 2); got != core.Open {
		t.Fatalf("(1,2) must be computed from the previous generation, got %v", got)
	}
}

func TestAllWallStaysWall(t *testing.T) {
	g, err := Generate(5, 5, 100, core.NewRNG(1))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := 0; i < 10; i++ {
		if g, err = Step(g); err != nil {
			t.Fatalf("Step: %v", err)
		}
		if n := g.Count(core.Wall); n != 25 {
			t.Fatalf("step %d: expected 25 walls, got %d", i+1, n)
		}
	}
}

func TestAllOpenErodesCorners(t *testing.T) {
	g, err := Generate(5, 5, 0, core.NewRNG(1))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := gridFrom(t,
		"#...#",
		".....",
		".....",
		".....",
		"#...#",
	)
	for i := 0; i < 5; i++ {
		if g, err = Step(g); err != nil {
			t.Fatalf("Step: %v", err)
		}
		if !g.Equal(want) {
			t.Fatalf("step %d: got %v, want corners only", i+1, g.Cells())
		}
	}
}

func TestStepNilGrid(t *testing.T) {
	if _, err := Step(nil); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions, got %v", err)
	}
	if _, err := StepParallel(nil, 4); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions, got %v", err)
	}
}

func TestStepParallelMatchesStep(t *testing.T) {
	g, err := Generate(41, 23, 45, core.NewRNG(2024))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want, err := Step(g)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	for _, workers := range []int{0, 1, 2, 3, 7, 23, 64} {
		got, err := StepParallel(g, workers)
		if err != nil {
			t.Fatalf("StepParallel(%d): %v", workers, err)
		}
		if !got.Equal(want) {
			t.Fatalf("StepParallel(%d) diverged from Step", workers)
		}
	}
}

func TestClampPercent(t *testing.T) {
	for in, want := range map[int]int{-5: 0, 0: 0, 45: 45, 100: 100, 101: 100} {
		if got := ClampPercent(in); got != want {
			t.Fatalf("ClampPercent(%d) = %d, want %d", in, got, want)
		}
	}
}
