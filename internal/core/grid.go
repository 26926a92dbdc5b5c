package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is returned when a grid is requested with a
	// non-positive width or height.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrOutOfBounds is returned by the coordinate accessors for positions
	// outside the grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
)

// Cell is the state of a single grid position.
type Cell uint8

const (
	// Open marks a traversable cell.
	Open Cell = iota
	// Wall marks a blocking cell.
	Wall
)

func (c Cell) String() string {
	switch c {
	case Open:
		return "open"
	case Wall:
		return "wall"
	default:
		return fmt.Sprintf("cell(%d)", uint8(c))
	}
}

// Grid stores a 2D grid of cells in row-major order.
type Grid struct {
	W, H int
	data []Cell
}

// NewGrid allocates a grid with the given dimensions. Every cell starts Open;
// callers are expected to seed it before reading.
func NewGrid(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	return &Grid{W: w, H: h, data: make([]Cell, w*h)}, nil
}

// Cells exposes the backing slice so callers can read values directly.
func (g *Grid) Cells() []Cell { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) addresses a stored cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Get returns the state at (x, y).
func (g *Grid) Get(x, y int) (Cell, error) {
	if !g.InBounds(x, y) {
		return Open, g.boundsError(x, y)
	}
	return g.data[g.Index(x, y)], nil
}

// Set stores state at (x, y).
func (g *Grid) Set(x, y int, c Cell) error {
	if !g.InBounds(x, y) {
		return g.boundsError(x, y)
	}
	g.data[g.Index(x, y)] = c
	return nil
}

func (g *Grid) boundsError(x, y int) error {
	return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, g.W, g.H)
}

// Fill sets every cell to c.
func (g *Grid) Fill(c Cell) {
	for i := range g.data {
		g.data[i] = c
	}
}

// Count returns how many cells hold state c.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, v := range g.data {
		if v == c {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	data := make([]Cell, len(g.data))
	copy(data, g.data)
	return &Grid{W: g.W, H: g.H, data: data}
}

// Equal reports whether both grids have the same dimensions and contents.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.W != o.W || g.H != o.H {
		return false
	}
	for i, v := range g.data {
		if o.data[i] != v {
			return false
		}
	}
	return true
}
