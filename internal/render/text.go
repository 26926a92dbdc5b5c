package render

import (
	"bufio"
	"io"

	"cavegen/internal/core"
)

const (
	wallGlyph = '#'
	openGlyph = '.'
)

// Lines renders each grid row as a string, '#' for walls and '.' for open cells.
func Lines(g *core.Grid) []string {
	lines := make([]string, g.H)
	row := make([]byte, g.W)
	cells := g.Cells()
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			row[x] = openGlyph
			if cells[g.Index(x, y)] == core.Wall {
				row[x] = wallGlyph
			}
		}
		lines[y] = string(row)
	}
	return lines
}

// WriteText writes the rows returned by Lines, newline terminated.
func WriteText(w io.Writer, g *core.Grid) error {
	bw := bufio.NewWriter(w)
	for _, line := range Lines(g) {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
