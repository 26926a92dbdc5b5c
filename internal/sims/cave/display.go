package cave

import (
	"image/color"

	"cavegen/internal/core"
)

var cavePalette = []color.RGBA{
	core.Open: {R: 232, G: 228, B: 218, A: 255},
	core.Wall: {R: 24, G: 22, B: 28, A: 255},
}

// DisplayPalette maps cell states to colors: dark walls on a light floor.
func DisplayPalette() []color.RGBA { return cavePalette }

// Palette maps display values (see Cells) to colors.
func (c *Cave) Palette() []color.RGBA { return cavePalette }
