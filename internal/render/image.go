package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"cavegen/internal/core"
)

// Image paints g with one scale*scale block per cell.
func Image(g *core.Grid, palette []color.RGBA, scale int) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	base := make([]byte, 4*g.W*g.H)
	fillPaletteRGBA(base, g.Cells(), palette)

	img := image.NewRGBA(image.Rect(0, 0, g.W*scale, g.H*scale))
	rowBytes := 4 * g.W
	for y := 0; y < g.H; y++ {
		src := base[y*rowBytes : (y+1)*rowBytes]
		for sy := 0; sy < scale; sy++ {
			dst := img.Pix[(y*scale+sy)*img.Stride:]
			for x := 0; x < g.W; x++ {
				px := src[x*4 : x*4+4]
				for sx := 0; sx < scale; sx++ {
					copy(dst[(x*scale+sx)*4:], px)
				}
			}
		}
	}
	return img
}

// WritePNG encodes g as a PNG image.
func WritePNG(w io.Writer, g *core.Grid, palette []color.RGBA, scale int) error {
	if err := png.Encode(w, Image(g, palette, scale)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
