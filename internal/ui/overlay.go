//go:build ebiten

package ui

import (
	"cavegen/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type neighborCountProvider interface {
	WallNeighborCounts() []uint8
}

type changeProvider interface {
	Changed() []bool
}

// Overlay draws optional debugging visuals on top of the cave.
type Overlay struct {
	sim         core.Sim
	scale       int
	showCounts  bool
	showChanges bool

	img *ebiten.Image
	buf []byte
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	return &Overlay{sim: sim, scale: scale}
}

// Update toggles layers: 1 wall-neighbor heatmap, 2 cells changed by the last step.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showCounts = !o.showCounts
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showChanges = !o.showChanges
	}
}

// Draw renders the enabled layers onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.showCounts && !o.showChanges {
		return
	}
	size := o.sim.Size()
	total := size.W * size.H
	if total == 0 {
		return
	}
	if o.img == nil || o.img.Bounds().Dx() != size.W || o.img.Bounds().Dy() != size.H {
		o.img = ebiten.NewImage(size.W, size.H)
		o.buf = make([]byte, 4*total)
	}

	if o.showCounts {
		if p, ok := o.sim.(neighborCountProvider); ok {
			if counts := p.WallNeighborCounts(); len(counts) == total {
				fillCountRGBA(o.buf, counts)
				o.blit(screen)
			}
		}
	}
	if o.showChanges {
		if p, ok := o.sim.(changeProvider); ok {
			if changed := p.Changed(); len(changed) == total {
				fillChangeRGBA(o.buf, changed)
				o.blit(screen)
			}
		}
	}
}

func (o *Overlay) blit(screen *ebiten.Image) {
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	o.img.WritePixels(o.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.img, op)
}
