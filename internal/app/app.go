//go:build ebiten

package app

import (
	"image/color"
	"time"

	"cavegen/internal/core"
	"cavegen/internal/render"
	"cavegen/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

type stabilityReporter interface {
	Stable() bool
}

var defaultPalette = []color.RGBA{
	{R: 255, G: 255, B: 255, A: 255},
	{R: 0, G: 0, B: 0, A: 255},
}

// Game adapts a core simulation to the ebiten.Game interface. Generations
// advance on demand or, while playing, at the timer's rate until the sim
// reports it has stopped changing.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	palette []color.RGBA
	timer   *core.FixedStep

	scale    int
	hudWidth int
	playing  bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	palette := defaultPalette
	if p, ok := sim.(paletteProvider); ok {
		palette = p.Palette()
	}
	return &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H),
		hud:      ui.NewHUD(sim, cfg.HUDWidth),
		overlay:  ui.NewOverlay(sim, cfg.Scale),
		palette:  palette,
		timer:    core.NewFixedStep(cfg.StepRate),
		scale:    cfg.Scale,
		hudWidth: cfg.HUDWidth,
		seed:     cfg.Seed,
	}
}

// Reset reseeds the simulation and pauses autoplay.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.setPlaying(false)
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	action := ui.ActionNone
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		action = ui.ActionTogglePlay
	case inpututil.IsKeyJustPressed(ebiten.KeyN), inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		action = ui.ActionStep
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		action = ui.ActionReset
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		action = ui.ActionNewSeed
	}
	if a := g.hud.Update(g.viewWidth()); a != ui.ActionNone {
		action = a
	}
	g.overlay.Update()
	g.apply(action)

	if g.playing && g.timer.ShouldStep() {
		g.sim.Step()
		if s, ok := g.sim.(stabilityReporter); ok && s.Stable() {
			g.setPlaying(false)
		}
	}
	return nil
}

func (g *Game) apply(a ui.Action) {
	switch a {
	case ui.ActionStep:
		g.setPlaying(false)
		g.sim.Step()
	case ui.ActionReset:
		g.Reset(g.seed)
	case ui.ActionNewSeed:
		g.Reset(time.Now().UnixNano())
	case ui.ActionTogglePlay:
		g.setPlaying(!g.playing)
	}
}

func (g *Game) setPlaying(playing bool) {
	if playing && !g.playing {
		g.timer.Restart()
	}
	g.playing = playing
	g.hud.SetPlaying(playing)
}

// Draw renders the cave, the debug overlays and the HUD panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.viewWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.viewWidth() + g.hudWidth, g.sim.Size().H * g.scale
}

func (g *Game) viewWidth() int {
	return g.sim.Size().W * g.scale
}
