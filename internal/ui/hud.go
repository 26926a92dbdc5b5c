//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"cavegen/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var (
	panelColor = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	textColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

// HUD renders the run panel to the right of the cave view: run info, the
// adjustable parameters and the step/reset/play buttons.
type HUD struct {
	sim      core.Sim
	width    int
	panel    *ebiten.Image
	pixel    *ebiten.Image
	snapshot core.ParameterSnapshot

	controls  []controlState
	buttons   []button
	setter    core.IntParameterSetter
	offsetX   int
	playing   bool
	infoLines int
}

type controlState struct {
	control  core.ParameterControl
	value    int
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

type button struct {
	action Action
	rect   image.Rectangle
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, infoLines: 4}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			h.controls = append(h.controls, controlState{control: ctrl})
		}
	}
	if setter, ok := sim.(core.IntParameterSetter); ok {
		h.setter = setter
	}
	h.layout()
	return h
}

// SetPlaying updates the label of the play button.
func (h *HUD) SetPlaying(playing bool) {
	if h == nil {
		return
	}
	h.playing = playing
}

// Update refreshes the parameter snapshot and returns the action requested by
// a click on one of the panel buttons, if any.
func (h *HUD) Update(panelOffsetX int) Action {
	if h == nil {
		return ActionNone
	}
	h.offsetX = panelOffsetX
	if provider, ok := h.sim.(core.ParameterProvider); ok {
		h.snapshot = provider.Parameters()
	} else {
		h.snapshot = core.ParameterSnapshot{}
	}
	h.refreshControls()

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return ActionNone
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.offsetX {
		return ActionNone
	}
	px := mx - h.offsetX
	for i := range h.controls {
		state := &h.controls[i]
		switch {
		case pointInRect(px, my, state.minusRect):
			h.adjust(state, -1)
			return ActionNone
		case pointInRect(px, my, state.plusRect):
			h.adjust(state, 1)
			return ActionNone
		}
	}
	for _, b := range h.buttons {
		if pointInRect(px, my, b.rect) {
			return b.action
		}
	}
	return ActionNone
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, "Cave", face, panelPadding, y, titleColor)
	for _, line := range h.infoText() {
		y += infoSpacing
		text.Draw(h.panel, line, face, panelPadding, y, dimColor)
	}

	for i := range h.controls {
		state := &h.controls[i]
		text.Draw(h.panel, state.control.Label, face, panelPadding, state.top+labelBaseline, textColor)
		value := "--"
		if state.hasValue {
			value = strconv.Itoa(state.value)
		}
		width := text.BoundString(face, value).Dx()
		text.Draw(h.panel, value, face, state.minusRect.Min.X-buttonGap-width, state.top+labelBaseline, textColor)
		h.drawButton(state.minusRect, "-", h.canAdjust(state, -1))
		h.drawButton(state.plusRect, "+", h.canAdjust(state, 1))
	}
	for _, b := range h.buttons {
		h.drawButton(b.rect, h.buttonLabel(b.action), true)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) infoText() []string {
	lines := make([]string, 0, h.infoLines)
	for _, key := range []string{"generation", "walls", "seed", "stable"} {
		p, ok := h.snapshot.Lookup(key)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", p.Label, p.Value))
	}
	return lines
}

func (h *HUD) refreshControls() {
	for i := range h.controls {
		state := &h.controls[i]
		state.hasValue = false
		p, ok := h.snapshot.Lookup(state.control.Key)
		if !ok || p.Type != core.ParamTypeInt {
			continue
		}
		v, err := strconv.Atoi(p.Value)
		if err != nil {
			continue
		}
		state.value = v
		state.hasValue = true
	}
}

func (h *HUD) adjust(state *controlState, direction int) {
	if !h.canAdjust(state, direction) {
		return
	}
	target := state.control.Clamp(state.value + direction*state.step())
	if h.setter.SetIntParameter(state.control.Key, target) {
		state.value = target
	}
}

func (h *HUD) canAdjust(state *controlState, direction int) bool {
	if h.setter == nil || !state.hasValue {
		return false
	}
	target := state.value + direction*state.step()
	if direction < 0 {
		return target >= state.control.Min
	}
	return target <= state.control.Max
}

func (s *controlState) step() int {
	if s.control.Step <= 0 {
		return 1
	}
	return s.control.Step
}

func (h *HUD) buttonLabel(a Action) string {
	switch a {
	case ActionStep:
		return "Step"
	case ActionReset:
		return "Reset"
	case ActionNewSeed:
		return "New seed"
	case ActionTogglePlay:
		if h.playing {
			return "Pause"
		}
		return "Play"
	default:
		return ""
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layout() {
	if h.width <= 0 {
		return
	}
	top := panelPadding + headerBaseline + h.infoLines*infoSpacing + sectionGap
	for i := range h.controls {
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minus
		h.controls[i].plusRect = plus
		top += lineHeight
	}
	top += sectionGap
	for _, a := range []Action{ActionStep, ActionReset, ActionNewSeed, ActionTogglePlay} {
		h.buttons = append(h.buttons, button{
			action: a,
			rect:   image.Rect(panelPadding, top, h.width-panelPadding, top+buttonSize),
		})
		top += buttonSize + buttonGap
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 18
	sectionGap     = 14
)
