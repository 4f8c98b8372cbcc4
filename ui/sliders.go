package ui

import (
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bodylab/params"
	"github.com/pthm-cable/bodylab/presets"
	"github.com/pthm-cable/bodylab/session"
)

// SliderAction is a button pressed on the slider panel.
type SliderAction int

const (
	ActionNone SliderAction = iota
	ActionReset
	ActionSave
	ActionLoad
)

var sliderLabels = [params.NumKeys]string{
	params.Gender:     "Gender",
	params.Height:     "Height",
	params.Weight:     "Weight",
	params.Muscle:     "Muscle",
	params.Proportion: "Proportion",
	params.Age:        "Age",
}

// SliderPanel renders the six body sliders, the mode toggle and preset buttons.
type SliderPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewSliderPanel creates a slider panel at (x, y).
func NewSliderPanel(x, y, width int32) *SliderPanel {
	return &SliderPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Height returns the panel height.
func (p *SliderPanel) Height() int32 {
	t := p.renderer.Theme
	rows := int32(params.NumKeys)
	return t.Padding*2 + // top and bottom
		t.LineHeight + 4 + // title
		t.SliderHeight + 8 + // mode toggle
		rows*(t.LineHeight+t.SliderHeight+6) +
		30 // buttons
}

// Draw renders the panel. Slider edits are applied to s immediately; the
// returned action reports which button (if any) was pressed.
func (p *SliderPanel) Draw(s *session.Session) SliderAction {
	r := p.renderer
	t := r.Theme
	padding := t.Padding

	r.DrawPanel(p.x, p.y, p.width, p.Height())

	x := float32(p.x + padding)
	y := p.y + padding
	inner := float32(p.width - padding*2)

	rl.DrawText("Body Sliders", int32(x), y, 16, rl.White)
	y += t.LineHeight + 4

	// Mode toggle
	names := make([]string, len(presets.Modes))
	active := int32(0)
	for i, m := range presets.Modes {
		names[i] = string(m)
		if m == s.Mode() {
			active = int32(i)
		}
	}
	toggleW := inner / float32(len(names))
	sel := gui.ToggleGroup(rl.Rectangle{X: x, Y: float32(y), Width: toggleW - 2, Height: float32(t.SliderHeight)},
		strings.Join(names, ";"), active)
	if sel != active && int(sel) < len(presets.Modes) {
		s.SetMode(presets.Modes[sel])
	}
	y += t.SliderHeight + 8

	// Sliders
	for _, k := range params.Keys() {
		raw := float32(s.Raw(k))
		y = r.DrawSliderCaption(int32(x), y, sliderLabels[k], raw, int32(inner))

		next := gui.SliderBar(
			rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: float32(t.SliderHeight)},
			"", "",
			raw, params.RawMin, params.RawMax,
		)
		if next != raw {
			s.SetRaw(k, float64(next))
		}
		y += t.SliderHeight + 6
	}

	// Buttons
	bw := (inner - 20) / 3
	action := ActionNone
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: bw, Height: 24}, "Reset") {
		action = ActionReset
	}
	if gui.Button(rl.Rectangle{X: x + bw + 10, Y: float32(y), Width: bw, Height: 24}, "Save") {
		action = ActionSave
	}
	if gui.Button(rl.Rectangle{X: x + 2*(bw+10), Y: float32(y), Width: bw, Height: 24}, "Load") {
		action = ActionLoad
	}
	return action
}
