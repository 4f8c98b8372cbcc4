package ui

import (
	"fmt"
	"math"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bodylab/params"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawSliderCaption draws the line above a body slider: the name on the
// left, then the raw reading and the normalized value the engines see.
func (r *Renderer) DrawSliderCaption(x, y int32, label string, raw float32, width int32) int32 {
	t := r.Theme
	rl.DrawText(label, x, y, t.FontSize, t.LabelColor)

	n := float32(params.Normalize(float64(raw)))
	norm := fmt.Sprintf("%+.2f", n)
	nw := rl.MeasureText(norm, t.FontSize)
	rl.DrawText(norm, x+width-nw, y, t.FontSize, r.signColor(n))
	rl.DrawText(fmt.Sprintf("%.0f", raw), x+width-nw-40, y, t.FontSize, t.ValueColor)

	return y + t.LineHeight
}

// DrawMetric draws a measured value and, when a baseline is known, how far
// it sits from it.
func (r *Renderer) DrawMetric(x, y int32, label, value string, change float32, hasBaseline bool) int32 {
	t := r.Theme
	rl.DrawText(label+":", x, y, t.FontSize, t.LabelColor)
	rl.DrawText(value, x+t.LabelWidth, y, t.FontSize, t.ValueColor)

	if hasBaseline && math.Abs(float64(change)) >= 0.05 {
		vw := rl.MeasureText(value, t.FontSize)
		rl.DrawText(fmt.Sprintf("(%+.1f)", change), x+t.LabelWidth+vw+6, y, t.FontSize, r.signColor(change))
	}
	return y + t.LineHeight
}

// DrawOffset draws a signed bar centred on zero. Each side is scaled to its
// own end of rng, so asymmetric offsets still fill their half.
func (r *Renderer) DrawOffset(x, y int32, label string, value float32, rng FieldRange, width int32) int32 {
	t := r.Theme
	barX := x + t.LabelWidth
	barWidth := width - t.LabelWidth - 50

	rl.DrawText(label+":", x, y, t.FontSize, t.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, t.BarHeight, t.BarBg)

	centerX := barX + barWidth/2
	rl.DrawLine(centerX, y+2, centerX, y+2+t.BarHeight, t.RulerColor)

	fillWidth := int32(float32(barWidth/2) * offsetFraction(value, rng))
	fillX := centerX
	if value < 0 {
		fillX = centerX - fillWidth
	}
	rl.DrawRectangle(fillX, y+2, fillWidth, t.BarHeight, r.signColor(value))

	rl.DrawText(fmt.Sprintf("%+.1f", value), barX+barWidth+5, y, t.FontSize, t.ValueColor)

	return y + t.LineHeight + 2
}

// DrawMorph draws one morph target weight. Targets at zero are dimmed so the
// active set stands out.
func (r *Renderer) DrawMorph(x, y int32, key, label string, weight float32, width int32) int32 {
	t := r.Theme
	weight = clampUnit(weight)
	barX := x + t.LabelWidth
	barWidth := width - t.LabelWidth - 40

	labelColor := t.LabelColor
	if weight == 0 {
		labelColor = t.InactiveColor
	}
	rl.DrawText(label, x, y, t.FontSize, labelColor)
	rl.DrawRectangle(barX, y+2, barWidth, t.BarHeight, t.BarBg)

	if weight > 0 {
		fill := t.BarFill
		switch morphPolarity(key) {
		case 1:
			fill = t.BarFillPositive
		case -1:
			fill = t.BarFillNegative
		}
		rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*weight), t.BarHeight, fill)
		rl.DrawText(fmt.Sprintf("%.2f", weight), barX+barWidth+5, y, t.FontSize, t.ValueColor)
	}

	return y + t.LineHeight + 2
}

// DrawField renders a field based on its descriptor.
func (r *Renderer) DrawField(x, y int32, fd FieldDescriptor, data any, width int32) int32 {
	value := float32(0)
	if fd.Getter != nil {
		value = fd.Getter(data)
	}

	switch fd.Widget {
	case WidgetMetric:
		var change float32
		if fd.Baseline != nil {
			change = value - fd.Baseline(data)
		}
		return r.DrawMetric(x, y, fd.Label, fmt.Sprintf(fd.Format, value), change, fd.Baseline != nil)

	case WidgetOffset:
		return r.DrawOffset(x, y, fd.Label, value, fd.Range, width)

	case WidgetMorph:
		return r.DrawMorph(x, y, fd.ID, fd.Label, value, width)
	}

	return y
}

// DrawSection renders a section with header and fields.
func (r *Renderer) DrawSection(x, y int32, sd SectionDescriptor, data any, width int32) int32 {
	if sd.Visible != nil && !sd.Visible(data) {
		return y
	}

	if sd.Title != "" {
		y = r.DrawSectionHeader(x, y, sd.Title)
	}
	for _, fd := range sd.Fields {
		if fd.Visible != nil && !fd.Visible(data) {
			continue
		}
		y = r.DrawField(x, y, fd, data, width)
	}

	return y + 4
}

// FieldHeight returns the vertical space DrawField uses for fd.
func (r *Renderer) FieldHeight(fd FieldDescriptor) int32 {
	switch fd.Widget {
	case WidgetOffset, WidgetMorph:
		return r.Theme.LineHeight + 2
	case WidgetMetric:
		return r.Theme.LineHeight
	}
	return 0
}

// SectionHeight returns the vertical space DrawSection uses for sd.
func (r *Renderer) SectionHeight(sd SectionDescriptor, data any) int32 {
	if sd.Visible != nil && !sd.Visible(data) {
		return 0
	}
	var h int32
	if sd.Title != "" {
		h += r.Theme.LineHeight
	}
	for _, fd := range sd.Fields {
		if fd.Visible != nil && !fd.Visible(data) {
			continue
		}
		h += r.FieldHeight(fd)
	}
	return h + 4
}

func (r *Renderer) signColor(v float32) rl.Color {
	switch {
	case v > 0:
		return r.Theme.BarFillPositive
	case v < 0:
		return r.Theme.BarFillNegative
	}
	return r.Theme.ValueColor
}

// offsetFraction is the share of half the bar that value fills.
func offsetFraction(value float32, rng FieldRange) float32 {
	extent := rng.Max
	if value < 0 {
		extent = -rng.Min
	}
	if extent <= 0 {
		return 0
	}
	return clampUnit(float32(math.Abs(float64(value / extent))))
}

// morphPolarity reports which end of its slider a morph target belongs to:
// +1 for targets whose last axis is at its maximum, -1 for the minimum.
func morphPolarity(key string) int {
	switch {
	case strings.HasSuffix(key, "_Max"):
		return 1
	case strings.HasSuffix(key, "_Min"):
		return -1
	}
	return 0
}

// morphLabel shortens a morph key for display, e.g. "Weight_Max_Muscle_Min"
// becomes "Weight+ Muscle-".
func morphLabel(key string) string {
	parts := strings.Split(key, "_")
	var b strings.Builder
	for i := 0; i < len(parts); i++ {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(parts[i])
		if i+1 < len(parts) {
			switch parts[i+1] {
			case "Max":
				b.WriteByte('+')
				i++
			case "Min":
				b.WriteByte('-')
				i++
			}
		}
	}
	return b.String()
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
