package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bodylab/config"
	"github.com/pthm-cable/bodylab/morph"
	"github.com/pthm-cable/bodylab/session"
)

func sess(data any) *session.Session {
	s, _ := data.(*session.Session)
	return s
}

// base returns the neutral body the metrics are compared against.
func base(data any) config.BasePoint {
	return sess(data).Config().Anthropometry.Base
}

// offsetRange bounds the per-axis offset bars, in centimetres or kilograms.
var offsetRange = FieldRange{Min: -30, Max: 30}

// MetricsSections describes the displayed statistics and the projection stages.
func MetricsSections() []SectionDescriptor {
	return []SectionDescriptor{
		{
			ID:    "display",
			Title: "Body",
			Fields: []FieldDescriptor{
				{ID: "age", Label: "Age", Widget: WidgetMetric, Format: "%.0f yrs",
					Getter:   func(d any) float32 { return float32(sess(d).Display().Age) },
					Baseline: func(d any) float32 { return float32(base(d).Age) }},
				{ID: "height", Label: "Height", Widget: WidgetMetric, Format: "%.1f cm",
					Getter:   func(d any) float32 { return float32(sess(d).Display().Height) },
					Baseline: func(d any) float32 { return float32(base(d).Height) }},
				{ID: "weight", Label: "Weight", Widget: WidgetMetric, Format: "%.1f kg",
					Getter:   func(d any) float32 { return float32(sess(d).Display().Weight) },
					Baseline: func(d any) float32 { return float32(base(d).Weight) }},
			},
		},
		{
			ID:    "offsets",
			Title: "Adult offsets",
			Fields: []FieldDescriptor{
				{ID: "height_dh", Label: "Height cm", Widget: WidgetOffset, Range: offsetRange,
					Getter: func(d any) float32 { return float32(sess(d).Breakdown().HeightDelta.Height) }},
				{ID: "proportion_dh", Label: "Prop. cm", Widget: WidgetOffset, Range: offsetRange,
					Getter: func(d any) float32 { return float32(sess(d).Breakdown().ProportionDelta.Height) }},
				{ID: "proportion_dw", Label: "Prop. kg", Widget: WidgetOffset, Range: offsetRange,
					Getter: func(d any) float32 { return float32(sess(d).Breakdown().ProportionDelta.Weight) }},
				{ID: "gender_dh", Label: "Gender cm", Widget: WidgetOffset, Range: offsetRange,
					Getter: func(d any) float32 { return float32(sess(d).Breakdown().GenderDelta.Height) }},
				{ID: "gender_dw", Label: "Gender kg", Widget: WidgetOffset, Range: offsetRange,
					Getter: func(d any) float32 { return float32(sess(d).Breakdown().GenderDelta.Weight) }},
			},
		},
		{
			ID:    "stages",
			Title: "Projection",
			Fields: []FieldDescriptor{
				{ID: "adult_height", Label: "Adult H", Widget: WidgetMetric, Format: "%.2f cm",
					Getter:   func(d any) float32 { return float32(sess(d).Breakdown().AdultHeight) },
					Baseline: func(d any) float32 { return float32(base(d).Height) }},
				{ID: "adult_weight", Label: "Adult W", Widget: WidgetMetric, Format: "%.2f kg",
					Getter:   func(d any) float32 { return float32(sess(d).Breakdown().AdultWeight) },
					Baseline: func(d any) float32 { return float32(base(d).Weight) }},
				{ID: "grid_weight", Label: "Grid W", Widget: WidgetMetric, Format: "%.2f kg",
					Getter: func(d any) float32 { return float32(sess(d).Breakdown().GridWeight) }},
				{ID: "weight_slope", Label: "Slope", Widget: WidgetMetric, Format: "%.1f kg",
					Getter: func(d any) float32 { return float32(sess(d).Breakdown().WeightSlope) }},
				{ID: "child_height", Label: "Child H", Widget: WidgetMetric, Format: "%.2f cm",
					Visible: func(d any) bool { return sess(d).Breakdown().Child },
					Getter:  func(d any) float32 { return float32(sess(d).Breakdown().ChildHeight) }},
				{ID: "child_weight", Label: "Child W", Widget: WidgetMetric, Format: "%.2f kg",
					Visible: func(d any) bool { return sess(d).Breakdown().Child },
					Getter:  func(d any) float32 { return float32(sess(d).Breakdown().ChildWeight) }},
			},
		},
	}
}

// MorphSections describes one bar per morph target.
func MorphSections() []SectionDescriptor {
	fields := make([]FieldDescriptor, 0, morph.NumKeys)
	for _, k := range morph.Keys {
		fields = append(fields, FieldDescriptor{
			ID:     string(k),
			Label:  morphLabel(string(k)),
			Widget: WidgetMorph,
			Getter: func(d any) float32 {
				return float32(sess(d).Weights().Get(k))
			},
		})
	}
	return []SectionDescriptor{{ID: "morphs", Title: "Morph targets", Fields: fields}}
}

// InfoPanel draws a titled stack of sections sized to its content.
type InfoPanel struct {
	renderer *Renderer
	title    string
	sections []SectionDescriptor
	x, y     int32
	width    int32
}

// NewInfoPanel creates a panel at (x, y).
func NewInfoPanel(title string, sections []SectionDescriptor, x, y, width int32) *InfoPanel {
	return &InfoPanel{
		renderer: NewRenderer(),
		title:    title,
		sections: sections,
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition moves the panel.
func (p *InfoPanel) SetPosition(x, y int32) {
	p.x, p.y = x, y
}

// Height returns the panel height for data.
func (p *InfoPanel) Height(data any) int32 {
	r := p.renderer
	h := r.Theme.Padding*2 + r.Theme.LineHeight + 4
	for _, sd := range p.sections {
		h += r.SectionHeight(sd, data)
	}
	return h
}

// Draw renders the panel and returns the Y position below it.
func (p *InfoPanel) Draw(data any) int32 {
	r := p.renderer
	padding := r.Theme.Padding
	height := p.Height(data)

	r.DrawPanel(p.x, p.y, p.width, height)

	y := p.y + padding
	rl.DrawText(p.title, p.x+padding, y, 16, rl.White)
	y += r.Theme.LineHeight + 4

	for _, sd := range p.sections {
		y = r.DrawSection(p.x+padding, y, sd, data, p.width-padding*2)
	}
	return p.y + height
}
