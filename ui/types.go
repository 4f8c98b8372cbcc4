// Package ui provides a descriptor-driven UI for the body preview.
// Panels are described by field metadata so the metrics and morph readouts
// can change alongside the engines without touching layout code.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetMetric WidgetType = iota // Value with unit and change from a baseline
	WidgetOffset                   // Signed bar centred on zero
	WidgetMorph                    // Morph target weight [0, 1]
)

// FieldRange defines the value range for offset bars.
type FieldRange struct {
	Min float32
	Max float32
}

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID       string            // Unique identifier; morph fields use the morph key
	Label    string            // Display label
	Widget   WidgetType        // How to render
	Format   string            // Printf format for the value, unit included
	Range    FieldRange        // Value range for offset bars
	Visible  func(any) bool    // Optional visibility check (nil = always visible)
	Getter   func(any) float32 // Value extractor
	Baseline func(any) float32 // Optional; metrics show their change from it
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string            // Unique identifier
	Title   string            // Section header text
	Fields  []FieldDescriptor // Fields in this section
	Visible func(any) bool    // Optional visibility check for entire section
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg         rl.Color
	PanelBorder     rl.Color
	SectionHeader   rl.Color
	LabelColor      rl.Color
	ValueColor      rl.Color
	BarBg           rl.Color
	BarFill         rl.Color
	BarFillNegative rl.Color
	BarFillPositive rl.Color
	FigureFill      rl.Color
	FigureOutline   rl.Color
	RulerColor      rl.Color
	InactiveColor   rl.Color
	Padding         int32
	LineHeight      int32
	LabelWidth      int32
	BarHeight       int32
	SliderHeight    int32
	FontSize        int32
	HeaderFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:         rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:     rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:   rl.Yellow,
		LabelColor:      rl.LightGray,
		ValueColor:      rl.LightGray,
		BarBg:           rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:         rl.Color{R: 100, G: 150, B: 200, A: 255},
		BarFillNegative: rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillPositive: rl.Color{R: 100, G: 200, B: 100, A: 255},
		FigureFill:      rl.Color{R: 180, G: 160, B: 140, A: 255},
		FigureOutline:   rl.Color{R: 90, G: 80, B: 70, A: 255},
		RulerColor:      rl.Color{R: 80, G: 90, B: 100, A: 255},
		InactiveColor:   rl.Color{R: 90, G: 90, B: 90, A: 255},
		Padding:         10,
		LineHeight:      16,
		LabelWidth:      90,
		BarHeight:       12,
		SliderHeight:    20,
		FontSize:        12,
		HeaderFontSize:  14,
	}
}
