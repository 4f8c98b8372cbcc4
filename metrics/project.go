// Package metrics projects the slider vector onto human-readable body
// statistics: displayed age, height (cm) and weight (kg).
//
// Projection runs in stages. Height, proportion and gender each contribute an
// independent (height, weight) delta; weight and muscle jointly index a 3x3
// grid of absolute weights; the sum forms the adult figure, which the age
// slider then blends towards a juvenile anchor (below the midpoint) or ages
// (above it). The functions here are pure and safe for concurrent use.
package metrics

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/pthm-cable/bodylab/config"
	"github.com/pthm-cable/bodylab/params"
)

// DisplayMetrics is the rounded result shown to the user.
type DisplayMetrics struct {
	Age    int     `csv:"age" json:"age"`
	Height float64 `csv:"height_cm" json:"height"` // one decimal
	Weight float64 `csv:"weight_kg" json:"weight"` // one decimal
}

func (m DisplayMetrics) String() string {
	return fmt.Sprintf("%d yrs · %.1f cm · %.1f kg", m.Age, m.Height, m.Weight)
}

// LogValue implements slog.LogValuer.
func (m DisplayMetrics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("age", m.Age),
		slog.Float64("height", m.Height),
		slog.Float64("weight", m.Weight),
	)
}

// Breakdown holds every unrounded stage of a projection.
type Breakdown struct {
	// Adult deltas from the base point
	HeightDelta     config.Offset
	ProportionDelta config.Offset
	GenderDelta     config.Offset
	WeightSlope     float64 // kg per unit of above-base height at the current weight
	GridWeight      float64 // absolute weight read from the weight x muscle grid

	AdultHeight float64
	AdultWeight float64

	// Juvenile anchor; only set when Child is true
	Child       bool
	ChildHeight float64
	ChildWeight float64

	Age    float64
	Height float64
	Weight float64
}

// Round converts the breakdown to display precision.
func (b Breakdown) Round() DisplayMetrics {
	return DisplayMetrics{
		Age:    int(math.Round(b.Age)),
		Height: round1(b.Height),
		Weight: round1(b.Weight),
	}
}

// Project maps a parameter vector to display metrics.
func Project(v params.Vector, a *config.Anthropometry) DisplayMetrics {
	return Estimate(v, a).Round()
}

// Estimate runs the projection and returns all intermediate stages.
// Components outside [-1, 1] are clamped.
func Estimate(v params.Vector, a *config.Anthropometry) Breakdown {
	v = v.Clamped()
	nHeight := v.Get(params.Height)
	nWeight := v.Get(params.Weight)

	var b Breakdown

	b.HeightDelta = axisOffset(nHeight, a.Height)
	if nHeight >= 0 {
		// Tall and heavy gains far more mass than tall and lean.
		b.WeightSlope = rampAt(a.WeightSlope, nWeight)
		b.HeightDelta.Weight = b.WeightSlope * nHeight
	}
	b.ProportionDelta = axisOffset(v.Get(params.Proportion), a.Proportion)
	b.GenderDelta = axisOffset(v.Get(params.Gender), a.Gender)
	b.GridWeight = gridWeight(a.Grid, a.GridEaseExponent, nWeight, v.Get(params.Muscle))

	b.AdultHeight = a.Base.Height + b.HeightDelta.Height + b.ProportionDelta.Height + b.GenderDelta.Height
	b.AdultWeight = a.Base.Weight + b.HeightDelta.Weight + b.ProportionDelta.Weight + b.GenderDelta.Weight +
		(b.GridWeight - a.Derived.GridBase)

	nAge := v.Get(params.Age)
	if nAge < 0 {
		blendChild(&b, a, nAge+1, nWeight)
	} else {
		blendElder(&b, a, nAge)
	}

	return b
}

// blendChild interpolates from the juvenile anchor (t=0) to the adult (t=1).
func blendChild(b *Breakdown, a *config.Anthropometry, t, nWeight float64) {
	c := a.Child

	// Child weight follows its own weight-slider range.
	var weightOffset float64
	if nWeight < 0 {
		weightOffset = (c.WeightAtMin - c.Weight) * -nWeight
	} else {
		weightOffset = (c.WeightAtMax - c.Weight) * nWeight
	}

	// Children keep a small share of the adult height/proportion deltas.
	b.Child = true
	b.ChildHeight = c.Height +
		b.HeightDelta.Height*c.HeightCarry.Height +
		b.ProportionDelta.Height*c.HeightCarry.Proportion
	b.ChildWeight = math.Max(c.WeightFloor, c.Weight+weightOffset+
		b.HeightDelta.Weight*c.WeightCarry.Height+
		b.ProportionDelta.Weight*c.WeightCarry.Proportion)

	b.Height = lerp(b.ChildHeight, b.AdultHeight, t)
	// Mass scales faster than stature during growth.
	b.Weight = lerp(b.ChildWeight, b.AdultWeight, math.Pow(t, c.WeightBlendExponent))
	b.Age = lerp(c.Age, a.Base.Age, t)
}

// blendElder ages the adult. Weight is left unchanged past the midpoint until
// reference data for elderly mass exists.
func blendElder(b *Breakdown, a *config.Anthropometry, t float64) {
	b.Age = lerp(a.Base.Age, a.Elder.Age, t)
	b.Height = b.AdultHeight - a.Elder.HeightLoss*t
	b.Weight = b.AdultWeight
}
