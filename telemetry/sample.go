package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/bodylab/metrics"
	"github.com/pthm-cable/bodylab/morph"
	"github.com/pthm-cable/bodylab/params"
)

// Sample is one evaluated slider vector: raw slider values, the projected
// metrics and every morph weight.
type Sample struct {
	Index int `csv:"index"`

	// Raw slider values [0, 100]
	Gender     float64 `csv:"gender"`
	Height     float64 `csv:"height"`
	Weight     float64 `csv:"weight"`
	Muscle     float64 `csv:"muscle"`
	Proportion float64 `csv:"proportion"`
	Age        float64 `csv:"age"`

	// Projected metrics
	DisplayAge    int     `csv:"display_age"`
	DisplayHeight float64 `csv:"display_height_cm"`
	DisplayWeight float64 `csv:"display_weight_kg"`

	// Morph weights
	GenderMax          float64 `csv:"Gender_Max"`
	GenderMin          float64 `csv:"Gender_Min"`
	AgeMax             float64 `csv:"Age_Max"`
	AgeMin             float64 `csv:"Age_Min"`
	ChildWeightMax     float64 `csv:"Age_Min_Weight_Max"`
	ChildWeightMin     float64 `csv:"Age_Min_Weight_Min"`
	WeightMax          float64 `csv:"Weight_Max"`
	WeightMin          float64 `csv:"Weight_Min"`
	MuscleMax          float64 `csv:"Muscle_Max"`
	MuscleMin          float64 `csv:"Muscle_Min"`
	WeightMaxMuscleMax float64 `csv:"Weight_Max_Muscle_Max"`
	WeightMinMuscleMin float64 `csv:"Weight_Min_Muscle_Min"`
	WeightMaxMuscleMin float64 `csv:"Weight_Max_Muscle_Min"`
	WeightMinMuscleMax float64 `csv:"Weight_Min_Muscle_Max"`
	HeightMax          float64 `csv:"Height_Max"`
	HeightMin          float64 `csv:"Height_Min"`
	ProportionMax      float64 `csv:"Proportion_Max"`
	ProportionMin      float64 `csv:"Proportion_Min"`
}

// NewSample flattens one evaluation into a CSV record.
func NewSample(index int, v params.Vector, m metrics.DisplayMetrics, w morph.Weights) Sample {
	return Sample{
		Index: index,

		Gender:     v.Raw(params.Gender),
		Height:     v.Raw(params.Height),
		Weight:     v.Raw(params.Weight),
		Muscle:     v.Raw(params.Muscle),
		Proportion: v.Raw(params.Proportion),
		Age:        v.Raw(params.Age),

		DisplayAge:    m.Age,
		DisplayHeight: m.Height,
		DisplayWeight: m.Weight,

		GenderMax:          w.Get(morph.GenderMax),
		GenderMin:          w.Get(morph.GenderMin),
		AgeMax:             w.Get(morph.AgeMax),
		AgeMin:             w.Get(morph.AgeMin),
		ChildWeightMax:     w.Get(morph.ChildWeightMax),
		ChildWeightMin:     w.Get(morph.ChildWeightMin),
		WeightMax:          w.Get(morph.WeightMax),
		WeightMin:          w.Get(morph.WeightMin),
		MuscleMax:          w.Get(morph.MuscleMax),
		MuscleMin:          w.Get(morph.MuscleMin),
		WeightMaxMuscleMax: w.Get(morph.WeightMaxMuscleMax),
		WeightMinMuscleMin: w.Get(morph.WeightMinMuscleMin),
		WeightMaxMuscleMin: w.Get(morph.WeightMaxMuscleMin),
		WeightMinMuscleMax: w.Get(morph.WeightMinMuscleMax),
		HeightMax:          w.Get(morph.HeightMax),
		HeightMin:          w.Get(morph.HeightMin),
		ProportionMax:      w.Get(morph.ProportionMax),
		ProportionMin:      w.Get(morph.ProportionMin),
	}
}

// Metrics returns the display metrics stored in the sample.
func (s Sample) Metrics() metrics.DisplayMetrics {
	return metrics.DisplayMetrics{Age: s.DisplayAge, Height: s.DisplayHeight, Weight: s.DisplayWeight}
}

// LogValue implements slog.LogValuer.
func (s Sample) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("index", s.Index),
		slog.Float64("gender", s.Gender),
		slog.Float64("height", s.Height),
		slog.Float64("weight", s.Weight),
		slog.Float64("muscle", s.Muscle),
		slog.Float64("proportion", s.Proportion),
		slog.Float64("age", s.Age),
		slog.Int("display_age", s.DisplayAge),
		slog.Float64("display_height_cm", s.DisplayHeight),
		slog.Float64("display_weight_kg", s.DisplayWeight),
	)
}
