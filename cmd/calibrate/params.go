package main

import (
	"github.com/pthm-cable/bodylab/config"
)

// ParamSpec defines a single fitted constant.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all fitted constants.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of fitted constants.
// The grid centre is not fitted: it is the subtraction anchor, so moving it
// would shift every other cell instead.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Height-dependent weight slope
			{Name: "weight_slope_min", Path: "anthropometry.weight_slope.min", Min: 0, Max: 40, Default: 0},
			{Name: "weight_slope_base", Path: "anthropometry.weight_slope.base", Min: 0, Max: 60, Default: 23},
			{Name: "weight_slope_max", Path: "anthropometry.weight_slope.max", Min: 20, Max: 140, Default: 70},
			// Weight x muscle grid corners and edges
			{Name: "grid_w0_m0", Path: "anthropometry.grid[0][0]", Min: 20, Max: 60, Default: 35.24},
			{Name: "grid_w0_m1", Path: "anthropometry.grid[0][1]", Min: 30, Max: 60, Default: 46.31},
			{Name: "grid_w0_m2", Path: "anthropometry.grid[0][2]", Min: 30, Max: 70, Default: 45.16},
			{Name: "grid_w1_m0", Path: "anthropometry.grid[1][0]", Min: 40, Max: 70, Default: 55.09},
			{Name: "grid_w1_m2", Path: "anthropometry.grid[1][2]", Min: 40, Max: 70, Default: 50.07},
			{Name: "grid_w2_m0", Path: "anthropometry.grid[2][0]", Min: 80, Max: 160, Default: 122.0},
			{Name: "grid_w2_m1", Path: "anthropometry.grid[2][1]", Min: 45, Max: 100, Default: 56.77},
			{Name: "grid_w2_m2", Path: "anthropometry.grid[2][2]", Min: 55, Max: 110, Default: 73.26},
			// Child carry-over of adult deltas
			{Name: "child_height_carry_height", Path: "anthropometry.child.height_carry.height", Min: 0, Max: 1, Default: 0.266},
			{Name: "child_height_carry_proportion", Path: "anthropometry.child.height_carry.proportion", Min: 0, Max: 1, Default: 0.16},
			{Name: "child_weight_carry_height", Path: "anthropometry.child.weight_carry.height", Min: 0, Max: 1, Default: 0.05},
			{Name: "child_weight_carry_proportion", Path: "anthropometry.child.weight_carry.proportion", Min: 0, Max: 1, Default: 0.03},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// The config must own its grid (see config.Clone).
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	a := &cfg.Anthropometry

	// Order must match Specs order
	i := 0
	next := func() float64 {
		v := clamped[i]
		i++
		return v
	}

	a.WeightSlope.Min = next()
	a.WeightSlope.Base = next()
	a.WeightSlope.Max = next()

	a.Grid[0][0] = next()
	a.Grid[0][1] = next()
	a.Grid[0][2] = next()
	a.Grid[1][0] = next()
	a.Grid[1][2] = next()
	a.Grid[2][0] = next()
	a.Grid[2][1] = next()
	a.Grid[2][2] = next()

	a.Child.HeightCarry.Height = next()
	a.Child.HeightCarry.Proportion = next()
	a.Child.WeightCarry.Height = next()
	a.Child.WeightCarry.Proportion = next()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	a := &cfg.Anthropometry
	return []float64{
		a.WeightSlope.Min,
		a.WeightSlope.Base,
		a.WeightSlope.Max,
		a.Grid[0][0],
		a.Grid[0][1],
		a.Grid[0][2],
		a.Grid[1][0],
		a.Grid[1][2],
		a.Grid[2][0],
		a.Grid[2][1],
		a.Grid[2][2],
		a.Child.HeightCarry.Height,
		a.Child.HeightCarry.Proportion,
		a.Child.WeightCarry.Height,
		a.Child.WeightCarry.Proportion,
	}
}
