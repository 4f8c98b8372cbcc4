// Package components defines ECS components for avatar crowds.
package components

import (
	"github.com/pthm-cable/bodylab/metrics"
	"github.com/pthm-cable/bodylab/morph"
	"github.com/pthm-cable/bodylab/params"
)

// Avatar identifies an entity across its lifetime.
type Avatar struct {
	ID uint32
}

// Sliders holds the normalized slider vector driving an avatar.
// Dirty is set whenever Vector changes and cleared after recompute.
type Sliders struct {
	Vector params.Vector
	Dirty  bool
}

// Metrics caches the last projection of Sliders.
type Metrics struct {
	Breakdown metrics.Breakdown
	Display   metrics.DisplayMetrics
}

// Morphs caches the last synthesized morph weights.
type Morphs struct {
	Weights morph.Weights
	Dense   [morph.NumKeys]float64
}
