package crowd

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bodylab/components"
	"github.com/pthm-cable/bodylab/telemetry"
)

// Summary aggregates the displayed metrics of a crowd.
type Summary struct {
	Avatars  int
	Children int // avatars below the age midpoint
	Dirty    int // avatars whose cached metrics are stale

	Age    telemetry.Stats
	Height telemetry.Stats
	Weight telemetry.Stats
}

// Summary computes distribution statistics over cached (unrounded) metrics.
// Call Update first; dirty avatars are counted but still included.
func (c *Crowd) Summary() Summary {
	s := Summary{}
	ages := make([]float64, 0, c.count)
	heights := make([]float64, 0, c.count)
	weights := make([]float64, 0, c.count)

	c.Each(func(_ ecs.Entity, _ *components.Avatar, sl *components.Sliders, m *components.Metrics, _ *components.Morphs) {
		s.Avatars++
		if sl.Dirty {
			s.Dirty++
		}
		if m.Breakdown.Child {
			s.Children++
		}
		ages = append(ages, m.Breakdown.Age)
		heights = append(heights, m.Breakdown.Height)
		weights = append(weights, m.Breakdown.Weight)
	})

	s.Age = telemetry.ComputeStats("age", ages)
	s.Height = telemetry.ComputeStats("height_cm", heights)
	s.Weight = telemetry.ComputeStats("weight_kg", weights)
	return s
}

// Stats returns the per-metric rows for summary.csv.
func (s Summary) Stats() []telemetry.Stats {
	return []telemetry.Stats{s.Age, s.Height, s.Weight}
}

// LogValue implements slog.LogValuer.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("avatars", s.Avatars),
		slog.Int("children", s.Children),
		slog.Int("dirty", s.Dirty),
		slog.Any("age", s.Age),
		slog.Any("height", s.Height),
		slog.Any("weight", s.Weight),
	)
}
