package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats holds distribution statistics for one quantity.
type Stats struct {
	Name  string  `csv:"metric"`
	Count int     `csv:"count"`
	Mean  float64 `csv:"mean"`
	Std   float64 `csv:"std"`
	Min   float64 `csv:"min"`
	P10   float64 `csv:"p10"`
	P50   float64 `csv:"p50"`
	P90   float64 `csv:"p90"`
	Max   float64 `csv:"max"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeStats calculates population mean/std, extremes and percentiles.
// An empty slice yields zero stats with the given name.
func ComputeStats(name string, values []float64) Stats {
	s := Stats{Name: name, Count: len(values)}
	if len(values) == 0 {
		return s
	}

	s.Mean, s.Std = stat.PopMeanStdDev(values, nil)
	s.Min = floats.Min(values)
	s.Max = floats.Max(values)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s.P10 = Percentile(sorted, 0.10)
	s.P50 = Percentile(sorted, 0.50)
	s.P90 = Percentile(sorted, 0.90)

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("metric", s.Name),
		slog.Int("count", s.Count),
		slog.Float64("mean", s.Mean),
		slog.Float64("std", s.Std),
		slog.Float64("min", s.Min),
		slog.Float64("p10", s.P10),
		slog.Float64("p50", s.P50),
		slog.Float64("p90", s.P90),
		slog.Float64("max", s.Max),
	)
}
