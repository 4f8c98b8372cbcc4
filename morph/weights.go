package morph

import (
	"log/slog"
)

// Weights maps morph targets to influences in [0, 1]. Absent keys are zero.
type Weights map[Key]float64

// Get returns the weight for k, or 0 if it was not assigned.
func (w Weights) Get(k Key) float64 {
	return w[k]
}

// Dense returns all 18 weights in Keys order, zero-filling absent keys.
func (w Weights) Dense() [NumKeys]float64 {
	var out [NumKeys]float64
	for i, k := range Keys {
		out[i] = w[k]
	}
	return out
}

// Total returns the sum of all weights.
func (w Weights) Total() float64 {
	var sum float64
	for _, v := range w {
		sum += v
	}
	return sum
}

// Active returns the keys with a non-zero weight, in Keys order.
func (w Weights) Active() []Key {
	var out []Key
	for _, k := range Keys {
		if w[k] != 0 {
			out = append(out, k)
		}
	}
	return out
}

// LogValue implements slog.LogValuer. Only non-zero weights are logged.
func (w Weights) LogValue() slog.Value {
	active := w.Active()
	attrs := make([]slog.Attr, 0, len(active))
	for _, k := range active {
		attrs = append(attrs, slog.Float64(string(k), w[k]))
	}
	return slog.GroupValue(attrs...)
}
