// Package params holds the six-slider parameter vector that drives both the
// metric projection and the morph synthesis engines.
//
// Sliders live in the raw UI range [0, 100] with a neutral midpoint of 50.
// The engines only ever see the normalized form n = (raw-50)/50 in [-1, 1],
// where 0 is the anatomical base case and the sign picks the direction.
package params

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// Key identifies one of the six body sliders.
type Key int

const (
	Gender Key = iota
	Height
	Weight
	Muscle
	Proportion
	Age

	NumKeys
)

// Raw slider range.
const (
	RawMin  = 0.0
	RawBase = 50.0
	RawMax  = 100.0
)

var keyNames = [NumKeys]string{
	Gender:     "gender",
	Height:     "height",
	Weight:     "weight",
	Muscle:     "muscle",
	Proportion: "proportion",
	Age:        "age",
}

// Keys returns all slider keys in display order.
func Keys() []Key {
	return []Key{Gender, Height, Weight, Muscle, Proportion, Age}
}

func (k Key) String() string {
	if k < 0 || k >= NumKeys {
		return "Key(" + strconv.Itoa(int(k)) + ")"
	}
	return keyNames[k]
}

// ParseKey resolves a slider name (case-insensitive).
func ParseKey(s string) (Key, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range keyNames {
		if n == name {
			return Key(i), nil
		}
	}
	return 0, fmt.Errorf("unknown slider %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) {
	if k < 0 || k >= NumKeys {
		return nil, fmt.Errorf("invalid slider key %d", int(k))
	}
	return []byte(keyNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Slider is a raw UI reading for one key.
type Slider struct {
	Key   Key     `yaml:"key"`
	Value float64 `yaml:"value"`
}

// Vector is the normalized parameter vector, indexed by Key.
type Vector [NumKeys]float64

// Neutral returns the base-case vector (every slider at 50).
func Neutral() Vector {
	return Vector{}
}

// Normalize maps a raw slider value to [-1, 1]. Out-of-range input is clamped
// and NaN reads as the base value.
func Normalize(raw float64) float64 {
	if math.IsNaN(raw) {
		return 0
	}
	raw = clamp(raw, RawMin, RawMax)
	return (raw - RawBase) / RawBase
}

// Denormalize maps a normalized value back to the raw [0, 100] range.
func Denormalize(n float64) float64 {
	return RawBase + clampUnit(n)*RawBase
}

// FromRaw builds a vector from raw slider readings. Keys that are not
// present read as the base value; later duplicates win.
func FromRaw(sliders []Slider) Vector {
	var v Vector
	for _, s := range sliders {
		if s.Key < 0 || s.Key >= NumKeys {
			continue
		}
		v[s.Key] = Normalize(s.Value)
	}
	return v
}

// Get returns the normalized value for k.
func (v Vector) Get(k Key) float64 {
	return v[k]
}

// With returns a copy of v with k set to the normalized value n.
func (v Vector) With(k Key, n float64) Vector {
	v[k] = n
	return v
}

// WithRaw returns a copy of v with k set from a raw slider value.
func (v Vector) WithRaw(k Key, raw float64) Vector {
	v[k] = Normalize(raw)
	return v
}

// Raw returns the raw [0, 100] slider value for k.
func (v Vector) Raw(k Key) float64 {
	return Denormalize(v[k])
}

// Clamped returns v with every component forced into [-1, 1].
func (v Vector) Clamped() Vector {
	for i := range v {
		v[i] = clampUnit(v[i])
	}
	return v
}

// Sliders converts v back to raw slider readings in key order.
func (v Vector) Sliders() []Slider {
	out := make([]Slider, NumKeys)
	for i := range v {
		out[i] = Slider{Key: Key(i), Value: Denormalize(v[i])}
	}
	return out
}

// IsNeutral reports whether every slider sits at the base value.
func (v Vector) IsNeutral() bool {
	return v == Vector{}
}

// LogValue implements slog.LogValuer.
func (v Vector) LogValue() slog.Value {
	attrs := make([]slog.Attr, NumKeys)
	for i := range v {
		attrs[i] = slog.Float64(keyNames[i], v[i])
	}
	return slog.GroupValue(attrs...)
}

// ParseAssignments parses raw slider assignments such as
// "height=70,weight=20". An empty string yields no sliders.
func ParseAssignments(s string) ([]Slider, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []Slider
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("slider assignment %q: expected key=value", part)
		}
		k, err := ParseKey(name)
		if err != nil {
			return nil, err
		}
		raw, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("slider %s: %w", k, err)
		}
		out = append(out, Slider{Key: k, Value: raw})
	}
	return out, nil
}

func clampUnit(n float64) float64 {
	if math.IsNaN(n) {
		return 0
	}
	return clamp(n, -1, 1)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
