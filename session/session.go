// Package session holds the interactive slider state shared by the preview
// window and headless runs.
//
// Every change recomputes both engines from the full vector; nothing is
// cached between edits besides the last result.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/bodylab/config"
	"github.com/pthm-cable/bodylab/metrics"
	"github.com/pthm-cable/bodylab/morph"
	"github.com/pthm-cable/bodylab/params"
	"github.com/pthm-cable/bodylab/presets"
)

// ErrNoStore is returned by preset operations when no store is attached.
var ErrNoStore = errors.New("no preset store")

// Session is the current slider vector and its derived outputs.
type Session struct {
	cfg   *config.Config
	store *presets.Store

	vector params.Vector
	mode   presets.Mode

	breakdown metrics.Breakdown
	display   metrics.DisplayMetrics
	weights   morph.Weights

	revision int
}

// New creates a session at the neutral vector. store may be nil.
func New(cfg *config.Config, store *presets.Store) *Session {
	s := &Session{cfg: cfg, store: store, mode: presets.ModeSimple}
	s.recompute()
	return s
}

func (s *Session) recompute() {
	s.breakdown = metrics.Estimate(s.vector, &s.cfg.Anthropometry)
	s.display = s.breakdown.Round()
	s.weights = morph.Synthesize(s.vector, &s.cfg.Morph)
	s.revision++
}

// Set replaces the whole vector. Components are clamped to [-1, 1].
func (s *Session) Set(v params.Vector) {
	s.vector = v.Clamped()
	s.recompute()
}

// SetRaw moves one slider to a raw [0, 100] value and reports whether the
// vector changed.
func (s *Session) SetRaw(k params.Key, raw float64) bool {
	next := s.vector.WithRaw(k, raw)
	if next == s.vector {
		return false
	}
	s.Set(next)
	return true
}

// Reset moves every slider back to 50.
func (s *Session) Reset() {
	s.Set(params.Neutral())
}

// SetMode switches the panel mode.
func (s *Session) SetMode(m presets.Mode) {
	s.mode = m
}

// SavePreset stores the current sliders as the newest preset and writes the store.
func (s *Session) SavePreset(now time.Time) (presets.Preset, error) {
	if s.store == nil {
		return presets.Preset{}, ErrNoStore
	}
	p := presets.NewPreset(s.mode, s.vector, now)
	s.store.Add(p)
	if err := s.store.Save(); err != nil {
		return p, fmt.Errorf("saving preset: %w", err)
	}
	return p, nil
}

// LoadLatest applies the newest stored preset. It reports false when there
// is nothing to load.
func (s *Session) LoadLatest() bool {
	if s.store == nil {
		return false
	}
	p, ok := s.store.Latest()
	if !ok {
		return false
	}
	if p.Mode != "" {
		s.mode = p.Mode
	}
	s.Set(p.Vector())
	return true
}

// Presets returns the stored presets, newest first.
func (s *Session) Presets() []presets.Preset {
	if s.store == nil {
		return nil
	}
	return s.store.List()
}

func (s *Session) Config() *config.Config { return s.cfg }
func (s *Session) Vector() params.Vector { return s.vector }
func (s *Session) Raw(k params.Key) float64 { return s.vector.Raw(k) }
func (s *Session) Mode() presets.Mode { return s.mode }
func (s *Session) Breakdown() metrics.Breakdown { return s.breakdown }
func (s *Session) Display() metrics.DisplayMetrics { return s.display }
func (s *Session) Weights() morph.Weights { return s.weights }
func (s *Session) Revision() int { return s.revision }

// LogValue implements slog.LogValuer.
func (s *Session) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("mode", string(s.mode)),
		slog.Any("sliders", s.vector),
		slog.Any("metrics", s.display),
		slog.Any("morphs", s.weights),
	)
}
