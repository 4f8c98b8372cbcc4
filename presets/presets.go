// Package presets persists named snapshots of the slider panel.
package presets

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/bodylab/params"
)

// DefaultMax is how many presets a store keeps unless configured otherwise.
const DefaultMax = 10

// Mode is the slider panel mode a preset was saved from.
type Mode string

const (
	ModeSimple   Mode = "simple"
	ModeNormal   Mode = "normal"
	ModeAdvanced Mode = "advanced"
)

// Modes lists all panel modes in display order.
var Modes = []Mode{ModeSimple, ModeNormal, ModeAdvanced}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Preset is one saved slider state. Sliders are stored in raw [0, 100] units.
type Preset struct {
	Mode    Mode            `yaml:"mode"`
	Time    time.Time       `yaml:"time"`
	Sliders []params.Slider `yaml:"sliders"`
}

// NewPreset captures v as raw slider values.
func NewPreset(mode Mode, v params.Vector, now time.Time) Preset {
	return Preset{Mode: mode, Time: now, Sliders: v.Sliders()}
}

// Vector converts the preset back to a normalized vector. Missing sliders
// fall back to the neutral midpoint.
func (p Preset) Vector() params.Vector {
	return params.FromRaw(p.Sliders)
}

// LogValue implements slog.LogValuer.
func (p Preset) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("mode", string(p.Mode)),
		slog.Time("time", p.Time),
		slog.Any("vector", p.Vector()),
	)
}

type file struct {
	Presets []Preset `yaml:"presets"`
}

// Store is a newest-first list of presets backed by a YAML file.
type Store struct {
	path    string
	max     int
	presets []Preset
}

// Open loads the store at path. A missing file yields an empty store.
func Open(path string, max int) (*Store, error) {
	if max < 1 {
		max = DefaultMax
	}
	s := &Store{path: path, max: max}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading presets: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing presets: %w", err)
	}
	for i := range f.Presets {
		// Files written before modes existed leave the field empty.
		if f.Presets[i].Mode == "" {
			f.Presets[i].Mode = ModeSimple
			continue
		}
		m, err := ParseMode(string(f.Presets[i].Mode))
		if err != nil {
			return nil, fmt.Errorf("parsing presets: preset %d: %w", i, err)
		}
		f.Presets[i].Mode = m
	}
	s.presets = f.Presets
	if len(s.presets) > max {
		s.presets = s.presets[:max]
	}
	return s, nil
}

// Add inserts p at the front, dropping the oldest preset beyond the cap.
func (s *Store) Add(p Preset) {
	s.presets = append([]Preset{p}, s.presets...)
	if len(s.presets) > s.max {
		s.presets = s.presets[:s.max]
	}
}

// List returns the presets, newest first.
func (s *Store) List() []Preset {
	out := make([]Preset, len(s.presets))
	copy(out, s.presets)
	return out
}

// Latest returns the most recently added preset.
func (s *Store) Latest() (Preset, bool) {
	if len(s.presets) == 0 {
		return Preset{}, false
	}
	return s.presets[0], true
}

// Len returns the number of stored presets.
func (s *Store) Len() int {
	return len(s.presets)
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Save writes the store to its backing file.
func (s *Store) Save() error {
	data, err := yaml.Marshal(file{Presets: s.presets})
	if err != nil {
		return fmt.Errorf("marshaling presets: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating presets directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing presets file: %w", err)
	}
	return nil
}
