// Package config provides configuration loading and access for the body engines and tools.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Anthropometry Anthropometry `yaml:"anthropometry"`
	Morph         Morph         `yaml:"morph"`
	Viewer        ViewerConfig  `yaml:"viewer"`
	Presets       PresetsConfig `yaml:"presets"`
	Sweep         SweepConfig   `yaml:"sweep"`
	Crowd         CrowdConfig   `yaml:"crowd"`
}

// Anthropometry holds the reference data for metric projection.
// All heights are in cm and all weights in kg.
type Anthropometry struct {
	Base             BasePoint   `yaml:"base"`
	Height           OffsetRange `yaml:"height"`
	Gender           OffsetRange `yaml:"gender"`
	Proportion       OffsetRange `yaml:"proportion"`
	WeightSlope      Ramp        `yaml:"weight_slope"`
	Grid             [][]float64 `yaml:"grid"`               // [weight row][muscle column]
	GridEaseExponent float64     `yaml:"grid_ease_exponent"` // applied above base weight
	Child            ChildConfig `yaml:"child"`
	Elder            ElderConfig `yaml:"elder"`

	// Derived values computed after loading
	Derived AnthropometryDerived `yaml:"-"`
}

// BasePoint is the neutral adult.
type BasePoint struct {
	Age    float64 `yaml:"age"`
	Height float64 `yaml:"height"`
	Weight float64 `yaml:"weight"`
}

// Offset is a (height, weight) delta from base.
type Offset struct {
	Height float64 `yaml:"height"`
	Weight float64 `yaml:"weight"`
}

// OffsetRange holds the deltas reached at slider 0 (Min) and slider 100 (Max).
type OffsetRange struct {
	Min Offset `yaml:"min"`
	Max Offset `yaml:"max"`
}

// Ramp is a two-segment linear ramp over a slider: Min at 0, Base at 50, Max at 100.
type Ramp struct {
	Min  float64 `yaml:"min"`
	Base float64 `yaml:"base"`
	Max  float64 `yaml:"max"`
}

// Carry holds the fraction of the adult height/proportion deltas kept by a child.
type Carry struct {
	Height     float64 `yaml:"height"`
	Proportion float64 `yaml:"proportion"`
}

// ChildConfig holds the juvenile anchor used below the age midpoint.
type ChildConfig struct {
	Age                 float64 `yaml:"age"`
	Height              float64 `yaml:"height"`
	Weight              float64 `yaml:"weight"`
	WeightAtMin         float64 `yaml:"weight_at_min"` // child weight with weight slider at 0
	WeightAtMax         float64 `yaml:"weight_at_max"` // child weight with weight slider at 100
	WeightFloor         float64 `yaml:"weight_floor"`
	HeightCarry         Carry   `yaml:"height_carry"`
	WeightCarry         Carry   `yaml:"weight_carry"`
	WeightBlendExponent float64 `yaml:"weight_blend_exponent"`
}

// ElderConfig holds the aging branch above the age midpoint.
// Weight is deliberately not modelled past the midpoint yet.
type ElderConfig struct {
	Age        float64 `yaml:"age"`
	HeightLoss float64 `yaml:"height_loss"`
}

// AnthropometryDerived holds values computed from the loaded tables.
type AnthropometryDerived struct {
	GridBase float64 // grid centre, subtracted to turn the grid into a delta
}

// Morph holds child suppression coefficients for morph synthesis.
type Morph struct {
	HeightSuppression     float64 `yaml:"height_suppression"`
	ProportionSuppression float64 `yaml:"proportion_suppression"`
}

// ViewerConfig holds preview window settings.
type ViewerConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	TargetFPS  int `yaml:"target_fps"`
	PanelWidth int `yaml:"panel_width"`
}

// PresetsConfig holds preset storage settings.
type PresetsConfig struct {
	Path string `yaml:"path"`
	Max  int    `yaml:"max"`
}

// SweepConfig holds slider sweep settings.
type SweepConfig struct {
	Steps int `yaml:"steps"`
}

// CrowdConfig holds random crowd settings.
type CrowdConfig struct {
	Size int   `yaml:"size"`
	Seed int64 `yaml:"seed"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks the tables for shapes and values the engines rely on.
func (c *Config) Validate() error {
	a := &c.Anthropometry
	var errs []error

	if len(a.Grid) != 3 {
		errs = append(errs, fmt.Errorf("anthropometry.grid: want 3 rows, got %d", len(a.Grid)))
	}
	for i, row := range a.Grid {
		if len(row) != 3 {
			errs = append(errs, fmt.Errorf("anthropometry.grid[%d]: want 3 columns, got %d", i, len(row)))
		}
	}
	if a.GridEaseExponent <= 0 {
		errs = append(errs, errors.New("anthropometry.grid_ease_exponent must be positive"))
	}
	if a.Child.WeightBlendExponent <= 0 {
		errs = append(errs, errors.New("anthropometry.child.weight_blend_exponent must be positive"))
	}
	if a.Child.WeightFloor < 0 {
		errs = append(errs, errors.New("anthropometry.child.weight_floor must not be negative"))
	}
	if a.Base.Height <= 0 || a.Base.Weight <= 0 {
		errs = append(errs, errors.New("anthropometry.base height and weight must be positive"))
	}
	if c.Morph.HeightSuppression < 0 || c.Morph.HeightSuppression > 1 {
		errs = append(errs, errors.New("morph.height_suppression must be in [0, 1]"))
	}
	if c.Morph.ProportionSuppression < 0 || c.Morph.ProportionSuppression > 1 {
		errs = append(errs, errors.New("morph.proportion_suppression must be in [0, 1]"))
	}
	if c.Presets.Max < 1 {
		errs = append(errs, errors.New("presets.max must be at least 1"))
	}

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Anthropometry.Derived.GridBase = c.Anthropometry.Grid[1][1]
}

// Clone returns a deep copy, so tools can mutate tables without touching the global config.
func (c *Config) Clone() *Config {
	out := *c
	out.Anthropometry.Grid = make([][]float64, len(c.Anthropometry.Grid))
	for i, row := range c.Anthropometry.Grid {
		out.Anthropometry.Grid[i] = append([]float64(nil), row...)
	}
	return &out
}

// Refresh revalidates and recomputes derived values after a caller edited the tables.
func (c *Config) Refresh() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
