// Package main sweeps body sliders and exports the metrics and morph weights
// as CSV, either along one slider or over a random crowd.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bodylab/components"
	"github.com/pthm-cable/bodylab/config"
	"github.com/pthm-cable/bodylab/crowd"
	"github.com/pthm-cable/bodylab/metrics"
	"github.com/pthm-cable/bodylab/morph"
	"github.com/pthm-cable/bodylab/params"
	"github.com/pthm-cable/bodylab/telemetry"
)

// options holds the command line settings.
type options struct {
	ConfigPath string
	Sliders    string
	Slider     string
	Steps      int
	Crowd      int
	Seed       int64
	OutputDir  string
}

// useConfigSeed selects the seed from the config file.
const useConfigSeed = -1

func main() {
	// CLI flags
	var opts options
	flag.StringVar(&opts.ConfigPath, "config", "", "Path to config.yaml (empty = use defaults)")
	flag.StringVar(&opts.Sliders, "sliders", "", "Fixed raw slider values, e.g. gender=0,age=30")
	flag.StringVar(&opts.Slider, "slider", "height", "Slider to sweep across [0, 100]")
	flag.IntVar(&opts.Steps, "steps", 0, "Number of sweep steps (0 = use config)")
	flag.IntVar(&opts.Crowd, "crowd", 0, "Evaluate a random crowd of N avatars instead of a sweep")
	flag.Int64Var(&opts.Seed, "seed", useConfigSeed, "Crowd RNG seed (-1 = use config)")
	flag.StringVar(&opts.OutputDir, "output-dir", "", "Output directory for CSV files and config snapshot")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(opts); err != nil {
		slog.Error("sweep failed", "error", err)
		os.Exit(1)
	}
}

// run executes one sweep or crowd evaluation. Output files are closed before
// it returns, including on error.
func run(opts options) (err error) {
	if err := config.Init(opts.ConfigPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	fixed, err := params.ParseAssignments(opts.Sliders)
	if err != nil {
		return fmt.Errorf("invalid -sliders: %w", err)
	}
	base := params.FromRaw(fixed)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		if cerr := om.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output: %w", cerr)
		}
	}()
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	if opts.Crowd > 0 {
		return runCrowd(cfg, om, opts.Crowd, crowdSeed(opts.Seed, cfg))
	}

	key, err := params.ParseKey(opts.Slider)
	if err != nil {
		return fmt.Errorf("invalid -slider: %w", err)
	}
	n := opts.Steps
	if n == 0 {
		n = cfg.Sweep.Steps
	}

	samples := Sweep(cfg, base, key, n)
	if err := om.WriteSamples(samples...); err != nil {
		return err
	}
	if err := om.WriteSummary(summarize(samples)...); err != nil {
		return err
	}

	first, last := samples[0], samples[len(samples)-1]
	slog.Info("sweep complete",
		"slider", key.String(),
		"steps", len(samples),
		"from", first.Metrics(),
		"to", last.Metrics(),
		"output", om.Dir(),
	)
	return nil
}

// crowdSeed resolves the -seed flag. Any value other than useConfigSeed,
// including 0, is used as given.
func crowdSeed(flagSeed int64, cfg *config.Config) int64 {
	if flagSeed == useConfigSeed {
		return cfg.Crowd.Seed
	}
	return flagSeed
}

// Sweep evaluates base with slider key moved evenly across [0, 100].
// steps below 2 are raised to 2.
func Sweep(cfg *config.Config, base params.Vector, key params.Key, steps int) []telemetry.Sample {
	if steps < 2 {
		steps = 2
	}
	out := make([]telemetry.Sample, steps)
	for i := range out {
		raw := params.RawMin + (params.RawMax-params.RawMin)*float64(i)/float64(steps-1)
		v := base.WithRaw(key, raw)
		out[i] = telemetry.NewSample(i, v,
			metrics.Project(v, &cfg.Anthropometry),
			morph.Synthesize(v, &cfg.Morph))
	}
	return out
}

// summarize computes distribution stats of the displayed metrics.
func summarize(samples []telemetry.Sample) []telemetry.Stats {
	ages := make([]float64, len(samples))
	heights := make([]float64, len(samples))
	weights := make([]float64, len(samples))
	for i, s := range samples {
		ages[i] = float64(s.DisplayAge)
		heights[i] = s.DisplayHeight
		weights[i] = s.DisplayWeight
	}
	return []telemetry.Stats{
		telemetry.ComputeStats("age", ages),
		telemetry.ComputeStats("height_cm", heights),
		telemetry.ComputeStats("weight_kg", weights),
	}
}

// runCrowd evaluates a random crowd and writes every avatar plus the summary.
func runCrowd(cfg *config.Config, om *telemetry.OutputManager, size int, seed int64) error {
	c := crowd.New(cfg)
	c.SpawnRandom(size, rand.New(rand.NewSource(seed)))
	c.Update()

	samples := make([]telemetry.Sample, 0, c.Len())
	c.Each(func(_ ecs.Entity, a *components.Avatar, s *components.Sliders, m *components.Metrics, w *components.Morphs) {
		samples = append(samples, telemetry.NewSample(int(a.ID), s.Vector, m.Display, w.Weights))
	})
	if err := om.WriteSamples(samples...); err != nil {
		return err
	}

	summary := c.Summary()
	if err := om.WriteSummary(summary.Stats()...); err != nil {
		return err
	}

	slog.Info("crowd complete", "seed", seed, "summary", summary, "output", om.Dir())
	return nil
}
