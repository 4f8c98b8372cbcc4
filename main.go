package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bodylab/config"
	"github.com/pthm-cable/bodylab/params"
	"github.com/pthm-cable/bodylab/presets"
	"github.com/pthm-cable/bodylab/session"
	"github.com/pthm-cable/bodylab/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	sliders := flag.String("sliders", "", "Initial raw slider values, e.g. height=70,age=20")
	headless := flag.Bool("headless", false, "Compute once and log the result without opening a window")
	presetsPath := flag.String("presets", "", "Preset file (empty = use config)")
	loadLatest := flag.Bool("load-latest", false, "Start from the newest saved preset")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	path := cfg.Presets.Path
	if *presetsPath != "" {
		path = *presetsPath
	}
	store, err := presets.Open(path, cfg.Presets.Max)
	if err != nil {
		slog.Error("failed to open presets", "path", path, "error", err)
		os.Exit(1)
	}

	initial, err := params.ParseAssignments(*sliders)
	if err != nil {
		slog.Error("invalid -sliders", "error", err)
		os.Exit(1)
	}

	s := session.New(cfg, store)
	if *loadLatest && !s.LoadLatest() {
		slog.Warn("no saved presets", "path", path)
	}
	if len(initial) > 0 {
		v := s.Vector()
		for _, sl := range initial {
			v = v.WithRaw(sl.Key, sl.Value)
		}
		s.Set(v)
	}

	if *headless {
		// Headless mode - no raylib needed
		b := s.Breakdown()
		slog.Info("body",
			"sliders", s.Vector(),
			"metrics", s.Display(),
			"adult_height", b.AdultHeight,
			"adult_weight", b.AdultWeight,
			"child", b.Child,
		)
		slog.Info("morphs", "weights", s.Weights(), "active", len(s.Weights().Active()))
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Viewer.Width), int32(cfg.Viewer.Height), "Body Lab")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Viewer.TargetFPS))

	viewer.New(s, cfg.Viewer).Run()
}
