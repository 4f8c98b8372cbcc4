package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/bodylab/config"
)

// OutputManager writes evaluation output as CSV files in one directory.
type OutputManager struct {
	dir         string
	samplesFile *os.File
	summaryFile *os.File

	// Track if headers have been written
	samplesHeaderWritten bool
	summaryHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "samples.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating samples.csv: %w", err)
	}
	om.samplesFile = f

	f, err = os.Create(filepath.Join(dir, "summary.csv"))
	if err != nil {
		om.samplesFile.Close()
		return nil, fmt.Errorf("creating summary.csv: %w", err)
	}
	om.summaryFile = f

	return om, nil
}

// WriteConfig saves the configuration used for the run as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteSamples appends sample records to samples.csv.
func (om *OutputManager) WriteSamples(samples ...Sample) error {
	if om == nil || len(samples) == 0 {
		return nil
	}

	if !om.samplesHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(samples, om.samplesFile); err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}
		om.samplesHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(samples, om.samplesFile); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}
	return nil
}

// WriteSummary appends stats records to summary.csv.
func (om *OutputManager) WriteSummary(stats ...Stats) error {
	if om == nil || len(stats) == 0 {
		return nil
	}

	if !om.summaryHeaderWritten {
		if err := gocsv.Marshal(stats, om.summaryFile); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
		om.summaryHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(stats, om.summaryFile); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.samplesFile != nil {
		if err := om.samplesFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.summaryFile != nil {
		if err := om.summaryFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// ReadSamples loads a samples.csv written by WriteSamples.
func ReadSamples(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening samples: %w", err)
	}
	defer f.Close()

	var samples []Sample
	if err := gocsv.UnmarshalFile(f, &samples); err != nil {
		return nil, fmt.Errorf("parsing samples: %w", err)
	}
	return samples, nil
}
