// Package main fits the anthropometric tables to the reference measurements
// with gonum's derivative-free optimizers.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/bodylab/config"
	"github.com/pthm-cable/bodylab/reference"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Millisecond)
	if d < time.Second {
		return d.String()
	}
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// newMethod returns the optimizer for name.
func newMethod(name string, dim, population int) (optimize.Method, error) {
	switch name {
	case "nelder-mead":
		return &optimize.NelderMead{}, nil
	case "cmaes":
		if population == 0 {
			population = 4 + int(3.0*float64(dim)/2.0)
		}
		return &optimize.CmaEsChol{InitStepSize: 0.1, Population: population}, nil
	}
	return nil, fmt.Errorf("unknown method %q (want nelder-mead or cmaes)", name)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	referencePath := flag.String("reference", "", "Reference CSV (empty = embedded table)")
	methodName := flag.String("method", "nelder-mead", "Optimizer: nelder-mead or cmaes")
	maxEvals := flag.Int("max-evals", 2000, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	quiet := flag.Bool("quiet", false, "Only print the summary")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}

	// Create output directory
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Load base config
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	records, err := reference.Load(*referencePath)
	if err != nil {
		log.Fatalf("failed to load reference table: %v", err)
	}

	// Create parameter vector and evaluator
	params := NewParamVector()
	evaluator := NewFitnessEvaluator(params, records, baseCfg)

	dim := params.Dim()
	startX := params.ExtractFromConfig(baseCfg)
	initX := params.Normalize(startX)
	startFitness := evaluator.Evaluate(startX)
	startReport := evaluator.LastReport()

	method, err := newMethod(*methodName, dim, *population)
	if err != nil {
		log.Fatal(err)
	}

	// Optimization runs in normalized space
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return evaluator.Evaluate(params.Denormalize(x))
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation
	}

	// Open log file
	logPath := filepath.Join(*outputDir, "calibrate_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	// Write header
	header := []string{"eval", "fitness", "height_rmse", "weight_rmse"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	logWriter.Write(header)

	// Track evaluations and timing
	evalCount := 0
	startTime := time.Now()

	// Wrap the function to log evaluations
	originalFunc := problem.Func
	problem.Func = func(x []float64) float64 {
		fitness := originalFunc(x)
		evalCount++

		// Denormalize and clamp to get actual parameter values
		clamped := params.Clamp(params.Denormalize(x))

		report := evaluator.LastReport()
		row := []string{
			strconv.Itoa(evalCount),
			fmt.Sprintf("%.6f", fitness),
			fmt.Sprintf("%.6f", report.HeightRMSE),
			fmt.Sprintf("%.6f", report.WeightRMSE),
		}
		for _, v := range clamped {
			row = append(row, fmt.Sprintf("%.6f", v))
		}
		logWriter.Write(row)

		if !*quiet && evalCount%100 == 0 {
			logWriter.Flush()
			_, bestFitness := evaluator.Best()
			fmt.Printf("Eval %d/%d: loss=%.4f (best=%.4f) | elapsed: %s\n",
				evalCount, *maxEvals, fitness, bestFitness, formatDuration(time.Since(startTime)))
		}

		return fitness
	}

	fmt.Printf("Starting %s calibration with %d parameters against %d reference records, max_evals=%d\n",
		*methodName, dim, len(records), *maxEvals)
	fmt.Printf("Initial loss: %.4f (height rmse %.3f cm, weight rmse %.3f kg)\n",
		startFitness, startReport.HeightRMSE, startReport.WeightRMSE)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if result != nil {
		log.Printf("optimizer status: %v", result.Status)
	}
	bestParams, _ := evaluator.Best()
	if bestParams == nil {
		log.Fatal("no evaluation produced a valid config")
	}

	totalTime := time.Since(startTime)
	fmt.Printf("\nCalibration complete after %d evaluations in %s\n", evalCount, formatDuration(totalTime))

	// Print best parameters
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %-32s %10.4f  (was %.4f)\n", spec.Path, bestParams[i], startX[i])
	}

	// Save best config
	bestCfg := baseCfg.Clone()
	params.ApplyToConfig(bestCfg, bestParams)
	if err := bestCfg.Refresh(); err != nil {
		log.Fatalf("best parameters produce an invalid config: %v", err)
	}

	best := reference.Evaluate(records, &bestCfg.Anthropometry)
	fmt.Printf("\nBest loss: %.4f (height rmse %.3f cm, weight rmse %.3f kg)\n",
		best.Loss(), best.HeightRMSE, best.WeightRMSE)
	if worst, ok := best.Worst(); ok {
		fmt.Printf("Worst record: %s (height %+.2f cm, weight %+.2f kg)\n", worst.Label, worst.Height, worst.Weight)
	}

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}

	// Save residuals of the best fit
	residualPath := filepath.Join(*outputDir, "residuals.csv")
	if err := writeResiduals(residualPath, best.Residuals); err != nil {
		log.Printf("failed to write residuals: %v", err)
	} else {
		fmt.Printf("Residuals saved to: %s\n", residualPath)
	}
}

// writeResiduals writes one row per reference record.
func writeResiduals(path string, residuals []reference.Residual) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&residuals, f)
}
