package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/bodylab/config"
	"github.com/pthm-cable/bodylab/reference"
)

// FitnessEvaluator scores parameter vectors against the reference table.
type FitnessEvaluator struct {
	params     *ParamVector
	records    []reference.Record
	baseConfig *config.Config

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	bestParams  []float64
	bestReport  reference.Report
	lastReport  reference.Report
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, records []reference.Record, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		records:     records,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// Evaluate computes fitness for raw parameter values (lower = better).
// Fitness is the sum of squared height and weight residuals.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	x = fe.params.Clamp(x)
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)
	if err := cfg.Refresh(); err != nil {
		return math.Inf(1)
	}

	report := reference.Evaluate(fe.records, &cfg.Anthropometry)
	fitness := report.Loss()

	fe.mu.Lock()
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
		fe.bestParams = x
		fe.bestReport = report
	}
	fe.lastReport = report
	fe.mu.Unlock()

	return fitness
}

// Best returns the clamped parameters and fitness of the best evaluation.
// Params is nil until an evaluation with finite fitness has run.
func (fe *FitnessEvaluator) Best() ([]float64, float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return append([]float64(nil), fe.bestParams...), fe.bestFitness
}

// BestReport returns the residual report from the best evaluation.
func (fe *FitnessEvaluator) BestReport() reference.Report {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestReport
}

// LastReport returns the residual report from the most recent evaluation.
func (fe *FitnessEvaluator) LastReport() reference.Report {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastReport
}
