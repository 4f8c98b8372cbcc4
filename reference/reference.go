// Package reference holds measured anchor points for the metric projection
// and scores a set of anthropometric tables against them.
package reference

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/bodylab/config"
	"github.com/pthm-cable/bodylab/metrics"
	"github.com/pthm-cable/bodylab/params"
)

//go:embed reference_data.csv
var defaultCSV []byte

// Record is one measured body: raw slider values and the observed statistics.
type Record struct {
	Label      string  `csv:"label"`
	Gender     float64 `csv:"gender"`
	Height     float64 `csv:"height"`
	Weight     float64 `csv:"weight"`
	Muscle     float64 `csv:"muscle"`
	Proportion float64 `csv:"proportion"`
	Age        float64 `csv:"age"`

	ExpectedAge    float64 `csv:"expected_age"`
	ExpectedHeight float64 `csv:"expected_height_cm"`
	ExpectedWeight float64 `csv:"expected_weight_kg"`
}

// Vector returns the normalized slider vector for the record.
func (r Record) Vector() params.Vector {
	return params.FromRaw([]params.Slider{
		{Key: params.Gender, Value: r.Gender},
		{Key: params.Height, Value: r.Height},
		{Key: params.Weight, Value: r.Weight},
		{Key: params.Muscle, Value: r.Muscle},
		{Key: params.Proportion, Value: r.Proportion},
		{Key: params.Age, Value: r.Age},
	})
}

// Default returns the embedded reference table.
func Default() ([]Record, error) {
	return Parse(bytes.NewReader(defaultCSV))
}

// Load reads a reference table from a CSV file. An empty path loads the embedded table.
func Load(path string) ([]Record, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reference table: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes reference records from CSV.
func Parse(r io.Reader) ([]Record, error) {
	var records []Record
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("parsing reference table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parsing reference table: no records")
	}
	return records, nil
}

// Residual is the projected minus the expected value for one record.
type Residual struct {
	Label  string  `csv:"label"`
	Age    float64 `csv:"age_error"`
	Height float64 `csv:"height_error_cm"`
	Weight float64 `csv:"weight_error_kg"`
}

// Report summarizes how well a table reproduces the reference records.
type Report struct {
	Residuals []Residual

	AgeRMSE    float64
	HeightRMSE float64
	WeightRMSE float64

	MaxHeightError float64 // absolute
	MaxWeightError float64 // absolute
}

// Evaluate projects every record (unrounded) and collects the residuals.
func Evaluate(records []Record, a *config.Anthropometry) Report {
	rep := Report{Residuals: make([]Residual, len(records))}
	if len(records) == 0 {
		return rep
	}

	ages := make([]float64, len(records))
	heights := make([]float64, len(records))
	weights := make([]float64, len(records))

	for i, r := range records {
		b := metrics.Estimate(r.Vector(), a)
		res := Residual{
			Label:  r.Label,
			Age:    b.Age - r.ExpectedAge,
			Height: b.Height - r.ExpectedHeight,
			Weight: b.Weight - r.ExpectedWeight,
		}
		rep.Residuals[i] = res
		ages[i] = res.Age
		heights[i] = res.Height
		weights[i] = res.Weight
	}

	rep.AgeRMSE = rmse(ages)
	rep.HeightRMSE = rmse(heights)
	rep.WeightRMSE = rmse(weights)
	rep.MaxHeightError = maxAbs(heights)
	rep.MaxWeightError = maxAbs(weights)

	return rep
}

// Loss is the sum of squared height and weight residuals.
func (r Report) Loss() float64 {
	var sum float64
	for _, res := range r.Residuals {
		sum += res.Height*res.Height + res.Weight*res.Weight
	}
	return sum
}

// Worst returns the residual with the largest combined error.
func (r Report) Worst() (Residual, bool) {
	if len(r.Residuals) == 0 {
		return Residual{}, false
	}
	worst := r.Residuals[0]
	worstErr := math.Hypot(worst.Height, worst.Weight)
	for _, res := range r.Residuals[1:] {
		if e := math.Hypot(res.Height, res.Weight); e > worstErr {
			worst, worstErr = res, e
		}
	}
	return worst, true
}

// LogValue implements slog.LogValuer.
func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("records", len(r.Residuals)),
		slog.Float64("age_rmse", r.AgeRMSE),
		slog.Float64("height_rmse", r.HeightRMSE),
		slog.Float64("weight_rmse", r.WeightRMSE),
		slog.Float64("max_height_error", r.MaxHeightError),
		slog.Float64("max_weight_error", r.MaxWeightError),
	)
}

func rmse(x []float64) float64 {
	return floats.Norm(x, 2) / math.Sqrt(float64(len(x)))
}

func maxAbs(x []float64) float64 {
	return math.Max(math.Abs(floats.Min(x)), math.Abs(floats.Max(x)))
}
