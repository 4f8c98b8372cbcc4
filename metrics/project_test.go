package metrics

import (
	"math"
	"testing"

	"github.com/pthm-cable/bodylab/config"
	"github.com/pthm-cable/bodylab/params"
)

func defaults(t *testing.T) *config.Anthropometry {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return &cfg.Anthropometry
}

func vec(pairs ...any) params.Vector {
	v := params.Neutral()
	for i := 0; i < len(pairs); i += 2 {
		v = v.With(pairs[i].(params.Key), pairs[i+1].(float64))
	}
	return v
}

func TestProjectNeutral(t *testing.T) {
	a := defaults(t)

	got := Project(params.Neutral(), a)
	want := DisplayMetrics{Age: 25, Height: 161.2, Weight: 52.0}
	if got != want {
		t.Errorf("Project(neutral) = %+v, want %+v", got, want)
	}

	b := Estimate(params.Neutral(), a)
	if math.Abs(b.Height-161.18) > 1e-9 || math.Abs(b.Weight-51.97) > 1e-9 || b.Age != 25 {
		t.Errorf("Estimate(neutral) = %v/%v/%v, want 25/161.18/51.97", b.Age, b.Height, b.Weight)
	}
}

func TestEstimateScenarios(t *testing.T) {
	a := defaults(t)

	tests := []struct {
		name   string
		v      params.Vector
		age    float64
		height float64
		weight float64
	}{
		{"height max", vec(params.Height, 1.0), 25, 233.0, 74.97},
		{"height min", vec(params.Height, -1.0), 25, 124.0, 32.0},
		{"tall and lean", vec(params.Height, 1.0, params.Weight, -1.0), 25, 233.0, 46.31},
		{"tall and heavy", vec(params.Height, 1.0, params.Weight, 1.0), 25, 233.0, 126.77},
		{"gender min", vec(params.Gender, -1.0), 25, 154.36, 44.65},
		{"gender max", vec(params.Gender, 1.0), 25, 168.15, 61.96},
		{"proportion min", vec(params.Proportion, -1.0), 25, 160.84, 52.75},
		{"proportion max", vec(params.Proportion, 1.0), 25, 161.64, 52.30},
		{"weight min", vec(params.Weight, -1.0), 25, 161.18, 46.31},
		{"weight max", vec(params.Weight, 1.0), 25, 161.18, 56.77},
		{"weight max muscle min", vec(params.Weight, 1.0, params.Muscle, -1.0), 25, 161.18, 122.0},
		{"weight max muscle max", vec(params.Weight, 1.0, params.Muscle, 1.0), 25, 161.18, 73.26},
		{"weight min muscle min", vec(params.Weight, -1.0, params.Muscle, -1.0), 25, 161.18, 35.24},
		{"muscle max", vec(params.Muscle, 1.0), 25, 161.18, 50.07},
		// Cubic ease: (0.5)^3 = 0.125 of the way from 55.09 to 122.0.
		{"weight 75 muscle min", vec(params.Weight, 0.5, params.Muscle, -1.0), 25, 161.18, 63.45375},
		{"age min", vec(params.Age, -1.0), 1, 60.17, 4.86},
		{"age min weight min", vec(params.Age, -1.0, params.Weight, -1.0), 1, 60.17, 3.45},
		{"age min weight max", vec(params.Age, -1.0, params.Weight, 1.0), 1, 60.17, 5.59},
		{"age min height max", vec(params.Age, -1.0, params.Height, 1.0), 1, 60.17 + 71.82*0.266, 4.86 + 23*0.05},
		{"age 25 percent", vec(params.Age, -0.5), 13, 110.675, 16.6375},
		{"age max", vec(params.Age, 1.0), 80, 158.18, 51.97},
		{"age 75 percent", vec(params.Age, 0.5), 52.5, 159.68, 51.97},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Estimate(tt.v, a)
			if math.Abs(b.Age-tt.age) > 1e-9 {
				t.Errorf("age = %v, want %v", b.Age, tt.age)
			}
			if math.Abs(b.Height-tt.height) > 1e-9 {
				t.Errorf("height = %v, want %v", b.Height, tt.height)
			}
			if math.Abs(b.Weight-tt.weight) > 1e-9 {
				t.Errorf("weight = %v, want %v", b.Weight, tt.weight)
			}
		})
	}
}

func TestProjectRounding(t *testing.T) {
	a := defaults(t)

	got := Project(vec(params.Age, 0.5), a)
	want := DisplayMetrics{Age: 53, Height: 159.7, Weight: 52.0}
	if got != want {
		t.Errorf("Project = %+v, want %+v", got, want)
	}

	got = Project(vec(params.Height, 1.0), a)
	want = DisplayMetrics{Age: 25, Height: 233.0, Weight: 75.0}
	if got != want {
		t.Errorf("Project = %+v, want %+v", got, want)
	}
}

func TestHeightMonotonic(t *testing.T) {
	a := defaults(t)

	contexts := []params.Vector{
		params.Neutral(),
		vec(params.Age, -1.0),
		vec(params.Age, -0.3, params.Weight, 0.8),
		vec(params.Age, 1.0, params.Proportion, -1.0),
		vec(params.Gender, 1.0, params.Weight, -1.0, params.Muscle, 1.0),
	}

	for ci, base := range contexts {
		prev := math.Inf(-1)
		for i := 0; i <= 100; i++ {
			n := float64(i) / 100
			h := Estimate(base.With(params.Height, n), a).Height
			if h < prev-1e-12 {
				t.Fatalf("context %d: height decreased at n=%v: %v < %v", ci, n, h, prev)
			}
			prev = h
		}
	}
}

func TestAgeSeamContinuity(t *testing.T) {
	a := defaults(t)
	const eps = 1e-9

	contexts := []params.Vector{
		params.Neutral(),
		vec(params.Height, 1.0, params.Weight, 1.0),
		vec(params.Height, -0.7, params.Weight, -1.0, params.Proportion, 0.4),
		vec(params.Gender, -1.0, params.Muscle, 1.0),
	}

	for ci, base := range contexts {
		below := Estimate(base.With(params.Age, -eps), a)
		above := Estimate(base.With(params.Age, 0), a)

		if !below.Child || above.Child {
			t.Fatalf("context %d: wrong branch selection", ci)
		}
		if math.Abs(below.Height-above.Height) > 1e-6 {
			t.Errorf("context %d: height jump %v -> %v", ci, below.Height, above.Height)
		}
		if math.Abs(below.Weight-above.Weight) > 1e-6 {
			t.Errorf("context %d: weight jump %v -> %v", ci, below.Weight, above.Weight)
		}
		if math.Abs(below.Age-above.Age) > 1e-6 {
			t.Errorf("context %d: age jump %v -> %v", ci, below.Age, above.Age)
		}
	}
}

func TestGridSeamContinuity(t *testing.T) {
	a := defaults(t)
	const eps = 1e-9

	for _, m := range []float64{-1, -0.5, 0, 0.5, 1} {
		lo := gridWeight(a.Grid, a.GridEaseExponent, -eps, m)
		hi := gridWeight(a.Grid, a.GridEaseExponent, eps, m)
		if math.Abs(lo-hi) > 1e-6 {
			t.Errorf("weight seam at muscle=%v: %v vs %v", m, lo, hi)
		}
	}
	for _, w := range []float64{-1, -0.5, 0, 0.5, 1} {
		lo := gridWeight(a.Grid, a.GridEaseExponent, w, -eps)
		hi := gridWeight(a.Grid, a.GridEaseExponent, w, eps)
		if math.Abs(lo-hi) > 1e-6 {
			t.Errorf("muscle seam at weight=%v: %v vs %v", w, lo, hi)
		}
	}
}

func TestChildWeightFloor(t *testing.T) {
	cfg := config.Default().Clone()
	cfg.Anthropometry.Child.Weight = 0.2
	cfg.Anthropometry.Child.WeightAtMin = 0.1
	if err := cfg.Refresh(); err != nil {
		t.Fatal(err)
	}

	b := Estimate(vec(params.Age, -1.0, params.Weight, -1.0, params.Height, -1.0), &cfg.Anthropometry)
	if b.ChildWeight != 0.5 {
		t.Errorf("ChildWeight = %v, want floor 0.5", b.ChildWeight)
	}
	if b.Weight != 0.5 {
		t.Errorf("Weight = %v, want 0.5 at the juvenile extreme", b.Weight)
	}
}

func TestEstimateClampsInput(t *testing.T) {
	a := defaults(t)

	wild := vec(params.Height, 5.0, params.Age, -9.0, params.Weight, math.NaN())
	tame := vec(params.Height, 1.0, params.Age, -1.0)
	if Estimate(wild, a) != Estimate(tame, a) {
		t.Error("out-of-range input should behave like the clamped vector")
	}
}

func TestElderWeightUnchanged(t *testing.T) {
	a := defaults(t)

	for _, n := range []float64{0, 0.25, 0.5, 1} {
		b := Estimate(vec(params.Age, n, params.Weight, 0.6), a)
		if b.Weight != b.AdultWeight {
			t.Errorf("age %v: weight %v differs from adult weight %v", n, b.Weight, b.AdultWeight)
		}
	}
}

func TestDisplayMetricsString(t *testing.T) {
	got := DisplayMetrics{Age: 25, Height: 161.2, Weight: 52}.String()
	want := "25 yrs · 161.2 cm · 52.0 kg"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
