// Package morph synthesizes morph-target weights from the slider vector.
//
// Each call produces a fresh Weights map. Keys a call does not assign are
// implicitly zero; whoever applies the map to a mesh must zero them (see Apply)
// so transient extremes never leave stale influences behind.
package morph

import (
	"math"

	"github.com/pthm-cable/bodylab/config"
	"github.com/pthm-cable/bodylab/params"
)

// Factors are the child suppression factors derived from the age slider.
type Factors struct {
	IsChild    float64 // 0 at age >= 0, up to 1 at the most juvenile extreme
	Gender     float64
	Height     float64
	Proportion float64
	Adult      float64 // scales the adult weight x muscle system
}

// ComputeFactors derives the suppression factors for a normalized age.
func ComputeFactors(age float64, m *config.Morph) Factors {
	isChild := math.Max(0, -age)
	return Factors{
		IsChild:    isChild,
		Gender:     1 - isChild,
		Height:     1 - m.HeightSuppression*isChild,
		Proportion: 1 - m.ProportionSuppression*isChild,
		Adult:      1 - isChild,
	}
}

// Synthesize maps a parameter vector to morph-target weights in [0, 1].
// Components outside [-1, 1] are clamped.
func Synthesize(v params.Vector, m *config.Morph) Weights {
	v = v.Clamped()
	age := v.Get(params.Age)
	weight := v.Get(params.Weight)
	muscle := v.Get(params.Muscle)

	f := ComputeFactors(age, m)
	w := make(Weights, NumKeys)

	wAbs := math.Abs(weight)
	mAbs := math.Abs(muscle)

	// Adult weight x muscle: the three terms sum to Adult*(w+m-w*m) and
	// collapse to the pure key on either axis.
	if f.Adult > 0 {
		w[comboKey(weight, muscle)] = wAbs * mAbs * f.Adult
		w[weightKey(weight)] = wAbs * (1 - mAbs) * f.Adult
		w[muscleKey(muscle)] = mAbs * (1 - wAbs) * f.Adult
	}

	// Children have no muscle axis.
	if f.IsChild > 0 {
		w[childWeightKey(weight)] = wAbs * f.IsChild
	}

	w.setPair(GenderMax, GenderMin, v.Get(params.Gender)*f.Gender)

	if age > 0 {
		w[AgeMax] = age
	} else {
		// Cedes share to the child weight key so the two never double-count.
		w[AgeMin] = f.IsChild * (1 - wAbs)
	}

	w.setPair(HeightMax, HeightMin, v.Get(params.Height)*f.Height)
	w.setPair(ProportionMax, ProportionMin, v.Get(params.Proportion)*f.Proportion)

	return w
}

// setPair assigns a signed value to exactly one of a pos/neg key pair.
func (w Weights) setPair(pos, neg Key, n float64) {
	if n > 0 {
		w[pos] = n
	} else {
		w[neg] = math.Abs(n)
	}
}
