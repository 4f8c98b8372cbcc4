package morph

import (
	"testing"

	"github.com/pthm-cable/bodylab/params"
)

func TestApplyZeroesStaleKeys(t *testing.T) {
	m := morphConfig(t)

	names := []string{"Basis", "Height_Max", "Height_Min", "Weight_Max", "Age_Min_Weight_Max", "Gender_Max"}
	body := NewTarget("body", names)
	body.Influences[0] = 0.42 // not a driven target

	extreme := Synthesize(vec(1, 1, 1, 0, 0, -1), m)
	Apply([]*Target{body}, extreme)

	if body.Influences[body.Dictionary["Height_Max"]] == 0 {
		t.Fatal("expected non-zero Height_Max after extreme pose")
	}
	if body.Influences[body.Dictionary["Age_Min_Weight_Max"]] != 1 {
		t.Errorf("Age_Min_Weight_Max = %v, want 1", body.Influences[body.Dictionary["Age_Min_Weight_Max"]])
	}

	n := Apply([]*Target{body}, Synthesize(params.Neutral(), m))
	if n != 5 {
		t.Errorf("Apply wrote %d slots, want 5", n)
	}
	for _, name := range names[1:] {
		if v := body.Influences[body.Dictionary[name]]; v != 0 {
			t.Errorf("%s = %v after neutral, want 0", name, v)
		}
	}
	if body.Influences[0] != 0.42 {
		t.Errorf("untracked slot changed to %v", body.Influences[0])
	}
}

func TestApplySkipsBadTargets(t *testing.T) {
	short := &Target{
		Name:       "short",
		Dictionary: map[string]int{"Height_Max": 5, "Height_Min": -1},
		Influences: make([]float64, 2),
	}

	n := Apply([]*Target{nil, {Name: "empty"}, short}, Weights{HeightMax: 1})
	if n != 0 {
		t.Errorf("Apply wrote %d slots, want 0", n)
	}
}

func TestApplyEmptyWeightsZeroesEverything(t *testing.T) {
	names := make([]string, NumKeys)
	for i, k := range Keys {
		names[i] = string(k)
	}
	mesh := NewTarget("mesh", names)
	for i := range mesh.Influences {
		mesh.Influences[i] = 0.5
	}

	if n := Apply([]*Target{mesh}, nil); n != NumKeys {
		t.Errorf("Apply wrote %d slots, want %d", n, NumKeys)
	}
	for i, v := range mesh.Influences {
		if v != 0 {
			t.Errorf("%s = %v, want 0", names[i], v)
		}
	}
}

func TestKeyIndex(t *testing.T) {
	for i, k := range Keys {
		if k.Index() != i {
			t.Errorf("%s.Index() = %d, want %d", k, k.Index(), i)
		}
	}
	if Key("Nose_Max").Index() != -1 {
		t.Error("unknown key should have index -1")
	}
}
