package session

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/pthm-cable/bodylab/config"
	"github.com/pthm-cable/bodylab/metrics"
	"github.com/pthm-cable/bodylab/morph"
	"github.com/pthm-cable/bodylab/params"
	"github.com/pthm-cable/bodylab/presets"
)

func newStore(t *testing.T) *presets.Store {
	t.Helper()
	st, err := presets.Open(filepath.Join(t.TempDir(), "presets.yaml"), presets.DefaultMax)
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestNewStartsNeutral(t *testing.T) {
	s := New(config.Default(), nil)

	if !s.Vector().IsNeutral() {
		t.Errorf("vector = %v, want neutral", s.Vector())
	}
	if got, want := s.Display(), (metrics.DisplayMetrics{Age: 25, Height: 161.2, Weight: 52.0}); got != want {
		t.Errorf("display = %+v, want %+v", got, want)
	}
	if s.Weights().Total() != 0 {
		t.Errorf("neutral weights = %v, want all zero", s.Weights())
	}
	if s.Mode() != presets.ModeSimple || s.Revision() != 1 {
		t.Errorf("mode %q revision %d", s.Mode(), s.Revision())
	}
}

func TestSetRawRecomputes(t *testing.T) {
	s := New(config.Default(), nil)

	if s.SetRaw(params.Height, 50) {
		t.Error("SetRaw to the current value should report no change")
	}
	if s.Revision() != 1 {
		t.Errorf("revision = %d after no-op, want 1", s.Revision())
	}

	if !s.SetRaw(params.Height, 100) {
		t.Fatal("SetRaw should report a change")
	}
	if s.Display().Height != 233.0 {
		t.Errorf("height = %v, want 233.0", s.Display().Height)
	}
	if s.Weights().Get(morph.HeightMax) != 1 {
		t.Errorf("Height_Max = %v, want 1", s.Weights().Get(morph.HeightMax))
	}
	if s.Raw(params.Height) != 100 {
		t.Errorf("raw height = %v", s.Raw(params.Height))
	}
}

func TestExtremeThenBackClearsWeights(t *testing.T) {
	s := New(config.Default(), nil)
	s.SetRaw(params.Weight, 100)
	s.SetRaw(params.Weight, 50)

	if w := s.Weights(); w.Get(morph.WeightMax) != 0 || w.Total() != 0 {
		t.Errorf("weights after returning to base = %v", w)
	}
}

func TestSetClamps(t *testing.T) {
	s := New(config.Default(), nil)
	s.Set(params.Vector{params.Age: -3})
	if s.Vector().Get(params.Age) != -1 {
		t.Errorf("age = %v, want clamped to -1", s.Vector().Get(params.Age))
	}
	if s.Display().Age != 1 {
		t.Errorf("display age = %d, want 1", s.Display().Age)
	}
}

func TestReset(t *testing.T) {
	s := New(config.Default(), nil)
	s.SetRaw(params.Gender, 0)
	s.SetRaw(params.Age, 90)
	s.Reset()

	if !s.Vector().IsNeutral() {
		t.Errorf("vector after Reset = %v", s.Vector())
	}
	if s.Weights().Total() != 0 {
		t.Error("weights not cleared by Reset")
	}
}

func TestPresetsWithoutStore(t *testing.T) {
	s := New(config.Default(), nil)
	if _, err := s.SavePreset(time.Now()); !errors.Is(err, ErrNoStore) {
		t.Errorf("SavePreset err = %v, want ErrNoStore", err)
	}
	if s.LoadLatest() {
		t.Error("LoadLatest without store should report false")
	}
	if s.Presets() != nil {
		t.Error("Presets without store should be nil")
	}
}

func TestSaveAndLoadLatest(t *testing.T) {
	st := newStore(t)
	s := New(config.Default(), st)

	if s.LoadLatest() {
		t.Error("LoadLatest on empty store should report false")
	}

	s.SetMode(presets.ModeAdvanced)
	s.SetRaw(params.Muscle, 100)
	s.SetRaw(params.Age, 0)
	saved, err := s.SavePreset(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("SavePreset: %v", err)
	}
	if saved.Mode != presets.ModeAdvanced {
		t.Errorf("saved mode = %q", saved.Mode)
	}

	s.Reset()
	s.SetMode(presets.ModeSimple)
	if !s.LoadLatest() {
		t.Fatal("LoadLatest should find the saved preset")
	}
	if s.Raw(params.Muscle) != 100 || s.Raw(params.Age) != 0 {
		t.Errorf("loaded vector = %v", s.Vector())
	}
	if s.Mode() != presets.ModeAdvanced {
		t.Errorf("mode = %q, want advanced", s.Mode())
	}
	if len(s.Presets()) != 1 {
		t.Errorf("Presets() = %d, want 1", len(s.Presets()))
	}

	// persisted
	reopened, err := presets.Open(st.Path(), presets.DefaultMax)
	if err != nil {
		t.Fatal(err)
	}
	if reopened.Len() != 1 {
		t.Errorf("reopened store has %d presets, want 1", reopened.Len())
	}
}
