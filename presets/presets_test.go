package presets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/pthm-cable/bodylab/params"
)

func TestOpenMissingFile(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "none.yaml"), 10)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
	if _, ok := s.Latest(); ok {
		t.Error("Latest on empty store should report false")
	}
}

func TestAddNewestFirstAndCap(t *testing.T) {
	s, _ := Open(filepath.Join(t.TempDir(), "p.yaml"), DefaultMax)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 12; i++ {
		v := params.Neutral().WithRaw(params.Height, float64(i))
		s.Add(NewPreset(ModeSimple, v, start.Add(time.Duration(i)*time.Minute)))
	}

	if s.Len() != DefaultMax {
		t.Fatalf("Len = %d, want %d", s.Len(), DefaultMax)
	}
	latest, _ := s.Latest()
	if got := latest.Vector().Raw(params.Height); got != 11 {
		t.Errorf("latest height = %v, want 11", got)
	}
	list := s.List()
	// the two oldest (height 0 and 1) were dropped
	if got := list[len(list)-1].Vector().Raw(params.Height); got != 2 {
		t.Errorf("oldest kept height = %v, want 2", got)
	}
	for i := 1; i < len(list); i++ {
		if !list[i-1].Time.After(list[i].Time) {
			t.Fatalf("presets not newest first at %d", i)
		}
	}
}

func TestSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "presets.yaml")
	s, _ := Open(path, 10)

	v := params.FromRaw([]params.Slider{
		{Key: params.Gender, Value: 100},
		{Key: params.Age, Value: 25},
		{Key: params.Weight, Value: 80},
	})
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	s.Add(NewPreset(ModeAdvanced, v, now))
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Open(path, 10)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if diff := cmp.Diff(s.List(), loaded.List()); diff != "" {
		t.Errorf("roundtrip mismatch (-saved +loaded):\n%s", diff)
	}
	got, _ := loaded.Latest()
	if got.Vector() != v {
		t.Errorf("vector = %v, want %v", got.Vector(), v)
	}
}

func TestOpenTruncatesToMax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	s, _ := Open(path, 10)
	for i := 0; i < 5; i++ {
		s.Add(NewPreset(ModeNormal, params.Neutral(), time.Unix(int64(i), 0).UTC()))
	}
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	small, err := Open(path, 3)
	if err != nil {
		t.Fatal(err)
	}
	if small.Len() != 3 {
		t.Errorf("Len = %d, want 3", small.Len())
	}
}

func TestOpenBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("presets: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path, 10); err == nil {
		t.Error("expected parse error")
	}
}

func TestOpenModes(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    Mode
		wantErr bool
	}{
		{"known mode", "presets:\n  - mode: advanced\n", ModeAdvanced, false},
		{"missing mode", "presets:\n  - sliders:\n      - key: height\n        value: 70\n", ModeSimple, false},
		{"unknown mode", "presets:\n  - mode: expert\n", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "presets.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			s, err := Open(path, 10)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error for unknown mode")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			p, ok := s.Latest()
			if !ok || p.Mode != tt.want {
				t.Errorf("Latest mode = %q, want %q", p.Mode, tt.want)
			}
		})
	}
}

func TestPresetMissingSlidersAreNeutral(t *testing.T) {
	p := Preset{Mode: ModeSimple, Sliders: []params.Slider{{Key: params.Height, Value: 100}}}
	v := p.Vector()
	if v.Get(params.Height) != 1 {
		t.Errorf("height = %v, want 1", v.Get(params.Height))
	}
	if v.Get(params.Age) != 0 || v.Get(params.Gender) != 0 {
		t.Errorf("missing sliders should be neutral, got %v", v)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseMode(string(m))
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %q, %v", m, got, err)
		}
	}
	if _, err := ParseMode("expert"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
