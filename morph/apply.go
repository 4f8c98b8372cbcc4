package morph

// Target is one mesh's morph-target table: a name -> influence-slot dictionary
// and the influence array a renderer reads.
type Target struct {
	Name       string
	Dictionary map[string]int
	Influences []float64
}

// NewTarget builds a target whose dictionary maps each name to its position.
func NewTarget(name string, targets []string) *Target {
	dict := make(map[string]int, len(targets))
	for i, t := range targets {
		dict[t] = i
	}
	return &Target{
		Name:       name,
		Dictionary: dict,
		Influences: make([]float64, len(targets)),
	}
}

// Apply writes w onto every target. All 18 known keys are visited, so a key
// absent from w resets its slot to 0. Targets that lack a key, and slots
// outside the influence array, are skipped. Returns the number of slots written.
func Apply(targets []*Target, w Weights) int {
	written := 0
	for _, t := range targets {
		if t == nil || t.Dictionary == nil {
			continue
		}
		for _, k := range Keys {
			idx, ok := t.Dictionary[string(k)]
			if !ok || idx < 0 || idx >= len(t.Influences) {
				continue
			}
			t.Influences[idx] = w[k]
			written++
		}
	}
	return written
}
