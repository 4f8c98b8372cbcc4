package morph

// Key names a morph target on the body mesh.
type Key string

// The 18 morph targets the synthesis engine drives.
const (
	GenderMax Key = "Gender_Max"
	GenderMin Key = "Gender_Min"

	AgeMax Key = "Age_Max"
	AgeMin Key = "Age_Min"

	ChildWeightMax Key = "Age_Min_Weight_Max"
	ChildWeightMin Key = "Age_Min_Weight_Min"

	WeightMax Key = "Weight_Max"
	WeightMin Key = "Weight_Min"
	MuscleMax Key = "Muscle_Max"
	MuscleMin Key = "Muscle_Min"

	WeightMaxMuscleMax Key = "Weight_Max_Muscle_Max"
	WeightMinMuscleMin Key = "Weight_Min_Muscle_Min"
	WeightMaxMuscleMin Key = "Weight_Max_Muscle_Min"
	WeightMinMuscleMax Key = "Weight_Min_Muscle_Max"

	HeightMax Key = "Height_Max"
	HeightMin Key = "Height_Min"

	ProportionMax Key = "Proportion_Max"
	ProportionMin Key = "Proportion_Min"
)

// NumKeys is the number of known morph targets.
const NumKeys = 18

// Keys lists every morph target in a fixed order.
var Keys = [NumKeys]Key{
	GenderMax,
	GenderMin,
	AgeMax,
	AgeMin,
	ChildWeightMax,
	ChildWeightMin,
	WeightMax,
	WeightMin,
	MuscleMax,
	MuscleMin,
	WeightMaxMuscleMax,
	WeightMinMuscleMin,
	WeightMaxMuscleMin,
	WeightMinMuscleMax,
	HeightMax,
	HeightMin,
	ProportionMax,
	ProportionMin,
}

// Index returns the position of k in Keys, or -1 if k is unknown.
func (k Key) Index() int {
	for i, known := range Keys {
		if known == k {
			return i
		}
	}
	return -1
}

// suffix is "Max" for non-negative values and "Min" otherwise.
func suffix(n float64) string {
	if n >= 0 {
		return "Max"
	}
	return "Min"
}

func weightKey(w float64) Key { return Key("Weight_" + suffix(w)) }
func muscleKey(m float64) Key { return Key("Muscle_" + suffix(m)) }
func comboKey(w, m float64) Key { return Key("Weight_" + suffix(w) + "_Muscle_" + suffix(m)) }
func childWeightKey(w float64) Key { return Key("Age_Min_Weight_" + suffix(w)) }
