package emotion

// #region dimensions

// Dimension names one axis of affective state, scored in [0, 1].
type Dimension string

const (
	Engagement  Dimension = "engagement"
	Confidence  Dimension = "confidence"
	Confusion   Dimension = "confusion"
	Frustration Dimension = "frustration"
	Focus       Dimension = "focus"
	Boredom     Dimension = "boredom"
	Excitement  Dimension = "excitement"
)

// dimOrder fixes the canonical ordering of the closed dimension set.
var dimOrder = [...]Dimension{
	Engagement, Confidence, Confusion, Frustration, Focus, Boredom, Excitement,
}

// dimIndex maps each recognized dimension to its slot in a Vector.
var dimIndex = func() map[Dimension]int {
	m := make(map[Dimension]int, len(dimOrder))
	for i, d := range dimOrder {
		m[d] = i
	}
	return m
}()

// Dimensions returns the closed dimension set in canonical order.
func Dimensions() []Dimension {
	out := make([]Dimension, len(dimOrder))
	copy(out, dimOrder[:])
	return out
}

// Neutral is the midpoint score substituted for missing dimensions.
const Neutral float32 = 0.5

// #endregion dimensions

// #region vector

// Vector is a canonical emotion score vector: every recognized dimension
// present, every value in [0, 1]. Value semantics make stored vectors
// immutable from the caller's point of view.
type Vector struct {
	values [len(dimOrder)]float32
}

// Get returns the score for a dimension. Unrecognized dimensions read as 0.
func (v Vector) Get(d Dimension) float32 {
	i, ok := dimIndex[d]
	if !ok {
		return 0
	}
	return v.values[i]
}

// Values returns a fresh map of all dimension scores.
func (v Vector) Values() map[Dimension]float32 {
	m := make(map[Dimension]float32, len(dimOrder))
	for i, d := range dimOrder {
		m[d] = v.values[i]
	}
	return m
}

// FromValues builds a Vector from trusted per-dimension scores.
// Unrecognized keys are ignored, missing dimensions default to Neutral,
// and values are clamped to [0, 1]. Use Normalize for untrusted input.
func FromValues(values map[Dimension]float32) Vector {
	var v Vector
	for i, d := range dimOrder {
		score, ok := values[d]
		if !ok {
			v.values[i] = Neutral
			continue
		}
		v.values[i] = clamp(score)
	}
	return v
}

// clamp restricts a score to [0, 1].
func clamp(s float32) float32 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// #endregion vector
