package emotion

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// #region malformed-error

// MalformedScoreError reports a raw score that could not be interpreted
// as a number for a recognized dimension.
type MalformedScoreError struct {
	Dimension string
	Value     any
}

func (e *MalformedScoreError) Error() string {
	return fmt.Sprintf("malformed score for dimension %q: %v", e.Dimension, e.Value)
}

// #endregion malformed-error

// #region normalize

// Normalize converts a raw dimension-name → score mapping into a canonical
// Vector. Missing dimensions default to Neutral, out-of-range values are
// clamped to [0, 1], and unrecognized dimension names are dropped.
// A non-numeric score for a recognized dimension fails with
// *MalformedScoreError naming the dimension; the caller decides whether to
// drop the frame or substitute a previous value. Pure: no side effects.
func Normalize(raw map[string]any) (Vector, error) {
	var v Vector
	for i, d := range dimOrder {
		rawScore, ok := raw[string(d)]
		if !ok {
			v.values[i] = Neutral
			continue
		}
		score, err := toScore(rawScore)
		if err != nil {
			return Vector{}, &MalformedScoreError{Dimension: string(d), Value: rawScore}
		}
		v.values[i] = clamp(score)
	}
	return v, nil
}

// toScore coerces the numeric shapes a JSON-decoded mapping can carry.
// NaN and infinities are malformed: they cannot be clamped meaningfully.
func toScore(raw any) (float32, error) {
	var f float64
	switch n := raw.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, err
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, err
		}
		f = parsed
	default:
		return 0, fmt.Errorf("unsupported score type %T", raw)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite score %v", f)
	}
	return float32(f), nil
}

// #endregion normalize
