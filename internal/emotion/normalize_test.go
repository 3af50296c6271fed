package emotion

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNormalizeFullMapping(t *testing.T) {
	raw := map[string]any{
		"engagement":  0.8,
		"confidence":  0.6,
		"confusion":   0.2,
		"frustration": 0.1,
		"focus":       0.7,
		"boredom":     0.3,
		"excitement":  0.5,
	}

	v, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got := v.Get(Engagement); got != 0.8 {
		t.Fatalf("engagement: expected 0.8, got %f", got)
	}
	if got := v.Get(Confusion); got != 0.2 {
		t.Fatalf("confusion: expected 0.2, got %f", got)
	}
}

func TestNormalizeMissingDimensionsDefaultToNeutral(t *testing.T) {
	v, err := Normalize(map[string]any{"confusion": 0.9})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got := v.Get(Confusion); got != 0.9 {
		t.Fatalf("confusion: expected 0.9, got %f", got)
	}
	for _, d := range []Dimension{Engagement, Confidence, Frustration, Focus, Boredom, Excitement} {
		if got := v.Get(d); got != Neutral {
			t.Fatalf("%s: expected neutral %f, got %f", d, Neutral, got)
		}
	}
}

func TestNormalizeEmptyMapping(t *testing.T) {
	v, err := Normalize(map[string]any{})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	for d, score := range v.Values() {
		if score != Neutral {
			t.Fatalf("%s: expected neutral, got %f", d, score)
		}
	}
}

func TestNormalizeClampsOutOfRange(t *testing.T) {
	v, err := Normalize(map[string]any{
		"engagement": 1.7,
		"confusion":  -0.4,
	})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got := v.Get(Engagement); got != 1.0 {
		t.Fatalf("expected clamp to 1.0, got %f", got)
	}
	if got := v.Get(Confusion); got != 0.0 {
		t.Fatalf("expected clamp to 0.0, got %f", got)
	}
}

func TestNormalizeDropsUnknownDimensions(t *testing.T) {
	v, err := Normalize(map[string]any{
		"confusion": 0.6,
		"serenity":  0.9,
	})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got := v.Get(Dimension("serenity")); got != 0 {
		t.Fatalf("unknown dimension should read as 0, got %f", got)
	}
	if got := v.Get(Confusion); got != 0.6 {
		t.Fatalf("confusion: expected 0.6, got %f", got)
	}
}

func TestNormalizeAcceptsNumericShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		want float32
	}{
		{"float64", 0.25, 0.25},
		{"int", 1, 1.0},
		{"int64", int64(0), 0.0},
		{"json number", json.Number("0.75"), 0.75},
		{"numeric string", "0.5", 0.5},
	}
	for _, tc := range cases {
		v, err := Normalize(map[string]any{"focus": tc.raw})
		if err != nil {
			t.Fatalf("%s: Normalize: %v", tc.name, err)
		}
		if got := v.Get(Focus); got != tc.want {
			t.Fatalf("%s: expected %f, got %f", tc.name, tc.want, got)
		}
	}
}

func TestNormalizeMalformedScore(t *testing.T) {
	cases := []struct {
		name string
		raw  any
	}{
		{"garbage string", "very high"},
		{"bool", true},
		{"nested object", map[string]any{"score": 0.5}},
	}
	for _, tc := range cases {
		_, err := Normalize(map[string]any{"frustration": tc.raw})
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		var malformed *MalformedScoreError
		if !errors.As(err, &malformed) {
			t.Fatalf("%s: expected MalformedScoreError, got %T", tc.name, err)
		}
		if malformed.Dimension != "frustration" {
			t.Fatalf("%s: expected offending dimension frustration, got %s", tc.name, malformed.Dimension)
		}
	}
}

func TestFromValuesClampsAndDefaults(t *testing.T) {
	v := FromValues(map[Dimension]float32{
		Engagement: 2.0,
		Confusion:  -1.0,
	})
	if got := v.Get(Engagement); got != 1.0 {
		t.Fatalf("expected clamp to 1.0, got %f", got)
	}
	if got := v.Get(Confusion); got != 0.0 {
		t.Fatalf("expected clamp to 0.0, got %f", got)
	}
	if got := v.Get(Boredom); got != Neutral {
		t.Fatalf("expected neutral, got %f", got)
	}
}

func TestVectorValuesIsACopy(t *testing.T) {
	v := FromValues(map[Dimension]float32{Engagement: 0.4})
	m := v.Values()
	m[Engagement] = 0.99

	if got := v.Get(Engagement); got != 0.4 {
		t.Fatalf("mutating the returned map must not touch the vector, got %f", got)
	}
}
