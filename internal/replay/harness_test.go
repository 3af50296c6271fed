package replay

import (
	"testing"
	"time"

	"github.com/jessechan5171/emoradar/go-engine/internal/engine"
	"github.com/jessechan5171/emoradar/go-engine/internal/session"
)

// helper: a fixture with default config and the given samples.
func testFixture(samples []FixtureSample, expected []FixtureExpectedEvent) *Fixture {
	return &Fixture{
		Description:    "synthetic",
		Config:         FixtureConfigFrom(session.DefaultConfig()),
		Phase:          "practice",
		Samples:        samples,
		ExpectedEvents: expected,
	}
}

func TestRunEmitsExpectedEvent(t *testing.T) {
	f := testFixture(
		[]FixtureSample{
			{OffsetMs: 2000, Scores: map[string]float64{"confusion": 0.9}},
			{OffsetMs: 4000, Scores: map[string]float64{"confusion": 0.4}},
		},
		[]FixtureExpectedEvent{
			{Category: "confusion_support", Urgency: "critical", OffsetMs: 2000},
		},
	)

	results, summary, err := Run(f)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Samples != 2 || summary.Events != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Diverged != 0 {
		t.Fatalf("expected no divergence, got %d", summary.Diverged)
	}
	if results[0].Guidance == "" {
		t.Fatal("expected resolved guidance on the replayed event")
	}
}

func TestRunIsDeterministic(t *testing.T) {
	f := testFixture(
		[]FixtureSample{
			{OffsetMs: 2000, Scores: map[string]float64{"confusion": 0.9}},
			{OffsetMs: 4000, Scores: map[string]float64{"engagement": 0.2, "focus": 0.2}},
			{OffsetMs: 50000, Scores: map[string]float64{"confidence": 0.2, "frustration": 0.7}},
		},
		nil,
	)

	first, _, err := Run(f)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	second, _, err := Run(f)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("replay diverged: %d vs %d events", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("replay diverged at event %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestRunSkipsBadSamples(t *testing.T) {
	f := testFixture(
		[]FixtureSample{
			{OffsetMs: 4000, Scores: map[string]float64{"engagement": 0.6}},
			{OffsetMs: 2000, Scores: map[string]float64{"engagement": 0.6}}, // out of order
			{OffsetMs: 6000, Scores: map[string]float64{"engagement": 0.6}},
		},
		nil,
	)

	_, summary, err := Run(f)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Samples != 2 || summary.Skipped != 1 {
		t.Fatalf("expected 2 accepted / 1 skipped, got %+v", summary)
	}
}

func TestCompareReportsDivergence(t *testing.T) {
	results := []Result{}
	expected := []FixtureExpectedEvent{
		{Category: "confusion_support", Urgency: "critical", OffsetMs: 2000},
	}

	divs := Compare(results, expected)
	if len(divs) != 1 {
		t.Fatalf("expected 1 divergence, got %d", len(divs))
	}
	if divs[0].Got != "" || divs[0].Expected == "" {
		t.Fatalf("unexpected divergence shape: %+v", divs[0])
	}
}

func TestCompareParsesExpectedUrgency(t *testing.T) {
	results := []Result{
		{Category: engine.CategoryFlowAffirmation, Urgency: engine.UrgencyLow, TriggeredAt: 2 * time.Second},
	}
	// Unrecognized urgency spellings parse to the low fallback, so the
	// comparison goes through the engine vocabulary, not raw strings.
	expected := []FixtureExpectedEvent{
		{Category: "flow_affirmation", Urgency: "bogus", OffsetMs: 2000},
	}

	if divs := Compare(results, expected); len(divs) != 0 {
		t.Fatalf("expected urgency to compare through the parsed form, got %+v", divs)
	}
}

func TestExpectedEventsFrom(t *testing.T) {
	f := testFixture(
		[]FixtureSample{
			{OffsetMs: 2000, Scores: map[string]float64{"confusion": 0.9}},
		},
		nil,
	)
	results, _, err := Run(f)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	exported := ExpectedEventsFrom(results)
	if len(exported) != len(results) {
		t.Fatalf("expected %d exported events, got %d", len(results), len(exported))
	}
	if len(Compare(results, exported)) != 0 {
		t.Fatal("exported expectations must match the run they came from")
	}
}
