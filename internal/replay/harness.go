package replay

import (
	"time"

	"github.com/jessechan5171/emoradar/go-engine/internal/engine"
	"github.com/jessechan5171/emoradar/go-engine/internal/session"
)

// #region types

// Result captures one event emitted while replaying a fixture.
type Result struct {
	Category    engine.Category
	Urgency     engine.Urgency
	TriggeredAt time.Duration
	Guidance    string
}

// Divergence is one mismatch between a replayed event stream and the
// fixture's expectation.
type Divergence struct {
	Index    int
	Expected string // empty when the replay emitted an extra event
	Got      string // empty when an expected event never fired
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	Samples  int
	Skipped  int // malformed or out-of-order samples dropped
	Events   int
	Expected int
	Diverged int
}

// #endregion types

// #region run

// Run replays a fixture's sample stream through a fresh session and
// collects every emitted event. Samples that fail normalization or
// ordering are skipped, matching live behavior.
func Run(f *Fixture) ([]Result, Summary, error) {
	cfg := f.Config.ToSessionConfig(f.Phase)
	sess := session.New(cfg)

	var results []Result
	summary := Summary{Expected: len(f.ExpectedEvents)}

	for _, sample := range f.Samples {
		raw := make(map[string]any, len(sample.Scores))
		for name, v := range sample.Scores {
			raw[name] = v
		}

		offset := time.Duration(sample.OffsetMs) * time.Millisecond
		snap, err := sess.Process(offset, raw, sample.Confidence)
		if err != nil {
			summary.Skipped++
			continue
		}
		summary.Samples++

		if snap.Event != nil {
			results = append(results, Result{
				Category:    snap.Event.Event.Category,
				Urgency:     snap.Event.Event.Urgency,
				TriggeredAt: snap.Event.Event.TriggeredAt,
				Guidance:    snap.Event.Recommendation.Guidance,
			})
		}
	}

	summary.Events = len(results)
	divergences := Compare(results, f.ExpectedEvents)
	summary.Diverged = len(divergences)
	return results, summary, nil
}

// #endregion run

// #region compare

// Compare checks a replayed event stream against the fixture's
// expectations, position by position.
func Compare(results []Result, expected []FixtureExpectedEvent) []Divergence {
	var out []Divergence

	n := len(results)
	if len(expected) > n {
		n = len(expected)
	}
	for i := 0; i < n; i++ {
		var exp, got string
		if i < len(expected) {
			exp = describeExpected(expected[i])
		}
		if i < len(results) {
			got = describeResult(results[i])
		}
		if exp != got {
			out = append(out, Divergence{Index: i, Expected: exp, Got: got})
		}
	}
	return out
}

// describeExpected renders an expectation in the same canonical form as
// a result: the urgency string is parsed back through the engine's
// vocabulary so comparison never depends on fixture spelling.
func describeExpected(e FixtureExpectedEvent) string {
	return e.Category + "/" + engine.UrgencyFromString(e.Urgency).String() + "@" +
		(time.Duration(e.OffsetMs) * time.Millisecond).String()
}

func describeResult(r Result) string {
	return string(r.Category) + "/" + r.Urgency.String() + "@" + r.TriggeredAt.String()
}

// ExpectedEventsFrom converts replayed results into the fixture
// expectation shape, used when exporting a recorded session as a new
// regression baseline.
func ExpectedEventsFrom(results []Result) []FixtureExpectedEvent {
	out := make([]FixtureExpectedEvent, len(results))
	for i, r := range results {
		out[i] = FixtureExpectedEvent{
			Category: string(r.Category),
			Urgency:  r.Urgency.String(),
			OffsetMs: r.TriggeredAt.Milliseconds(),
		}
	}
	return out
}

// #endregion compare
