package recommend

import (
	"testing"

	"github.com/jessechan5171/emoradar/go-engine/internal/engine"
)

var allCategories = []engine.Category{
	engine.CategoryConfusionSupport,
	engine.CategoryDisengagementAlert,
	engine.CategoryConfidenceBoost,
	engine.CategoryFlowAffirmation,
}

func TestResolveNonEmptyForEveryPair(t *testing.T) {
	phases := append(Phases(), Phase("cramming"), Phase(""))

	for _, cat := range allCategories {
		for _, phase := range phases {
			rec := Resolve(engine.Event{Category: cat, Consecutive: 1}, phase)
			if rec.Guidance == "" {
				t.Fatalf("(%s, %s): empty guidance", cat, phase)
			}
			if rec.Action == "" {
				t.Fatalf("(%s, %s): empty action tag", cat, phase)
			}
		}
	}
}

func TestResolveUnknownPhaseFallsBackToCategoryDefault(t *testing.T) {
	known := Resolve(engine.Event{Category: engine.CategoryConfusionSupport, Consecutive: 1}, PhasePractice)
	unknown := Resolve(engine.Event{Category: engine.CategoryConfusionSupport, Consecutive: 1}, Phase("siesta"))

	if unknown.Guidance == known.Guidance {
		t.Fatal("unknown phase should use the category default, not a phase entry")
	}
	if unknown.Guidance == "" {
		t.Fatal("category default must be non-empty")
	}
}

func TestResolveUnknownCategoryReturnsMonitor(t *testing.T) {
	rec := Resolve(engine.Event{Category: engine.Category("existential_dread"), Consecutive: 1}, PhasePractice)

	if rec.Action != ActionMonitor {
		t.Fatalf("expected monitor action, got %s", rec.Action)
	}
	if rec.Guidance == "" {
		t.Fatal("monitor recommendation must carry guidance")
	}
}

func TestResolveNoneCategoryReturnsMonitor(t *testing.T) {
	rec := Resolve(engine.Event{Category: engine.CategoryNone, Consecutive: 1}, PhaseReview)
	if rec.Action != ActionMonitor {
		t.Fatalf("expected monitor action for none category, got %s", rec.Action)
	}
}

func TestResolveEscalatesTone(t *testing.T) {
	base := Resolve(engine.Event{Category: engine.CategoryDisengagementAlert, Consecutive: 2}, PhasePractice)
	escalated := Resolve(engine.Event{Category: engine.CategoryDisengagementAlert, Consecutive: 3}, PhasePractice)

	if base.Escalated {
		t.Fatal("second consecutive trigger should not escalate")
	}
	if !escalated.Escalated {
		t.Fatal("third consecutive trigger should escalate")
	}
	if escalated.Guidance == base.Guidance {
		t.Fatal("escalated phrasing should differ from the base recommendation")
	}
	if escalated.Action != ActionImmediate {
		t.Fatalf("escalated disengagement should demand immediate action, got %s", escalated.Action)
	}
}

func TestResolveIsPure(t *testing.T) {
	ev := engine.Event{Category: engine.CategoryConfidenceBoost, Consecutive: 1}
	first := Resolve(ev, PhaseAssessment)
	second := Resolve(ev, PhaseAssessment)

	if first != second {
		t.Fatalf("resolver must be deterministic: %+v vs %+v", first, second)
	}
}
