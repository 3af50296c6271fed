package recommend

import "github.com/jessechan5171/emoradar/go-engine/internal/engine"

// #region resolve

// escalateAfter matches the engine default: the third consecutive
// identical-category trigger switches to firmer phrasing.
const escalateAfter = 3

// Resolve maps a triggered intervention and an optional learning-phase
// hint to concrete guidance. Pure lookup: falls back to a category-only
// default when the phase is absent or unrecognized, and to a generic
// monitor recommendation for an unknown category. Never fails.
func Resolve(ev engine.Event, phase Phase) Recommendation {
	if ev.Consecutive >= escalateAfter {
		if rec, ok := escalatedTone[ev.Category]; ok {
			rec.Escalated = true
			return rec
		}
	}

	if phases, ok := strategyTable[ev.Category]; ok {
		if rec, ok := phases[phase]; ok {
			return rec
		}
		if rec, ok := categoryDefaults[ev.Category]; ok {
			return rec
		}
	}

	return monitorRecommendation
}

// #endregion resolve
