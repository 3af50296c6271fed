package engine

import (
	"time"

	"github.com/jessechan5171/emoradar/go-engine/internal/emotion"
)

// #region category

// Category enumerates intervention categories.
type Category string

const (
	CategoryConfusionSupport   Category = "confusion_support"
	CategoryDisengagementAlert Category = "disengagement_alert"
	CategoryConfidenceBoost    Category = "confidence_boost"
	CategoryFlowAffirmation    Category = "flow_affirmation"
	CategoryNone               Category = "none"
)

// #endregion category

// #region urgency

// Urgency orders intervention categories; the highest-urgency match wins
// when multiple rules fire on the same evaluation.
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyModerate
	UrgencyHigh
	UrgencyCritical
)

func (u Urgency) String() string {
	switch u {
	case UrgencyCritical:
		return "critical"
	case UrgencyHigh:
		return "high"
	case UrgencyModerate:
		return "moderate"
	default:
		return "low"
	}
}

// UrgencyFromString parses the string form produced by Urgency.String.
func UrgencyFromString(s string) Urgency {
	switch s {
	case "critical":
		return UrgencyCritical
	case "high":
		return UrgencyHigh
	case "moderate":
		return UrgencyModerate
	default:
		return UrgencyLow
	}
}

// #endregion urgency

// #region machine-state

// MachineState names the per-session state machine positions.
type MachineState string

const (
	StateIdle      MachineState = "idle"
	StateTriggered MachineState = "triggered" // transient within a pass
	StateCooldown  MachineState = "cooldown"
)

// State is the per-session mutable intervention state. Mutated only by
// the Engine; lifetime equals the session lifetime.
type State struct {
	Machine       MachineState
	LastCategory  Category
	LastTrigger   time.Duration
	Consecutive   int
	CooldownUntil time.Duration
}

// #endregion machine-state

// #region event

// Event is an emitted intervention. Created by the Engine, consumed once
// by the recommendation resolver and the presentation sink.
type Event struct {
	Category     Category
	Urgency      Urgency
	TriggeredAt  time.Duration
	Contributing []emotion.Dimension
	Consecutive  int // identical-category triggers in a row, this one included
}

// #endregion event

// #region config

// Config holds thresholds and timing for the decision engine, supplied at
// session start and immutable for the session's lifetime.
type Config struct {
	ConfusionHigh       float32
	EngagementLow       float32
	FocusLow            float32
	ConfidenceLow       float32
	FrustrationModerate float32
	FlowHigh            float32
	VolatilityCap       float32 // max per-dimension variance counted as "stable"

	MinDwell time.Duration // sustained time required for disengagement
	Cooldown time.Duration // quiet period after a trigger

	EscalateAfter int // consecutive identical triggers before urgency escalates
}

// DefaultConfig returns thresholds tuned for a sampling cadence of a few
// seconds per frame.
func DefaultConfig() Config {
	return Config{
		ConfusionHigh:       0.75,
		EngagementLow:       0.30,
		FocusLow:            0.35,
		ConfidenceLow:       0.30,
		FrustrationModerate: 0.55,
		FlowHigh:            0.75,
		VolatilityCap:       0.02,
		MinDwell:            10 * time.Second,
		Cooldown:            45 * time.Second,
		EscalateAfter:       3,
	}
}

// #endregion config
