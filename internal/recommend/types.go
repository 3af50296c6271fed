package recommend

// #region phase

// Phase identifies where the learner is in the learning cycle. Supplied
// by the caller with the session context, never derived internally.
type Phase string

const (
	PhaseIntroduction Phase = "introduction"
	PhasePractice     Phase = "practice"
	PhaseApplication  Phase = "application"
	PhaseAssessment   Phase = "assessment"
	PhaseReview       Phase = "review"
)

// Phases returns all recognized learning phases.
func Phases() []Phase {
	return []Phase{
		PhaseIntroduction, PhasePractice, PhaseApplication, PhaseAssessment, PhaseReview,
	}
}

// Known reports whether p is a recognized phase.
func Known(p Phase) bool {
	switch p {
	case PhaseIntroduction, PhasePractice, PhaseApplication, PhaseAssessment, PhaseReview:
		return true
	}
	return false
}

// #endregion phase

// #region action-tag

// ActionTag classifies the style of a suggested action.
type ActionTag string

const (
	ActionImmediate    ActionTag = "immediate"    // stop current activity
	ActionAdaptive     ActionTag = "adaptive"     // modify current approach
	ActionSupportive   ActionTag = "supportive"   // provide additional support
	ActionMotivational ActionTag = "motivational" // boost confidence or engagement
	ActionCognitive    ActionTag = "cognitive"    // address cognitive load
	ActionMonitor      ActionTag = "monitor"      // nothing specific needed
)

// #endregion action-tag

// #region recommendation

// Recommendation is the resolved payload handed to the presentation sink.
type Recommendation struct {
	Guidance  string
	Action    ActionTag
	Escalated bool
}

// #endregion recommendation
