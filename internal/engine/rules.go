package engine

import (
	"github.com/jessechan5171/emoradar/go-engine/internal/emotion"
	"github.com/jessechan5171/emoradar/go-engine/internal/timeline"
	"github.com/jessechan5171/emoradar/go-engine/internal/trend"
)

// #region rule-input

// RuleInput bundles everything a rule predicate may inspect for one
// evaluation: the current vector, the derived trend signal, and the raw
// window the signal was computed from.
type RuleInput struct {
	Current emotion.Vector
	Trend   trend.Signal
	Window  []timeline.Entry
}

// #endregion rule-input

// #region rule

// Rule is a declarative category matcher. The rule set is evaluated in
// order of descending urgency and the first match is emitted, which keeps
// the tie-break in one place instead of duplicated per branch.
type Rule struct {
	Category     Category
	Urgency      Urgency
	Contributing []emotion.Dimension
	Match        func(cfg Config, in RuleInput) bool
}

// rules returns the built-in rule set, highest urgency first.
func rules() []Rule {
	return []Rule{
		{
			Category:     CategoryConfusionSupport,
			Urgency:      UrgencyCritical,
			Contributing: []emotion.Dimension{emotion.Confusion},
			Match:        matchConfusionSupport,
		},
		{
			Category:     CategoryDisengagementAlert,
			Urgency:      UrgencyHigh,
			Contributing: []emotion.Dimension{emotion.Engagement, emotion.Focus},
			Match:        matchDisengagementAlert,
		},
		{
			Category:     CategoryConfidenceBoost,
			Urgency:      UrgencyModerate,
			Contributing: []emotion.Dimension{emotion.Confidence, emotion.Frustration},
			Match:        matchConfidenceBoost,
		},
		{
			Category:     CategoryFlowAffirmation,
			Urgency:      UrgencyLow,
			Contributing: []emotion.Dimension{emotion.Engagement, emotion.Confidence},
			Match:        matchFlowAffirmation,
		},
	}
}

// #endregion rule

// #region predicates

// matchConfusionSupport: confusion high and rising or sustained over the
// window. A zero slope (cold start included) counts as sustained.
func matchConfusionSupport(cfg Config, in RuleInput) bool {
	if in.Current.Get(emotion.Confusion) < cfg.ConfusionHigh {
		return false
	}
	return in.Trend.Trends[emotion.Confusion].Slope >= 0
}

// matchDisengagementAlert: engagement and focus low across the whole
// evaluated window, sustained for at least the minimum dwell duration.
// Requiring every window entry to qualify suppresses single-sample blips.
func matchDisengagementAlert(cfg Config, in RuleInput) bool {
	if len(in.Window) < 2 || in.Trend.Span < cfg.MinDwell {
		return false
	}
	for _, e := range in.Window {
		if e.Vector.Get(emotion.Engagement) > cfg.EngagementLow {
			return false
		}
		if e.Vector.Get(emotion.Focus) > cfg.FocusLow {
			return false
		}
	}
	return true
}

// matchConfidenceBoost: confidence low while frustration is at least
// moderate.
func matchConfidenceBoost(cfg Config, in RuleInput) bool {
	return in.Current.Get(emotion.Confidence) <= cfg.ConfidenceLow &&
		in.Current.Get(emotion.Frustration) >= cfg.FrustrationModerate
}

// matchFlowAffirmation: stable optimal state — engagement and confidence
// high with low volatility on both.
func matchFlowAffirmation(cfg Config, in RuleInput) bool {
	if in.Current.Get(emotion.Engagement) < cfg.FlowHigh {
		return false
	}
	if in.Current.Get(emotion.Confidence) < cfg.FlowHigh {
		return false
	}
	return in.Trend.Trends[emotion.Engagement].Volatility <= cfg.VolatilityCap &&
		in.Trend.Trends[emotion.Confidence].Volatility <= cfg.VolatilityCap
}

// #endregion predicates
