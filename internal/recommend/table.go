package recommend

import "github.com/jessechan5171/emoradar/go-engine/internal/engine"

// #region strategy-table

// strategyTable maps (category, phase) to evidence-based guidance.
var strategyTable = map[engine.Category]map[Phase]Recommendation{
	engine.CategoryConfusionSupport: {
		PhaseIntroduction: {
			Guidance: "Return to the prerequisite concepts and review the basics before continuing",
			Action:   ActionAdaptive,
		},
		PhasePractice: {
			Guidance: "Break the current problem into smaller steps and practice with easier examples first",
			Action:   ActionAdaptive,
		},
		PhaseApplication: {
			Guidance: "Find a real-world analogy that relates the concept to your own experience",
			Action:   ActionAdaptive,
		},
		PhaseAssessment: {
			Guidance: "Identify the specific points of confusion and ask targeted questions about them",
			Action:   ActionCognitive,
		},
		PhaseReview: {
			Guidance: "Create a concept map to organize the related ideas",
			Action:   ActionCognitive,
		},
	},
	engine.CategoryDisengagementAlert: {
		PhaseIntroduction: {
			Guidance: "Connect the material to your personal interests or goals before diving deeper",
			Action:   ActionMotivational,
		},
		PhasePractice: {
			Guidance: "Switch to a more interactive method or a hands-on exercise",
			Action:   ActionAdaptive,
		},
		PhaseApplication: {
			Guidance: "Apply the concept through a small project you actually care about",
			Action:   ActionAdaptive,
		},
		PhaseAssessment: {
			Guidance: "Set a short, clearly scoped objective with a reward at the end",
			Action:   ActionMotivational,
		},
		PhaseReview: {
			Guidance: "Change your study environment and set shorter sessions with clear objectives",
			Action:   ActionSupportive,
		},
	},
	engine.CategoryConfidenceBoost: {
		PhaseIntroduction: {
			Guidance: "Start with easier problems to build momentum",
			Action:   ActionMotivational,
		},
		PhasePractice: {
			Guidance: "Work with templates or guided practice before trying unassisted",
			Action:   ActionAdaptive,
		},
		PhaseApplication: {
			Guidance: "Break the challenge into very small pieces and celebrate each one",
			Action:   ActionSupportive,
		},
		PhaseAssessment: {
			Guidance: "Review your recent successes before attempting the next question",
			Action:   ActionMotivational,
		},
		PhaseReview: {
			Guidance: "Focus on effort and improvement rather than perfection",
			Action:   ActionMotivational,
		},
	},
	engine.CategoryFlowAffirmation: {
		PhaseIntroduction: {
			Guidance: "Strong start: keep the current pace and explore one adjacent idea",
			Action:   ActionSupportive,
		},
		PhasePractice: {
			Guidance: "Increase the challenge level to maintain optimal difficulty",
			Action:   ActionAdaptive,
		},
		PhaseApplication: {
			Guidance: "Apply the concept to a creative or novel problem",
			Action:   ActionAdaptive,
		},
		PhaseAssessment: {
			Guidance: "Excellent state for assessment: continue with your current approach",
			Action:   ActionSupportive,
		},
		PhaseReview: {
			Guidance: "Teach the concept to someone else to deepen understanding",
			Action:   ActionAdaptive,
		},
	},
}

// categoryDefaults back a category when the phase is absent or unrecognized.
var categoryDefaults = map[engine.Category]Recommendation{
	engine.CategoryConfusionSupport: {
		Guidance: "Write a summary of what you do understand so far, then name the specific point of confusion",
		Action:   ActionCognitive,
	},
	engine.CategoryDisengagementAlert: {
		Guidance: "Find the why behind what you're learning and set a small, achievable milestone",
		Action:   ActionMotivational,
	},
	engine.CategoryConfidenceBoost: {
		Guidance: "Remind yourself that struggle is part of learning and review the progress already made",
		Action:   ActionSupportive,
	},
	engine.CategoryFlowAffirmation: {
		Guidance: "You're in an excellent learning state: continue your current approach",
		Action:   ActionSupportive,
	},
}

// escalatedTone replaces the phrasing after repeated identical triggers.
var escalatedTone = map[engine.Category]Recommendation{
	engine.CategoryConfusionSupport: {
		Guidance: "Stop and seek clarification now: approach the topic from a different angle or with a tutor before continuing",
		Action:   ActionImmediate,
	},
	engine.CategoryDisengagementAlert: {
		Guidance: "Step away for a short break, then restart with a different, more interactive activity",
		Action:   ActionImmediate,
	},
	engine.CategoryConfidenceBoost: {
		Guidance: "Pause here and rebuild momentum on problems you can already solve before returning",
		Action:   ActionImmediate,
	},
	engine.CategoryFlowAffirmation: {
		Guidance: "Sustained flow: document your insights and consider raising the difficulty",
		Action:   ActionAdaptive,
	},
}

// monitorRecommendation is the generic fallback for unknown categories.
var monitorRecommendation = Recommendation{
	Guidance: "Continue monitoring learner progress",
	Action:   ActionMonitor,
}

// #endregion strategy-table
