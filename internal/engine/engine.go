package engine

import (
	"log"
	"time"

	"github.com/jessechan5171/emoradar/go-engine/internal/emotion"
)

// #region engine

// Engine is the stateful per-session intervention evaluator. It consumes
// the current vector plus trend signals on each pass and emits at most one
// intervention event, respecting cooldown and the fixed urgency ranking.
// Not safe for concurrent use; each session owns exactly one Engine.
type Engine struct {
	config Config
	rules  []Rule
	state  State
}

// NewEngine creates an engine in the Idle state.
func NewEngine(config Config) *Engine {
	def := DefaultConfig()
	if config.Cooldown <= 0 {
		config.Cooldown = def.Cooldown
	}
	if config.MinDwell <= 0 {
		config.MinDwell = def.MinDwell
	}
	if config.EscalateAfter <= 0 {
		config.EscalateAfter = def.EscalateAfter
	}
	return &Engine{
		config: config,
		rules:  rules(),
		state:  State{Machine: StateIdle, LastCategory: CategoryNone},
	}
}

// State returns a copy of the current intervention state.
func (e *Engine) State() State {
	return e.state
}

// #endregion engine

// #region evaluate

// Evaluate runs one pass over the rule set. Returns the single
// highest-urgency event, or nil when nothing fires or the engine is in
// cooldown. Malformed or incomplete trend input never raises: the engine
// emits nothing for that pass and stays usable, without disturbing an
// active cooldown.
func (e *Engine) Evaluate(now time.Duration, in RuleInput) *Event {
	// Incomplete trend input suppresses emission for this pass only;
	// cooldown bookkeeping must survive degraded frames.
	if !in.Trend.Complete() {
		log.Printf("[ENGINE] incomplete trend signal at %s, suppressing evaluation", now)
		if e.state.Machine != StateCooldown {
			e.state.Machine = StateIdle
		}
		return nil
	}

	// Cooldown suppresses all emission, even a newly matching
	// higher-urgency condition, until it elapses.
	if e.state.Machine == StateCooldown {
		if now < e.state.CooldownUntil {
			return nil
		}
		e.state.Machine = StateIdle
	}

	// Rules are ordered by descending urgency; first match wins.
	for _, r := range e.rules {
		if !r.Match(e.config, in) {
			continue
		}
		return e.trigger(now, r)
	}
	return nil
}

// trigger records the match in the intervention state and emits the event.
func (e *Engine) trigger(now time.Duration, r Rule) *Event {
	e.state.Machine = StateTriggered

	if r.Category == e.state.LastCategory {
		e.state.Consecutive++
	} else {
		e.state.Consecutive = 1
	}
	e.state.LastCategory = r.Category
	e.state.LastTrigger = now
	e.state.CooldownUntil = now + e.config.Cooldown

	urgency := r.Urgency
	if e.state.Consecutive >= e.config.EscalateAfter && urgency < UrgencyCritical {
		urgency++
	}

	ev := &Event{
		Category:     r.Category,
		Urgency:      urgency,
		TriggeredAt:  now,
		Contributing: append([]emotion.Dimension(nil), r.Contributing...),
		Consecutive:  e.state.Consecutive,
	}

	e.state.Machine = StateCooldown
	log.Printf("[ENGINE] triggered %s (urgency=%s consecutive=%d) at %s",
		ev.Category, ev.Urgency, ev.Consecutive, now)
	return ev
}

// #endregion evaluate
