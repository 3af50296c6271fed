package session

import (
	"time"

	"github.com/jessechan5171/emoradar/go-engine/internal/emotion"
	"github.com/jessechan5171/emoradar/go-engine/internal/engine"
	"github.com/jessechan5171/emoradar/go-engine/internal/recommend"
	"github.com/jessechan5171/emoradar/go-engine/internal/trend"
)

// #region config

// Config bundles everything a session needs at start. Immutable for the
// session's lifetime.
type Config struct {
	Capacity int // timeline entry bound; <= 0 selects the default
	Trend    trend.Config
	Engine   engine.Config
	Phase    recommend.Phase // learning-phase hint for recommendations
}

// DefaultConfig returns the standard session configuration.
func DefaultConfig() Config {
	return Config{
		Capacity: 0,
		Trend:    trend.DefaultConfig(),
		Engine:   engine.DefaultConfig(),
		Phase:    recommend.PhasePractice,
	}
}

// #endregion config

// #region resolved-event

// ResolvedEvent pairs an emitted intervention with its recommendation.
type ResolvedEvent struct {
	Event          engine.Event
	Recommendation recommend.Recommendation
}

// #endregion resolved-event

// #region snapshot

// Snapshot is the read-only view yielded to the presentation sink after
// each processed sample. The sink never mutates session state through it.
type Snapshot struct {
	SessionID string
	Offset    time.Duration
	Vector    emotion.Vector
	Trend     trend.Signal
	State     engine.State
	Event     *ResolvedEvent // at most one per processed sample
}

// #endregion snapshot

// #region summary

// DimensionStats aggregates one dimension over a session.
type DimensionStats struct {
	Mean float32
	Min  float32
	Max  float32
}

// Summary aggregates a session for the presentation sink.
type Summary struct {
	SessionID  string
	Samples    int
	Span       time.Duration
	Dimensions map[emotion.Dimension]DimensionStats
	Events     map[engine.Category]int
}

// #endregion summary
