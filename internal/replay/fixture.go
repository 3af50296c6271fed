package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jessechan5171/emoradar/go-engine/internal/engine"
	"github.com/jessechan5171/emoradar/go-engine/internal/recommend"
	"github.com/jessechan5171/emoradar/go-engine/internal/session"
	"github.com/jessechan5171/emoradar/go-engine/internal/trend"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: a
// recorded sample stream plus the events the engine is expected to emit
// for it.
type Fixture struct {
	Description    string                 `json:"description"`
	Config         FixtureConfig          `json:"config"`
	Phase          string                 `json:"phase"`
	Samples        []FixtureSample        `json:"samples"`
	ExpectedEvents []FixtureExpectedEvent `json:"expected_events"`
}

// FixtureSample is one raw sample with a session-relative offset.
type FixtureSample struct {
	OffsetMs   int64              `json:"offset_ms"`
	Scores     map[string]float64 `json:"scores"`
	Confidence float32            `json:"confidence,omitempty"`
}

// FixtureExpectedEvent captures one expected intervention.
type FixtureExpectedEvent struct {
	Category string `json:"category"`
	Urgency  string `json:"urgency"`
	OffsetMs int64  `json:"offset_ms"`
}

// FixtureConfig mirrors session.Config with JSON tags. Durations are
// stored as milliseconds so fixtures stay plain numbers.
type FixtureConfig struct {
	Capacity int                 `json:"capacity"`
	Trend    FixtureTrendConfig  `json:"trend"`
	Engine   FixtureEngineConfig `json:"engine"`
}

// FixtureTrendConfig mirrors trend.Config with JSON tags.
type FixtureTrendConfig struct {
	WindowEntries int     `json:"window_entries"`
	RecentWeight  float32 `json:"recent_weight"`
}

// FixtureEngineConfig mirrors engine.Config with JSON tags.
type FixtureEngineConfig struct {
	ConfusionHigh       float32 `json:"confusion_high"`
	EngagementLow       float32 `json:"engagement_low"`
	FocusLow            float32 `json:"focus_low"`
	ConfidenceLow       float32 `json:"confidence_low"`
	FrustrationModerate float32 `json:"frustration_moderate"`
	FlowHigh            float32 `json:"flow_high"`
	VolatilityCap       float32 `json:"volatility_cap"`
	MinDwellMs          int64   `json:"min_dwell_ms"`
	CooldownMs          int64   `json:"cooldown_ms"`
	EscalateAfter       int     `json:"escalate_after"`
}

// #endregion fixture-types

// #region fixture-io

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// SaveFixture writes a fixture as indented JSON.
func SaveFixture(path string, f *Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encode fixture: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// #endregion fixture-io

// #region fixture-convert

// ToSessionConfig converts a FixtureConfig plus phase to a domain
// session.Config.
func (fc FixtureConfig) ToSessionConfig(phase string) session.Config {
	return session.Config{
		Capacity: fc.Capacity,
		Trend: trend.Config{
			WindowEntries: fc.Trend.WindowEntries,
			RecentWeight:  fc.Trend.RecentWeight,
		},
		Engine: engine.Config{
			ConfusionHigh:       fc.Engine.ConfusionHigh,
			EngagementLow:       fc.Engine.EngagementLow,
			FocusLow:            fc.Engine.FocusLow,
			ConfidenceLow:       fc.Engine.ConfidenceLow,
			FrustrationModerate: fc.Engine.FrustrationModerate,
			FlowHigh:            fc.Engine.FlowHigh,
			VolatilityCap:       fc.Engine.VolatilityCap,
			MinDwell:            time.Duration(fc.Engine.MinDwellMs) * time.Millisecond,
			Cooldown:            time.Duration(fc.Engine.CooldownMs) * time.Millisecond,
			EscalateAfter:       fc.Engine.EscalateAfter,
		},
		Phase: recommend.Phase(phase),
	}
}

// FixtureConfigFrom converts a domain session.Config to the JSON shape.
func FixtureConfigFrom(cfg session.Config) FixtureConfig {
	return FixtureConfig{
		Capacity: cfg.Capacity,
		Trend: FixtureTrendConfig{
			WindowEntries: cfg.Trend.WindowEntries,
			RecentWeight:  cfg.Trend.RecentWeight,
		},
		Engine: FixtureEngineConfig{
			ConfusionHigh:       cfg.Engine.ConfusionHigh,
			EngagementLow:       cfg.Engine.EngagementLow,
			FocusLow:            cfg.Engine.FocusLow,
			ConfidenceLow:       cfg.Engine.ConfidenceLow,
			FrustrationModerate: cfg.Engine.FrustrationModerate,
			FlowHigh:            cfg.Engine.FlowHigh,
			VolatilityCap:       cfg.Engine.VolatilityCap,
			MinDwellMs:          cfg.Engine.MinDwell.Milliseconds(),
			CooldownMs:          cfg.Engine.Cooldown.Milliseconds(),
			EscalateAfter:       cfg.Engine.EscalateAfter,
		},
	}
}

// #endregion fixture-convert
