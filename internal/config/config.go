package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jessechan5171/emoradar/go-engine/internal/engine"
	"github.com/jessechan5171/emoradar/go-engine/internal/recommend"
	"github.com/jessechan5171/emoradar/go-engine/internal/session"
	"github.com/jessechan5171/emoradar/go-engine/internal/trend"
)

// #region config

// Config is the on-disk TOML configuration for a monitoring run.
// Durations are expressed in milliseconds so config files stay plain
// numbers.
type Config struct {
	ArchivePath string `toml:"archive_path"`

	Session SessionConfig `toml:"session"`
	Trend   TrendConfig   `toml:"trend"`
	Engine  EngineConfig  `toml:"engine"`
}

type SessionConfig struct {
	Capacity int    `toml:"capacity"`
	Phase    string `toml:"phase"`
}

type TrendConfig struct {
	WindowEntries int     `toml:"window_entries"`
	RecentWeight  float32 `toml:"recent_weight"`
}

type EngineConfig struct {
	ConfusionHigh       float32 `toml:"confusion_high"`
	EngagementLow       float32 `toml:"engagement_low"`
	FocusLow            float32 `toml:"focus_low"`
	ConfidenceLow       float32 `toml:"confidence_low"`
	FrustrationModerate float32 `toml:"frustration_moderate"`
	FlowHigh            float32 `toml:"flow_high"`
	VolatilityCap       float32 `toml:"volatility_cap"`
	MinDwellMs          int64   `toml:"min_dwell_ms"`
	CooldownMs          int64   `toml:"cooldown_ms"`
	EscalateAfter       int     `toml:"escalate_after"`
}

// #endregion config

// #region defaults

// Default returns config with the standard thresholds and timings.
func Default() Config {
	engineDefaults := engine.DefaultConfig()
	trendDefaults := trend.DefaultConfig()
	return Config{
		ArchivePath: "emoradar.db",
		Session: SessionConfig{
			Capacity: 120,
			Phase:    string(recommend.PhasePractice),
		},
		Trend: TrendConfig{
			WindowEntries: trendDefaults.WindowEntries,
			RecentWeight:  trendDefaults.RecentWeight,
		},
		Engine: EngineConfig{
			ConfusionHigh:       engineDefaults.ConfusionHigh,
			EngagementLow:       engineDefaults.EngagementLow,
			FocusLow:            engineDefaults.FocusLow,
			ConfidenceLow:       engineDefaults.ConfidenceLow,
			FrustrationModerate: engineDefaults.FrustrationModerate,
			FlowHigh:            engineDefaults.FlowHigh,
			VolatilityCap:       engineDefaults.VolatilityCap,
			MinDwellMs:          engineDefaults.MinDwell.Milliseconds(),
			CooldownMs:          engineDefaults.Cooldown.Milliseconds(),
			EscalateAfter:       engineDefaults.EscalateAfter,
		},
	}
}

// #endregion defaults

// #region load

// Load reads a TOML config file over the defaults. An empty path returns
// the defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if !recommend.Known(recommend.Phase(c.Session.Phase)) {
		return fmt.Errorf("config: unknown learning phase %q", c.Session.Phase)
	}
	if c.Trend.RecentWeight < 0 || c.Trend.RecentWeight > 1 {
		return fmt.Errorf("config: recent_weight %f out of [0,1]", c.Trend.RecentWeight)
	}
	return nil
}

// ToSessionConfig converts the file shape to a domain session.Config.
func (c Config) ToSessionConfig() session.Config {
	return session.Config{
		Capacity: c.Session.Capacity,
		Trend: trend.Config{
			WindowEntries: c.Trend.WindowEntries,
			RecentWeight:  c.Trend.RecentWeight,
		},
		Engine: engine.Config{
			ConfusionHigh:       c.Engine.ConfusionHigh,
			EngagementLow:       c.Engine.EngagementLow,
			FocusLow:            c.Engine.FocusLow,
			ConfidenceLow:       c.Engine.ConfidenceLow,
			FrustrationModerate: c.Engine.FrustrationModerate,
			FlowHigh:            c.Engine.FlowHigh,
			VolatilityCap:       c.Engine.VolatilityCap,
			MinDwell:            time.Duration(c.Engine.MinDwellMs) * time.Millisecond,
			Cooldown:            time.Duration(c.Engine.CooldownMs) * time.Millisecond,
			EscalateAfter:       c.Engine.EscalateAfter,
		},
		Phase: recommend.Phase(c.Session.Phase),
	}
}

// #endregion load
