package trend

import (
	"time"

	"github.com/jessechan5171/emoradar/go-engine/internal/emotion"
)

// #region dimension-trend

// DimensionTrend carries the derived signals for one dimension.
type DimensionTrend struct {
	Smoothed   float32 // decay-weighted value favoring recent samples
	Slope      float32 // change in smoothed value per second over the window
	Volatility float32 // sample variance over the window
}

// #endregion dimension-trend

// #region signal

// Signal is the ephemeral derived view over one evaluation window.
// It is recomputed per pass and never persisted.
type Signal struct {
	Trends  map[emotion.Dimension]DimensionTrend
	Samples int
	Span    time.Duration // elapsed time between first and last window entry
}

// Complete reports whether the signal carries usable trend data.
func (s Signal) Complete() bool {
	return s.Samples > 0 && len(s.Trends) > 0
}

// #endregion signal

// #region config

// Config holds smoothing parameters for the analyzer.
type Config struct {
	WindowEntries int     // entries evaluated per pass
	RecentWeight  float32 // exponential decay weight on the newest sample, (0, 1]
}

// DefaultConfig favors recent samples roughly 70/30 over the window.
func DefaultConfig() Config {
	return Config{
		WindowEntries: 12,
		RecentWeight:  0.7,
	}
}

// #endregion config
