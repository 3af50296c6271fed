package trend

import (
	"github.com/jessechan5171/emoradar/go-engine/internal/emotion"
	"github.com/jessechan5171/emoradar/go-engine/internal/timeline"
)

// #region analyzer

// Analyzer derives smoothed values, short-horizon slope, and volatility
// from a timeline window. It never mutates the window.
type Analyzer struct {
	config Config
}

// NewAnalyzer creates an analyzer. Zero config fields fall back to defaults.
func NewAnalyzer(config Config) *Analyzer {
	def := DefaultConfig()
	if config.WindowEntries <= 0 {
		config.WindowEntries = def.WindowEntries
	}
	if config.RecentWeight <= 0 || config.RecentWeight > 1 {
		config.RecentWeight = def.RecentWeight
	}
	return &Analyzer{config: config}
}

// #endregion analyzer

// #region analyze

// Analyze computes per-dimension trend signals over the window, oldest
// entry first. With fewer than 2 entries, slope and volatility are zero:
// insufficient history is a normal cold-start condition, not a fault.
func (a *Analyzer) Analyze(window []timeline.Entry) Signal {
	if len(window) == 0 {
		return Signal{}
	}
	if len(window) > a.config.WindowEntries {
		window = window[len(window)-a.config.WindowEntries:]
	}

	span := window[len(window)-1].Offset - window[0].Offset
	trends := make(map[emotion.Dimension]DimensionTrend, len(emotion.Dimensions()))

	for _, d := range emotion.Dimensions() {
		series := make([]float32, len(window))
		for i, e := range window {
			series[i] = e.Vector.Get(d)
		}

		smoothedStart, smoothedEnd := smooth(series, a.config.RecentWeight)

		var slope float32
		if len(series) >= 2 && span > 0 {
			slope = (smoothedEnd - smoothedStart) / float32(span.Seconds())
		}

		trends[d] = DimensionTrend{
			Smoothed:   smoothedEnd,
			Slope:      slope,
			Volatility: sampleVariance(series),
		}
	}

	return Signal{
		Trends:  trends,
		Samples: len(window),
		Span:    span,
	}
}

// #endregion analyze

// #region helpers

// smooth runs an exponential moving average over the series and returns
// the smoothed value after the first sample and after the last.
func smooth(series []float32, recentWeight float32) (start, end float32) {
	s := series[0]
	start = s
	for _, v := range series[1:] {
		s = recentWeight*v + (1-recentWeight)*s
	}
	return start, s
}

// sampleVariance computes the unbiased sample variance.
// Fewer than 2 samples yields 0.
func sampleVariance(series []float32) float32 {
	if len(series) < 2 {
		return 0
	}
	var sum float64
	for _, v := range series {
		sum += float64(v)
	}
	mean := sum / float64(len(series))
	var variance float64
	for _, v := range series {
		d := float64(v) - mean
		variance += d * d
	}
	return float32(variance / float64(len(series)-1))
}

// #endregion helpers
