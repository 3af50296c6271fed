package trend

import (
	"math"
	"testing"
	"time"

	"github.com/jessechan5171/emoradar/go-engine/internal/emotion"
	"github.com/jessechan5171/emoradar/go-engine/internal/timeline"
)

func seriesWindow(confusion ...float32) []timeline.Entry {
	entries := make([]timeline.Entry, len(confusion))
	for i, c := range confusion {
		entries[i] = timeline.Entry{
			Offset: time.Duration(i+1) * time.Second,
			Vector: emotion.FromValues(map[emotion.Dimension]float32{emotion.Confusion: c}),
		}
	}
	return entries
}

func TestAnalyzeEmptyWindow(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	sig := a.Analyze(nil)

	if sig.Complete() {
		t.Fatal("empty window should yield an incomplete signal")
	}
	if sig.Samples != 0 {
		t.Fatalf("expected 0 samples, got %d", sig.Samples)
	}
}

func TestAnalyzeSingleEntryColdStart(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	sig := a.Analyze(seriesWindow(0.8))

	if !sig.Complete() {
		t.Fatal("single entry should still yield a complete signal")
	}
	for d, tr := range sig.Trends {
		if tr.Slope != 0 {
			t.Fatalf("%s: expected zero slope on cold start, got %f", d, tr.Slope)
		}
		if tr.Volatility != 0 {
			t.Fatalf("%s: expected zero volatility on cold start, got %f", d, tr.Volatility)
		}
	}
	if got := sig.Trends[emotion.Confusion].Smoothed; got != 0.8 {
		t.Fatalf("expected smoothed 0.8, got %f", got)
	}
}

func TestAnalyzeRisingSlope(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	sig := a.Analyze(seriesWindow(0.1, 0.3, 0.5, 0.7, 0.9))

	tr := sig.Trends[emotion.Confusion]
	if tr.Slope <= 0 {
		t.Fatalf("expected positive slope for rising series, got %f", tr.Slope)
	}
	if tr.Smoothed <= 0.5 {
		t.Fatalf("smoothed value should favor recent samples, got %f", tr.Smoothed)
	}
}

func TestAnalyzeFallingSlope(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	sig := a.Analyze(seriesWindow(0.9, 0.7, 0.5, 0.3, 0.1))

	if got := sig.Trends[emotion.Confusion].Slope; got >= 0 {
		t.Fatalf("expected negative slope for falling series, got %f", got)
	}
}

func TestAnalyzeConstantSeries(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	sig := a.Analyze(seriesWindow(0.6, 0.6, 0.6, 0.6))

	tr := sig.Trends[emotion.Confusion]
	if tr.Slope != 0 {
		t.Fatalf("expected zero slope for constant series, got %f", tr.Slope)
	}
	if tr.Volatility != 0 {
		t.Fatalf("expected zero volatility for constant series, got %f", tr.Volatility)
	}
	if math.Abs(float64(tr.Smoothed-0.6)) > 1e-6 {
		t.Fatalf("expected smoothed 0.6, got %f", tr.Smoothed)
	}
}

func TestAnalyzeVolatileSeries(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	calm := a.Analyze(seriesWindow(0.5, 0.52, 0.49, 0.51))
	noisy := a.Analyze(seriesWindow(0.1, 0.9, 0.1, 0.9))

	calmVol := calm.Trends[emotion.Confusion].Volatility
	noisyVol := noisy.Trends[emotion.Confusion].Volatility
	if noisyVol <= calmVol {
		t.Fatalf("noisy series should be more volatile: calm=%f noisy=%f", calmVol, noisyVol)
	}
}

func TestAnalyzeSmoothingFavorsRecent(t *testing.T) {
	a := NewAnalyzer(Config{WindowEntries: 12, RecentWeight: 0.7})
	sig := a.Analyze(seriesWindow(0.0, 0.0, 0.0, 1.0))

	// With recent weight 0.7 the last sample dominates the smoothed value.
	if got := sig.Trends[emotion.Confusion].Smoothed; got < 0.65 {
		t.Fatalf("expected smoothed value near the recent sample, got %f", got)
	}
}

func TestAnalyzeRespectsWindowBound(t *testing.T) {
	a := NewAnalyzer(Config{WindowEntries: 3, RecentWeight: 0.7})
	sig := a.Analyze(seriesWindow(0.9, 0.9, 0.1, 0.1, 0.1))

	if sig.Samples != 3 {
		t.Fatalf("expected window truncated to 3 samples, got %d", sig.Samples)
	}
	// Only the trailing constant run is evaluated.
	if got := sig.Trends[emotion.Confusion].Volatility; got != 0 {
		t.Fatalf("expected zero volatility over truncated window, got %f", got)
	}
}

func TestAnalyzeAllDimensionsPresent(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	sig := a.Analyze(seriesWindow(0.4, 0.5))

	for _, d := range emotion.Dimensions() {
		if _, ok := sig.Trends[d]; !ok {
			t.Fatalf("missing trend for dimension %s", d)
		}
	}
}
