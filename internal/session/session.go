package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/jessechan5171/emoradar/go-engine/internal/emotion"
	"github.com/jessechan5171/emoradar/go-engine/internal/engine"
	"github.com/jessechan5171/emoradar/go-engine/internal/recommend"
	"github.com/jessechan5171/emoradar/go-engine/internal/timeline"
	"github.com/jessechan5171/emoradar/go-engine/internal/trend"
)

// #region session

// Session owns all mutable state for one continuous monitoring run: the
// timeline, the intervention state machine, and the running aggregates.
// It is the single logical owner required by the concurrency model: one
// pass at a time may call Process; separate sessions are independent and
// need no locking.
type Session struct {
	id       string
	config   Config
	store    *timeline.Store
	analyzer *trend.Analyzer
	engine   *engine.Engine

	startedAt   time.Time
	eventCounts map[engine.Category]int

	// running per-dimension aggregates over accepted samples
	sums   map[emotion.Dimension]float64
	mins   map[emotion.Dimension]float32
	maxs   map[emotion.Dimension]float32
	count  int
	latest time.Duration
	first  time.Duration
}

// New creates a session with a fresh identifier. Zero trend fields fall
// back to defaults so the evaluation window is never empty.
func New(config Config) *Session {
	def := trend.DefaultConfig()
	if config.Trend.WindowEntries <= 0 {
		config.Trend.WindowEntries = def.WindowEntries
	}
	if config.Trend.RecentWeight <= 0 || config.Trend.RecentWeight > 1 {
		config.Trend.RecentWeight = def.RecentWeight
	}
	return &Session{
		id:          uuid.New().String(),
		config:      config,
		store:       timeline.NewStore(config.Capacity),
		analyzer:    trend.NewAnalyzer(config.Trend),
		engine:      engine.NewEngine(config.Engine),
		startedAt:   time.Now().UTC(),
		eventCounts: make(map[engine.Category]int),
		sums:        make(map[emotion.Dimension]float64),
		mins:        make(map[emotion.Dimension]float32),
		maxs:        make(map[emotion.Dimension]float32),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Config returns the immutable session configuration.
func (s *Session) Config() Config {
	return s.config
}

// StartedAt returns the wall-clock session start.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Timeline returns a snapshot copy of the stored entries, oldest first.
func (s *Session) Timeline() []timeline.Entry {
	return s.store.All()
}

// #endregion session

// #region process

// Process runs one synchronous pass for a new raw sample:
// normalize → append → analyze → decide → resolve. It returns the
// read-only snapshot for the presentation sink, or an error local to this
// sample (*emotion.MalformedScoreError, *timeline.OutOfOrderError). The
// session stays usable after any error.
func (s *Session) Process(offset time.Duration, raw map[string]any, sourceConfidence float32) (Snapshot, error) {
	vec, err := emotion.Normalize(raw)
	if err != nil {
		return Snapshot{}, err
	}

	entry := timeline.Entry{
		Offset:           offset,
		Vector:           vec,
		SourceConfidence: sourceConfidence,
	}
	if err := s.store.Append(entry); err != nil {
		return Snapshot{}, err
	}
	s.accumulate(entry)

	window := s.store.Window(s.config.Trend.WindowEntries)
	signal := s.analyzer.Analyze(window)

	snap := Snapshot{
		SessionID: s.id,
		Offset:    offset,
		Vector:    vec,
		Trend:     signal,
	}

	ev := s.engine.Evaluate(offset, engine.RuleInput{
		Current: vec,
		Trend:   signal,
		Window:  window,
	})
	if ev != nil {
		s.eventCounts[ev.Category]++
		snap.Event = &ResolvedEvent{
			Event:          *ev,
			Recommendation: recommend.Resolve(*ev, s.config.Phase),
		}
	}
	snap.State = s.engine.State()

	return snap, nil
}

// accumulate folds an accepted entry into the running summary aggregates.
func (s *Session) accumulate(e timeline.Entry) {
	if s.count == 0 {
		s.first = e.Offset
	}
	s.count++
	s.latest = e.Offset
	for d, v := range e.Vector.Values() {
		s.sums[d] += float64(v)
		if cur, ok := s.mins[d]; !ok || v < cur {
			s.mins[d] = v
		}
		if cur, ok := s.maxs[d]; !ok || v > cur {
			s.maxs[d] = v
		}
	}
}

// #endregion process

// #region summary

// Summary aggregates the session so far for the presentation sink.
// Aggregates cover every accepted sample, not just the retained window.
func (s *Session) Summary() Summary {
	dims := make(map[emotion.Dimension]DimensionStats, len(emotion.Dimensions()))
	for _, d := range emotion.Dimensions() {
		if s.count == 0 {
			dims[d] = DimensionStats{}
			continue
		}
		dims[d] = DimensionStats{
			Mean: float32(s.sums[d] / float64(s.count)),
			Min:  s.mins[d],
			Max:  s.maxs[d],
		}
	}

	events := make(map[engine.Category]int, len(s.eventCounts))
	for c, n := range s.eventCounts {
		events[c] = n
	}

	return Summary{
		SessionID:  s.id,
		Samples:    s.count,
		Span:       s.latest - s.first,
		Dimensions: dims,
		Events:     events,
	}
}

// #endregion summary
