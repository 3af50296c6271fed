package source

import (
	"errors"
	"time"
)

// #region sample

// Sample is one raw capture handed over the emotion source boundary:
// a dimension-name → score mapping as the upstream adapter produced it,
// plus the capture offset. Scores are untrusted until normalized.
type Sample struct {
	Offset     time.Duration
	Scores     map[string]any
	Confidence float32 // source-reported confidence, 0 when unreported
}

// #endregion sample

// #region failures

// Typed failures a source may return instead of a sample. The core treats
// any of them as "no new sample" for that frame; they never fail a session.
var (
	ErrNoFace      = errors.New("no face detected")
	ErrUnavailable = errors.New("source unavailable")
)

// #endregion failures

// #region source

// Source supplies timestamped raw score mappings. Next returns io.EOF when
// the source is exhausted. Acquisition timeouts and network concerns live
// behind this boundary, not in the core.
type Source interface {
	Next() (Sample, error)
}

// #endregion source
