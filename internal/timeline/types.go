package timeline

import (
	"fmt"
	"time"

	"github.com/jessechan5171/emoradar/go-engine/internal/emotion"
)

// #region entry

// Entry is one timestamped normalized vector on a session timeline.
// Entries are owned exclusively by the Store that accepted them.
type Entry struct {
	Offset           time.Duration // session-relative capture time
	Vector           emotion.Vector
	SourceConfidence float32 // 0 when the source did not report one
}

// #endregion entry

// #region out-of-order-error

// OutOfOrderError reports an append whose offset does not strictly advance
// the timeline. The entry is rejected; the session continues.
type OutOfOrderError struct {
	Last time.Duration
	Got  time.Duration
}

func (e *OutOfOrderError) Error() string {
	return fmt.Sprintf("out-of-order entry: offset %s not after %s", e.Got, e.Last)
}

// #endregion out-of-order-error

// DefaultCapacity bounds a session timeline to its most recent entries,
// a few minutes of history at typical sampling cadence.
const DefaultCapacity = 120
