package archive

import "time"

// #region records

// SessionRecord is one archived session row.
type SessionRecord struct {
	SessionID   string
	StartedAt   time.Time
	EndedAt     time.Time
	Phase       string
	ConfigJSON  string
	SampleCount int
	Archived    bool // timeline blob present
}

// InterventionRecord is one audit-log row pairing an emitted event with
// its resolved recommendation.
type InterventionRecord struct {
	EventID      string
	SessionID    string
	Category     string
	Urgency      string
	TriggeredAt  time.Duration // session-relative offset
	Contributing []string
	Guidance     string
	ActionTag    string
	CreatedAt    time.Time
}

// #endregion records
