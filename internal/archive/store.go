package archive

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"github.com/jessechan5171/emoradar/go-engine/internal/emotion"
	"github.com/jessechan5171/emoradar/go-engine/internal/engine"
	"github.com/jessechan5171/emoradar/go-engine/internal/recommend"
	"github.com/jessechan5171/emoradar/go-engine/internal/timeline"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id    TEXT PRIMARY KEY,
	started_at    TEXT NOT NULL,
	ended_at      TEXT,
	phase         TEXT NOT NULL,
	config_json   TEXT NOT NULL,
	sample_count  INTEGER NOT NULL DEFAULT 0,
	timeline_zst  BLOB
);

CREATE TABLE IF NOT EXISTS intervention_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	event_id      TEXT NOT NULL,
	session_id    TEXT NOT NULL,
	category      TEXT NOT NULL,
	urgency       TEXT NOT NULL,
	triggered_ms  INTEGER NOT NULL,
	contributing  TEXT,
	guidance      TEXT,
	action_tag    TEXT,
	created_at    TEXT NOT NULL,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);

CREATE INDEX IF NOT EXISTS idx_intervention_log_session
ON intervention_log(session_id, triggered_ms);
`

// #endregion schema

// #region store

// Store archives finished sessions and the intervention audit log in
// SQLite. Timeline history is kept as a zstd-compressed JSON blob per
// session.
type Store struct {
	db *sql.DB
}

// NewStore opens the archive database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion store

// #region begin-session

// BeginSession registers a session at monitoring start.
func (s *Store) BeginSession(sessionID string, startedAt time.Time, phase string, configJSON string) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions (session_id, started_at, phase, config_json) VALUES (?, ?, ?, ?)`,
		sessionID, startedAt.UTC().Format(time.RFC3339Nano), phase, configJSON,
	)
	if err != nil {
		return fmt.Errorf("begin session: %w", err)
	}
	return nil
}

// #endregion begin-session

// #region log-intervention

// LogIntervention appends one emitted event with its recommendation to
// the audit log.
func (s *Store) LogIntervention(sessionID string, ev engine.Event, rec recommend.Recommendation) error {
	contributing := make([]string, len(ev.Contributing))
	for i, d := range ev.Contributing {
		contributing[i] = string(d)
	}

	_, err := s.db.Exec(
		`INSERT INTO intervention_log
		 (event_id, session_id, category, urgency, triggered_ms, contributing, guidance, action_tag, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(),
		sessionID,
		string(ev.Category),
		ev.Urgency.String(),
		ev.TriggeredAt.Milliseconds(),
		strings.Join(contributing, ","),
		rec.Guidance,
		string(rec.Action),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log intervention: %w", err)
	}
	return nil
}

// #endregion log-intervention

// #region finish-session

// timelineEntryJSON is the archived wire shape of one timeline entry.
type timelineEntryJSON struct {
	OffsetMs   int64              `json:"offset_ms"`
	Scores     map[string]float32 `json:"scores"`
	Confidence float32            `json:"confidence,omitempty"`
}

// FinishSession stores the end time, sample count, and the compressed
// timeline blob for a completed session.
func (s *Store) FinishSession(sessionID string, endedAt time.Time, entries []timeline.Entry) error {
	blob, err := encodeTimeline(entries)
	if err != nil {
		return fmt.Errorf("encode timeline: %w", err)
	}

	res, err := s.db.Exec(
		`UPDATE sessions SET ended_at = ?, sample_count = ?, timeline_zst = ? WHERE session_id = ?`,
		endedAt.UTC().Format(time.RFC3339Nano), len(entries), blob, sessionID,
	)
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("finish session: session %s not found", sessionID)
	}
	return nil
}

// LoadTimeline decompresses and decodes an archived session timeline.
func (s *Store) LoadTimeline(sessionID string) ([]timeline.Entry, error) {
	var blob []byte
	err := s.db.QueryRow(
		`SELECT timeline_zst FROM sessions WHERE session_id = ?`, sessionID,
	).Scan(&blob)
	if err != nil {
		return nil, fmt.Errorf("load timeline %s: %w", sessionID, err)
	}
	if len(blob) == 0 {
		return nil, fmt.Errorf("load timeline %s: session not archived", sessionID)
	}
	return decodeTimeline(blob)
}

// encodeTimeline marshals entries to JSON and compresses with zstd.
func encodeTimeline(entries []timeline.Entry) ([]byte, error) {
	wire := make([]timelineEntryJSON, len(entries))
	for i, e := range entries {
		scores := make(map[string]float32, len(emotion.Dimensions()))
		for d, v := range e.Vector.Values() {
			scores[string(d)] = v
		}
		wire[i] = timelineEntryJSON{
			OffsetMs:   e.Offset.Milliseconds(),
			Scores:     scores,
			Confidence: e.SourceConfidence,
		}
	}

	raw, err := json.Marshal(wire)
	if err != nil {
		return nil, err
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

// decodeTimeline reverses encodeTimeline.
func decodeTimeline(blob []byte) ([]timeline.Entry, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress timeline: %w", err)
	}

	var wire []timelineEntryJSON
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("decode timeline: %w", err)
	}

	entries := make([]timeline.Entry, len(wire))
	for i, w := range wire {
		values := make(map[emotion.Dimension]float32, len(w.Scores))
		for name, v := range w.Scores {
			values[emotion.Dimension(name)] = v
		}
		entries[i] = timeline.Entry{
			Offset:           time.Duration(w.OffsetMs) * time.Millisecond,
			Vector:           emotion.FromValues(values),
			SourceConfidence: w.Confidence,
		}
	}
	return entries, nil
}

// #endregion finish-session

// #region queries

// ListSessions returns the most recently started sessions.
func (s *Store) ListSessions(limit int) ([]SessionRecord, error) {
	rows, err := s.db.Query(
		`SELECT session_id, started_at, ended_at, phase, config_json, sample_count,
		        timeline_zst IS NOT NULL
		 FROM sessions ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var startedStr string
		var endedStr sql.NullString
		var archived int
		if err := rows.Scan(&rec.SessionID, &startedStr, &endedStr, &rec.Phase,
			&rec.ConfigJSON, &rec.SampleCount, &archived); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		rec.StartedAt, _ = time.Parse(time.RFC3339Nano, startedStr)
		if endedStr.Valid {
			rec.EndedAt, _ = time.Parse(time.RFC3339Nano, endedStr.String)
		}
		rec.Archived = archived == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Interventions returns the audit log for one session, oldest first.
func (s *Store) Interventions(sessionID string) ([]InterventionRecord, error) {
	rows, err := s.db.Query(
		`SELECT event_id, session_id, category, urgency, triggered_ms,
		        contributing, guidance, action_tag, created_at
		 FROM intervention_log WHERE session_id = ? ORDER BY triggered_ms ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query interventions: %w", err)
	}
	defer rows.Close()

	var records []InterventionRecord
	for rows.Next() {
		var rec InterventionRecord
		var triggeredMs int64
		var contributing, guidance, actionTag sql.NullString
		var createdStr string
		if err := rows.Scan(&rec.EventID, &rec.SessionID, &rec.Category, &rec.Urgency,
			&triggeredMs, &contributing, &guidance, &actionTag, &createdStr); err != nil {
			return nil, fmt.Errorf("scan intervention row: %w", err)
		}
		rec.TriggeredAt = time.Duration(triggeredMs) * time.Millisecond
		if contributing.Valid && contributing.String != "" {
			rec.Contributing = strings.Split(contributing.String, ",")
		}
		if guidance.Valid {
			rec.Guidance = guidance.String
		}
		if actionTag.Valid {
			rec.ActionTag = actionTag.String
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion queries
