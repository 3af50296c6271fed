package timeline

import "time"

// #region store

// Store is a bounded, time-ordered history of normalized vectors for one
// session. Entries are strictly increasing in offset; the oldest entry is
// evicted once capacity is exceeded. Single writer per session: appends
// must come from the one pass currently processing the session's latest
// sample. Reads return copies consistent with the last completed append.
type Store struct {
	capacity int
	entries  []Entry
}

// NewStore creates a timeline store. capacity <= 0 selects DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity: capacity,
		entries:  make([]Entry, 0, capacity),
	}
}

// #endregion store

// #region append

// Append accepts an entry whose offset is strictly greater than the last
// stored entry, evicting the oldest entry when capacity is exceeded.
// Rejects with *OutOfOrderError otherwise, leaving the timeline unchanged.
func (s *Store) Append(e Entry) error {
	if n := len(s.entries); n > 0 {
		last := s.entries[n-1].Offset
		if e.Offset <= last {
			return &OutOfOrderError{Last: last, Got: e.Offset}
		}
	}
	s.entries = append(s.entries, e)
	if len(s.entries) > s.capacity {
		// FIFO eviction; shift in place so the backing array stays bounded.
		copy(s.entries, s.entries[1:])
		s.entries = s.entries[:s.capacity]
	}
	return nil
}

// #endregion append

// #region reads

// Len reports the number of stored entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Capacity reports the configured entry bound.
func (s *Store) Capacity() int {
	return s.capacity
}

// Latest returns the most recent entry, or ok=false when no data has
// arrived yet.
func (s *Store) Latest() (Entry, bool) {
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// Window returns a copy of the most recent count entries, oldest first.
// Never fails: an empty timeline yields an empty slice.
func (s *Store) Window(count int) []Entry {
	if count <= 0 || len(s.entries) == 0 {
		return nil
	}
	if count > len(s.entries) {
		count = len(s.entries)
	}
	out := make([]Entry, count)
	copy(out, s.entries[len(s.entries)-count:])
	return out
}

// WindowSpan returns a copy of the entries captured within the given span
// of the latest entry, oldest first.
func (s *Store) WindowSpan(span time.Duration) []Entry {
	if span <= 0 || len(s.entries) == 0 {
		return nil
	}
	cutoff := s.entries[len(s.entries)-1].Offset - span
	start := len(s.entries)
	for start > 0 && s.entries[start-1].Offset >= cutoff {
		start--
	}
	out := make([]Entry, len(s.entries)-start)
	copy(out, s.entries[start:])
	return out
}

// All returns a copy of every stored entry, oldest first.
func (s *Store) All() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// #endregion reads
