package source

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// #region file-source

// FileSource replays recorded samples from a JSONL file, one object per
// line. Lines that fail to parse are skipped with a log entry rather than
// substituted from history (skip-frame policy).
type FileSource struct {
	file    *os.File
	scanner *bufio.Scanner
	line    int
}

// sampleLine is the JSONL wire shape. A non-empty error field replaces the
// scores with the corresponding typed failure.
type sampleLine struct {
	OffsetMs   int64          `json:"offset_ms"`
	Scores     map[string]any `json:"scores"`
	Confidence float64        `json:"confidence"`
	Error      string         `json:"error"`
}

// NewFileSource opens a JSONL sample file.
func NewFileSource(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sample file %s: %w", path, err)
	}
	return &FileSource{
		file:    f,
		scanner: bufio.NewScanner(f),
	}, nil
}

// Close releases the underlying file.
func (s *FileSource) Close() error {
	return s.file.Close()
}

// #endregion file-source

// #region next

// Next returns the next recorded sample, a typed failure recorded in the
// stream, or io.EOF when the file is exhausted.
func (s *FileSource) Next() (Sample, error) {
	for s.scanner.Scan() {
		s.line++
		raw := s.scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var parsed sampleLine
		if err := json.Unmarshal(raw, &parsed); err != nil {
			log.Printf("[SOURCE] skipping unparseable line %d: %v", s.line, err)
			continue
		}

		switch parsed.Error {
		case "":
		case "no_face":
			return Sample{}, ErrNoFace
		case "unavailable":
			return Sample{}, ErrUnavailable
		default:
			return Sample{}, fmt.Errorf("source failure: %s", parsed.Error)
		}

		return Sample{
			Offset:     time.Duration(parsed.OffsetMs) * time.Millisecond,
			Scores:     parsed.Scores,
			Confidence: float32(parsed.Confidence),
		}, nil
	}
	if err := s.scanner.Err(); err != nil {
		return Sample{}, fmt.Errorf("read sample file: %w", err)
	}
	return Sample{}, io.EOF
}

// #endregion next
