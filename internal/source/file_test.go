package source

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSamples(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "samples.jsonl")
	if err := os.WriteFile(path, []byte(lines), 0o644); err != nil {
		t.Fatalf("write samples: %v", err)
	}
	return path
}

func TestFileSourceReadsSamples(t *testing.T) {
	path := writeSamples(t, `{"offset_ms": 2000, "scores": {"confusion": 0.9}, "confidence": 0.8}
{"offset_ms": 4000, "scores": {"engagement": 0.6}}
`)
	s, err := NewFileSource(path)
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}
	defer s.Close()

	first, err := s.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if first.Offset != 2*time.Second {
		t.Fatalf("expected offset 2s, got %s", first.Offset)
	}
	if first.Confidence != 0.8 {
		t.Fatalf("expected confidence 0.8, got %f", first.Confidence)
	}
	if first.Scores["confusion"] != 0.9 {
		t.Fatalf("expected confusion 0.9, got %v", first.Scores["confusion"])
	}

	second, err := s.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if second.Offset != 4*time.Second {
		t.Fatalf("expected offset 4s, got %s", second.Offset)
	}

	if _, err := s.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestFileSourceSkipsUnparseableLines(t *testing.T) {
	path := writeSamples(t, `not json at all
{"offset_ms": 1000, "scores": {"focus": 0.5}}
`)
	s, err := NewFileSource(path)
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}
	defer s.Close()

	sample, err := s.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if sample.Offset != time.Second {
		t.Fatalf("expected the parseable line, got offset %s", sample.Offset)
	}
}

func TestFileSourceTypedFailures(t *testing.T) {
	path := writeSamples(t, `{"offset_ms": 1000, "error": "no_face"}
{"offset_ms": 2000, "error": "unavailable"}
{"offset_ms": 3000, "scores": {"focus": 0.5}}
`)
	s, err := NewFileSource(path)
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}
	defer s.Close()

	if _, err := s.Next(); !errors.Is(err, ErrNoFace) {
		t.Fatalf("expected ErrNoFace, got %v", err)
	}
	if _, err := s.Next(); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}

	// A failure frame does not end the stream.
	sample, err := s.Next()
	if err != nil {
		t.Fatalf("Next after failures: %v", err)
	}
	if sample.Offset != 3*time.Second {
		t.Fatalf("expected offset 3s, got %s", sample.Offset)
	}
}
