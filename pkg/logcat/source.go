package logcat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// LineSource provides an iterator over decoded text lines.
// Implementations must be safe for sequential access (not concurrent).
type LineSource interface {
	// Next returns the next line with surrounding whitespace trimmed.
	// Returns io.EOF when the stream ends. Invalid byte sequences are
	// replaced, never surfaced as errors.
	Next(ctx context.Context) (string, error)

	// Close releases any resources held by the source.
	Close() error
}

// processSource reads lines from a live process's stdout.
type processSource struct {
	scanner *bufio.Scanner
	closer  func() error
}

// newProcessSource wraps a process stdout in a LineSource. closer is invoked
// once on Close and is expected to terminate the owning process.
func newProcessSource(r io.Reader, closer func() error) *processSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	return &processSource{scanner: scanner, closer: closer}
}

func (s *processSource) Next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", fmt.Errorf("reading logcat: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(strings.ToValidUTF8(s.scanner.Text(), "�")), nil
}

func (s *processSource) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer()
	s.closer = nil
	return err
}

// cleanLines decodes raw command output into trimmed, non-blank lines.
// Invalid byte sequences are replaced.
func cleanLines(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(strings.ToValidUTF8(string(raw), "�"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
