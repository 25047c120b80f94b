package logcat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"
)

// Options controls a single accumulation pass over a line stream.
type Options struct {
	// Stop holds the caller's stop patterns. Accumulation ends as soon as
	// any of them matches a line. The union of Stop and ExtraStop must not
	// be empty.
	Stop []string

	// ExtraStop is an always-stop set merged into Stop, typically the
	// configured exit lines (crash markers and similar), already compiled
	// at config validation. Duplicates across the two sets are removed.
	ExtraStop []*regexp.Regexp

	// Start holds optional start patterns. Lines are discarded until one
	// matches; the matching line is included. Empty means accumulation
	// starts with the first line.
	Start []string

	// Timeout bounds the whole pass. Zero means no deadline.
	Timeout time.Duration
}

// readResult carries one line (or terminal error) from the pump goroutine.
type readResult struct {
	line string
	err  error
}

// Accumulate collects non-blank lines from src until a stop pattern matches,
// the stream ends, or the timeout elapses. The source is closed on every exit
// path, which terminates the owning process.
//
// The returned slice includes the stop-matching line. A timeout yields a
// *TimeoutError, a stream that ends without a match yields ErrStreamClosed.
func Accumulate(ctx context.Context, src LineSource, opts Options) ([]string, error) {
	stop, err := compilePatterns(dedupe(opts.Stop))
	if err != nil {
		return nil, err
	}
	stop = mergePatterns(stop, opts.ExtraStop)
	if len(stop) == 0 {
		return nil, ErrNoStopPatterns
	}
	start, err := compilePatterns(opts.Start)
	if err != nil {
		return nil, err
	}

	var deadline <-chan time.Time
	if opts.Timeout > 0 {
		timer := time.NewTimer(opts.Timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	done := make(chan struct{})
	defer close(done)
	lines := pump(ctx, src, done)

	started := len(start) == 0
	var result []string

	for {
		select {
		case <-ctx.Done():
			src.Close()
			return nil, ctx.Err()

		case <-deadline:
			src.Close()
			return nil, &TimeoutError{Timeout: opts.Timeout}

		case r := <-lines:
			if r.err != nil {
				src.Close()
				if errors.Is(r.err, io.EOF) {
					return nil, fmt.Errorf("after %d line(s): %w", len(result), ErrStreamClosed)
				}
				return nil, r.err
			}

			if !started && matchAny(start, r.line) {
				started = true
			}
			if started && r.line != "" {
				result = append(result, r.line)
			}
			if matchAny(stop, r.line) {
				src.Close()
				return result, nil
			}
		}
	}
}

// pump reads lines from src on a dedicated goroutine so the caller can apply
// a deadline even while a read is blocked. The goroutine exits when done is
// closed or the source reports a terminal error.
func pump(ctx context.Context, src LineSource, done <-chan struct{}) <-chan readResult {
	ch := make(chan readResult)
	go func() {
		for {
			line, err := src.Next(ctx)
			select {
			case ch <- readResult{line: line, err: err}:
				if err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()
	return ch
}

// compilePatterns compiles each pattern as a regular expression. A pattern
// that is not valid regex syntax is matched as a literal substring instead.
func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	var compiled []*regexp.Regexp
	for _, p := range patterns {
		if p == "" {
			continue
		}
		re, err := regexp.Compile(p)
		if err != nil {
			re, err = regexp.Compile(regexp.QuoteMeta(p))
			if err != nil {
				return nil, fmt.Errorf("pattern %q: %w", p, err)
			}
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// mergePatterns appends extra patterns to base, dropping any whose source
// text is already present.
func mergePatterns(base, extra []*regexp.Regexp) []*regexp.Regexp {
	seen := make(map[string]bool, len(base))
	for _, re := range base {
		seen[re.String()] = true
	}
	for _, re := range extra {
		if re == nil || seen[re.String()] {
			continue
		}
		seen[re.String()] = true
		base = append(base, re)
	}
	return base
}

func dedupe(patterns []string) []string {
	seen := make(map[string]bool, len(patterns))
	var result []string
	for _, p := range patterns {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}
	return result
}

func matchAny(patterns []*regexp.Regexp, line string) bool {
	for _, re := range patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
