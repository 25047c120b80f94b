// Package logcat manages adb logcat sessions: starting and terminating the
// underlying process, draining buffered output, and accumulating lines until
// a stop condition fires.
package logcat

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"
)

// DefaultFormat is the logcat output format used when none is configured.
const DefaultFormat = "threadtime"

// State describes where a session is in its lifecycle.
type State int

const (
	// StateIdle means no logcat process has been started yet.
	StateIdle State = iota
	// StateRunning means a logcat process is live and owned by the session.
	StateRunning
	// StateStopped means the process has been terminated and released.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// process is the control handle for a spawned logcat process.
type process interface {
	Stdout() io.Reader
	Terminate() error
	Wait() error
}

type startFunc func(ctx context.Context, name string, args ...string) (process, error)

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Session owns at most one logcat process at a time. It is not safe for
// concurrent use; exactly one reader consumes the stream.
type Session struct {
	bin    string
	serial string
	state  State
	proc   process

	start startFunc
	run   runFunc
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSerial targets a specific device via adb -s.
func WithSerial(serial string) SessionOption {
	return func(s *Session) { s.serial = serial }
}

// NewSession creates an idle session using the adb binary at bin.
func NewSession(bin string, opts ...SessionOption) *Session {
	s := &Session{
		bin:   bin,
		start: startExec,
		run:   runExec,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State reports the session lifecycle state.
func (s *Session) State() State {
	return s.state
}

// StartOptions controls how a logcat process is spawned.
type StartOptions struct {
	// Clear empties the logcat buffer before streaming starts.
	Clear bool

	// Format selects the logcat -v output format. Empty means DefaultFormat.
	Format string
}

// Start spawns a streaming logcat process. A session that is already running
// must be stopped first; this mirrors adb's one-reader-per-stream model.
func (s *Session) Start(ctx context.Context, opts StartOptions) error {
	if s.state == StateRunning {
		return ErrSessionRunning
	}
	if opts.Clear {
		if err := s.Clear(ctx); err != nil {
			return err
		}
	}

	format := opts.Format
	if format == "" {
		format = DefaultFormat
	}

	proc, err := s.start(ctx, s.bin, s.args("logcat", "-v", format)...)
	if err != nil {
		return fmt.Errorf("starting logcat: %w", err)
	}
	s.proc = proc
	s.state = StateRunning
	return nil
}

// Dump returns the current logcat buffer contents (logcat -d) as cleaned
// lines. It refuses to run while a streaming session is live.
func (s *Session) Dump(ctx context.Context, format string) ([]string, error) {
	if s.state == StateRunning {
		return nil, ErrSessionRunning
	}
	if format == "" {
		format = DefaultFormat
	}
	out, err := s.run(ctx, s.bin, s.args("logcat", "-d", "-v", format)...)
	if err != nil {
		return nil, fmt.Errorf("dumping logcat: %w", err)
	}
	return cleanLines(out), nil
}

// Clear empties the device's logcat buffer (logcat -c).
func (s *Session) Clear(ctx context.Context) error {
	if s.state == StateRunning {
		return ErrSessionRunning
	}
	if _, err := s.run(ctx, s.bin, s.args("logcat", "-c")...); err != nil {
		return fmt.Errorf("clearing logcat: %w", err)
	}
	return nil
}

// Read drains whatever the running session has produced within the given
// window, then terminates the process. Hitting the deadline is the normal
// way out of a drain, not an error.
func (s *Session) Read(ctx context.Context, timeout time.Duration) ([]string, error) {
	if s.state != StateRunning {
		return nil, ErrSessionNotStarted
	}

	src := newProcessSource(s.proc.Stdout(), s.Stop)
	defer src.Close()

	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	done := make(chan struct{})
	defer close(done)
	lines := pump(ctx, src, done)

	var result []string
	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-deadline:
			return result, nil
		case r := <-lines:
			if r.err != nil {
				return result, nil
			}
			if r.line != "" {
				result = append(result, r.line)
			}
		}
	}
}

// Accumulate collects lines from the running session until a stop condition
// fires (see Accumulate). The session is stopped on every exit path.
func (s *Session) Accumulate(ctx context.Context, opts Options) ([]string, error) {
	if s.state != StateRunning {
		return nil, ErrSessionNotStarted
	}
	src := newProcessSource(s.proc.Stdout(), s.Stop)
	return Accumulate(ctx, src, opts)
}

// Stop terminates the owned process, if any, and releases the handle.
// Safe to call multiple times and on never-started sessions.
func (s *Session) Stop() error {
	if s.proc == nil {
		s.state = StateStopped
		return nil
	}
	err := s.proc.Terminate()
	_ = s.proc.Wait() // reap; a killed process reports a non-nil exit
	s.proc = nil
	s.state = StateStopped
	return err
}

func (s *Session) args(extra ...string) []string {
	var args []string
	if s.serial != "" {
		args = append(args, "-s", s.serial)
	}
	return append(args, extra...)
}

// execProcess adapts exec.Cmd to the process control handle.
type execProcess struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
}

func startExec(ctx context.Context, name string, args ...string) (process, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &execProcess{cmd: cmd, stdout: stdout}, nil
}

func (p *execProcess) Stdout() io.Reader { return p.stdout }

func (p *execProcess) Terminate() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}

func (p *execProcess) Wait() error { return p.cmd.Wait() }

func runExec(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
