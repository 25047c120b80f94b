package logcat

import (
	"errors"
	"fmt"
	"time"
)

// ErrStreamClosed is returned when the logcat process exits before any
// stop pattern has matched.
var ErrStreamClosed = errors.New("logcat stream closed before a stop pattern matched")

// ErrSessionRunning is returned by Start when a previous session is still live.
var ErrSessionRunning = errors.New("previous logcat session still running")

// ErrSessionNotStarted is returned by operations that need a live session.
var ErrSessionNotStarted = errors.New("logcat session not started")

// ErrNoStopPatterns is returned by Accumulate when the effective stop
// pattern set is empty.
var ErrNoStopPatterns = errors.New("at least one stop pattern is required")

// TimeoutError reports that no stop pattern matched within the time budget.
// It is distinct from a successful stop-pattern match and from ErrStreamClosed.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("no stop pattern matched within %s", e.Timeout)
}
