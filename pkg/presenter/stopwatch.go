package presenter

import (
	"fmt"
	"time"
)

// Stopwatch measures presentation time. Pausing and resuming shifts the
// start forward by the paused duration.
type Stopwatch struct {
	now      func() time.Time
	start    time.Time
	pausedAt time.Time
	started  bool
	running  bool
}

// NewStopwatch returns a stopped stopwatch reading now for the time.
func NewStopwatch(now func() time.Time) *Stopwatch {
	if now == nil {
		now = time.Now
	}
	return &Stopwatch{now: now}
}

// Toggle starts, pauses or resumes the stopwatch.
func (s *Stopwatch) Toggle() {
	t := s.now()
	switch {
	case s.running:
		s.pausedAt = t
		s.running = false
	case !s.started:
		s.start = t
		s.started, s.running = true, true
	default:
		s.start = s.start.Add(t.Sub(s.pausedAt))
		s.running = true
	}
}

// Start runs the stopwatch if it is not running.
func (s *Stopwatch) Start() {
	if !s.running {
		s.Toggle()
	}
}

func (s *Stopwatch) Running() bool { return s.running }

func (s *Stopwatch) Started() bool { return s.started }

// Elapsed returns the running time, excluding pauses.
func (s *Stopwatch) Elapsed() time.Duration {
	switch {
	case s.running:
		return s.now().Sub(s.start)
	case s.started:
		return s.pausedAt.Sub(s.start)
	default:
		return 0
	}
}

// Reset stops the stopwatch and zeroes it.
func (s *Stopwatch) Reset() {
	*s = Stopwatch{now: s.now}
}

// FormatElapsed formats d as HH:MM:SS.
func FormatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
}

// FormatClock formats the wall clock as HH:MM:SS.
func FormatClock(t time.Time) string {
	return t.Format("15:04:05")
}
