package presenter

import (
	"testing"
	"time"
)

func TestStopwatch(t *testing.T) {
	clk := newClock()
	s := NewStopwatch(clk.now)
	if s.Elapsed() != 0 || s.Started() {
		t.Fatal("new stopwatch not zero")
	}

	s.Toggle()
	clk.advance(10 * time.Second)
	if got := s.Elapsed(); got != 10*time.Second {
		t.Errorf("running elapsed = %v", got)
	}

	s.Toggle()
	clk.advance(5 * time.Second)
	if got := s.Elapsed(); got != 10*time.Second {
		t.Errorf("paused elapsed = %v", got)
	}

	s.Start()
	clk.advance(3 * time.Second)
	if got := s.Elapsed(); got != 13*time.Second {
		t.Errorf("resumed elapsed = %v", got)
	}
	s.Start()
	if !s.Running() {
		t.Error("Start paused a running stopwatch")
	}

	s.Reset()
	if s.Running() || s.Elapsed() != 0 {
		t.Error("Reset left state behind")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{59*time.Second + 900*time.Millisecond, "00:00:59"},
		{3723 * time.Second, "01:02:03"},
		{100 * time.Hour, "100:00:00"},
		{-time.Second, "00:00:00"},
	}
	for _, tt := range tests {
		if got := FormatElapsed(tt.d); got != tt.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(time.Date(2026, 1, 1, 7, 5, 9, 0, time.UTC)); got != "07:05:09" {
		t.Errorf("FormatClock = %q", got)
	}
}

func TestDebouncer(t *testing.T) {
	d := NewDebouncer(0)
	if d.Delay() != DefaultDebounce {
		t.Errorf("Delay = %v", d.Delay())
	}
	if d.Due(0) {
		t.Error("zero token due")
	}
	a := d.Trigger()
	b := d.Trigger()
	if d.Due(a) || !d.Due(b) || d.Due(b) {
		t.Error("only the latest token should be due, once")
	}
	c := d.Trigger()
	if !d.Due(c) {
		t.Error("token after consumption not due")
	}
}
