package presenter

import "time"

// DefaultDebounce is the quiet period after the last resize before the
// surfaces are re-rendered.
const DefaultDebounce = 50 * time.Millisecond

// Debouncer coalesces bursts of events. Each Trigger returns a token; after
// waiting Delay the caller asks Due, which accepts only the most recent
// token. The event loop stays the only place work happens.
type Debouncer struct {
	delay time.Duration
	seq   uint64
}

// NewDebouncer returns a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Delay() time.Duration { return d.delay }

// Trigger records an event and returns its token.
func (d *Debouncer) Trigger() uint64 {
	d.seq++
	return d.seq
}

// Due reports whether token is the latest one. A due token is consumed.
func (d *Debouncer) Due(token uint64) bool {
	if token == 0 || token != d.seq {
		return false
	}
	d.seq++
	return true
}
