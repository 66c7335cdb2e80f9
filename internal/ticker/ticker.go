// Package ticker provides the once-per-second notification source that drives the timer.
package ticker

import "time"

// Interval is the countdown resolution.
const Interval = time.Second

// Ticker holds at most one installed time.Ticker.
// It is owned by the scheduling loop and not safe for concurrent use.
type Ticker struct {
	t *time.Ticker
}

// New returns a Ticker with nothing installed.
func New() *Ticker {
	return &Ticker{}
}

// Start installs a ticker firing every interval, removing any previous one first.
func (t *Ticker) Start(interval time.Duration) {
	t.Stop()
	t.t = time.NewTicker(interval)
}

// C returns the channel of the installed ticker, or nil when stopped.
// A nil channel blocks forever in a select, which disables the tick case.
func (t *Ticker) C() <-chan time.Time {
	if t.t == nil {
		return nil
	}
	return t.t.C
}

// Stop removes the installed ticker.
func (t *Ticker) Stop() {
	if t.t == nil {
		return
	}
	t.t.Stop()
	t.t = nil
}

// Running reports whether a ticker is installed.
func (t *Ticker) Running() bool { return t.t != nil }
