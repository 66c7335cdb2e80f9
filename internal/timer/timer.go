// Package timer implements the countdown state machine.
package timer

import (
	"errors"
	"fmt"
	"math"
)

// MaxSeconds is the longest countdown, about 68 years. It fits an int on
// every platform and a time.Duration.
const MaxSeconds = math.MaxInt32

// ErrInvalidDuration is returned when the requested minutes are not a positive number.
var ErrInvalidDuration = errors.New("minutes must be positive")

// Timer tracks remaining time against the original duration.
// It is not safe for concurrent use; the owner serializes all calls.
type Timer struct {
	original  int
	remaining int
	running   bool
}

// Seconds converts minutes to whole seconds, rounded and kept within
// [1, MaxSeconds].
func Seconds(minutes float64) int {
	s := math.Round(minutes * 60)
	switch {
	case !(s >= 1):
		return 1
	case s > MaxSeconds:
		return MaxSeconds
	}
	return int(s)
}

// New creates a running timer for the given minutes.
func New(minutes float64) (*Timer, error) {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if minutes*60 > MaxSeconds {
		return nil, fmt.Errorf("%w, at most %d", ErrInvalidDuration, MaxSeconds/60)
	}
	s := Seconds(minutes)
	return &Timer{
		original:  s,
		remaining: s,
		running:   true,
	}, nil
}

// Tick advances the countdown by one second.
// It returns true only on the tick that brings the remaining time to zero.
func (t *Timer) Tick() bool {
	if !t.running || t.remaining <= 0 {
		return false
	}
	t.remaining--
	return t.remaining == 0
}

// TogglePause flips the running flag and returns the new value.
func (t *Timer) TogglePause() bool {
	t.running = !t.running
	return t.running
}

// RestartAt re-arms the timer at pct percent of the original duration.
// Percentages above 100 are clamped to 100; the result is never below one second.
func (t *Timer) RestartAt(pct int) int {
	pct = min(pct, 100)
	t.remaining = max(1, int(math.Round(float64(t.original)*float64(pct)/100)))
	t.running = true
	return t.remaining
}

// Original returns the immutable starting duration in seconds.
func (t *Timer) Original() int { return t.original }

// Remaining returns the seconds left.
func (t *Timer) Remaining() int { return t.remaining }

// Running reports whether ticks decrement the countdown.
func (t *Timer) Running() bool { return t.running }

// Expired reports whether the countdown has reached zero.
func (t *Timer) Expired() bool { return t.remaining == 0 }

// State returns the current state machine state.
func (t *Timer) State() State {
	switch {
	case !t.running:
		return Paused
	case t.remaining == 0:
		return Expired
	default:
		return Running
	}
}
