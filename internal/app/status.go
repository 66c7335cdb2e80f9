package app

import (
	"time"

	"github.com/llehouerou/tytimer/internal/timer"
)

// Status is the snapshot pushed to status sinks after every state change.
type Status struct {
	Label     string // remaining time, m:ss
	Attention bool   // set while paused
	Remaining int
	Original  int
	Running   bool
	Expired   bool
	At        time.Time
}

// EndsAt returns the wall time at which a running countdown reaches zero.
// The zero time is returned while paused.
func (s Status) EndsAt() time.Time {
	if !s.Running {
		return time.Time{}
	}
	return s.At.Add(time.Duration(s.Remaining) * time.Second)
}

// Elapsed returns how much of the current countdown has passed.
// After a restart this can be negative; it is clamped to zero.
func (s Status) Elapsed() time.Duration {
	return time.Duration(max(0, s.Original-s.Remaining)) * time.Second
}

// StatusSink receives status updates on the scheduling goroutine.
// Implementations must not block; errors are logged and discarded.
type StatusSink interface {
	SetStatus(s Status) error
}

// StatusSinkFunc adapts a function to StatusSink.
type StatusSinkFunc func(s Status) error

func (f StatusSinkFunc) SetStatus(s Status) error { return f(s) }

func statusOf(t *timer.Timer, now time.Time) Status {
	return Status{
		Label:     timer.Format(t.Remaining()),
		Attention: !t.Running(),
		Remaining: t.Remaining(),
		Original:  t.Original(),
		Running:   t.Running(),
		Expired:   t.Expired(),
		At:        now,
	}
}
