package countdown

import "github.com/llehouerou/tytimer/internal/app"

// Sink forwards statuses to the view without blocking the timer loop.
// Only the latest undelivered status is kept.
type Sink struct {
	ch chan app.Status
}

// NewSink creates a sink; pass Updates to New.
func NewSink() *Sink {
	return &Sink{ch: make(chan app.Status, 1)}
}

// SetStatus implements app.StatusSink.
func (s *Sink) SetStatus(st app.Status) error {
	for {
		select {
		case s.ch <- st:
			return nil
		default:
		}
		// Drop the stale status and retry.
		select {
		case <-s.ch:
		default:
		}
	}
}

// Updates returns the channel read by the view.
func (s *Sink) Updates() <-chan app.Status {
	return s.ch
}
