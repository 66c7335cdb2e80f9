// Package mqtt publishes timer status to an MQTT broker with an abstraction
// for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/llehouerou/tytimer/internal/app"
)

// Topic suffixes below the configured base topic.
const (
	SuffixState        = "/state"
	SuffixAvailability = "/availability"
)

// Availability payloads.
const (
	Online  = "online"
	Offline = "offline"
)

// Timer states as published.
const (
	StateRunning = "RUNNING"
	StatePaused  = "PAUSED"
	StateExpired = "EXPIRED"
)

// Publisher publishes timer status. It is a status sink.
type Publisher interface {
	// SetStatus publishes a status snapshot. It must not block on the broker.
	SetStatus(s app.Status) error

	// Close publishes the offline marker and disconnects.
	Close() error
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Timer TimerPayload `json:"timer"`
}

// TimerPayload contains the timer state details.
type TimerPayload struct {
	Timestamp        string `json:"timestamp"`
	State            string `json:"state"`
	Label            string `json:"label"`
	RemainingSeconds int    `json:"remaining_seconds"`
	OriginalSeconds  int    `json:"original_seconds"`
	EndsAt           string `json:"ends_at,omitempty"`
}

// StateOf names the timer state carried by s.
func StateOf(s app.Status) string {
	switch {
	case s.Expired:
		return StateExpired
	case s.Running:
		return StateRunning
	default:
		return StatePaused
	}
}

// FormatPayload creates the JSON payload for a status snapshot.
func FormatPayload(s app.Status) ([]byte, error) {
	payload := Payload{
		Timer: TimerPayload{
			Timestamp:        s.At.UTC().Format(time.RFC3339),
			State:            StateOf(s),
			Label:            s.Label,
			RemainingSeconds: s.Remaining,
			OriginalSeconds:  s.Original,
		},
	}
	if end := s.EndsAt(); !end.IsZero() {
		payload.Timer.EndsAt = end.UTC().Format(time.RFC3339)
	}
	return json.Marshal(payload)
}
