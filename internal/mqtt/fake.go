package mqtt

import (
	"sync"

	"github.com/llehouerou/tytimer/internal/app"
)

// FakePublisher records published statuses for test assertions.
type FakePublisher struct {
	mu sync.Mutex

	// Statuses contains all statuses that were published.
	Statuses []app.Status

	// Payloads contains the JSON payloads that were published.
	Payloads [][]byte

	// PublishError, if set, will be returned by SetStatus.
	PublishError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// SetStatus records the status.
func (f *FakePublisher) SetStatus(s app.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PublishError != nil {
		return f.PublishError
	}

	f.Statuses = append(f.Statuses, s)

	payload, err := FormatPayload(s)
	if err != nil {
		return err
	}
	f.Payloads = append(f.Payloads, payload)

	return nil
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// Reset clears recorded statuses.
func (f *FakePublisher) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Statuses = nil
	f.Payloads = nil
	f.Closed = false
	f.PublishError = nil
}

// Verify implementations at compile time.
var (
	_ Publisher = (*FakePublisher)(nil)
	_ Publisher = (*RealPublisher)(nil)
)
