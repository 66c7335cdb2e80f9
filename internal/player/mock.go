package player

import (
	"fmt"
	"sync"
)

// Call records one request made to a Mock.
type Call struct {
	Op     string // "start" or "stop"
	Handle Handle
	URI    string
}

func (c Call) String() string {
	if c.Op == "start" {
		return fmt.Sprintf("start %d %s", c.Handle, c.URI)
	}
	return fmt.Sprintf("%s %d", c.Op, c.Handle)
}

// Mock is a test double for Engine. It tracks which handles are alive so
// tests can assert that no two instances overlap.
type Mock struct {
	mu       sync.Mutex
	next     Handle
	calls    []Call
	alive    map[Handle]bool
	maxAlive int
	startErr error
	stopErr  error
	events   chan Event
	closed   bool
}

// NewMock creates a new mock engine for testing.
func NewMock() *Mock {
	return &Mock{
		alive:  make(map[Handle]bool),
		events: make(chan Event, eventBufferSize),
	}
}

func (m *Mock) Start(uri string) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrClosed
	}
	if m.startErr != nil {
		return 0, m.startErr
	}
	m.next++
	h := m.next
	m.calls = append(m.calls, Call{Op: "start", Handle: h, URI: uri})
	m.alive[h] = true
	m.maxAlive = max(m.maxAlive, len(m.alive))
	return h, nil
}

func (m *Mock) Stop(h Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Op: "stop", Handle: h})
	delete(m.alive, h)
	return m.stopErr
}

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	clear(m.alive)
	return nil
}

// Test helpers

func (m *Mock) SetStartError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startErr = err
}

func (m *Mock) SetStopError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopErr = err
}

// Calls returns a copy of the recorded calls.
func (m *Mock) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// Alive returns the number of started but not stopped handles.
func (m *Mock) Alive() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.alive)
}

// MaxAlive returns the highest number of simultaneously alive handles seen.
func (m *Mock) MaxAlive() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxAlive
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// SimulateEnd simulates the stream of h ending, as the engine would report it.
func (m *Mock) SimulateEnd(h Handle, err error) Event {
	m.mu.Lock()
	delete(m.alive, h)
	m.mu.Unlock()
	ev := Event{Handle: h, Err: err}
	select {
	case m.events <- ev:
	default:
	}
	return ev
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
