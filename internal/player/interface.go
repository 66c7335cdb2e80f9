package player

// Interface defines the playback engine contract for dependency injection and testing.
type Interface interface {
	Start(uri string) (Handle, error)
	Stop(h Handle) error
	Events() <-chan Event
	Close() error
}

// Verify Engine implements Interface at compile time.
var _ Interface = (*Engine)(nil)
