//go:build !linux

// Package stderr is a no-op outside Linux, where the audio backends do not
// write to file descriptor 2.
package stderr

import "os"

// Start is a no-op.
func Start() error {
	return nil
}

// WriteOriginal writes to stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop is a no-op.
func Stop() {}
