//go:build !linux

package notify

import "errors"

// ErrUnsupported is returned by New on platforms without D-Bus notifications.
var ErrUnsupported = errors.New("desktop notifications require D-Bus")

// New fails on non-Linux platforms.
func New() (Notifier, error) {
	return nil, ErrUnsupported
}
