//go:build !linux

package tray

import (
	"errors"

	"github.com/llehouerou/tytimer/internal/app"
)

// ErrUnsupported is returned by New on platforms without a session bus tray.
var ErrUnsupported = errors.New("tray requires a D-Bus StatusNotifierWatcher")

// Tray is unavailable on non-Linux platforms.
type Tray struct{}

// New fails on non-Linux platforms.
func New(_ []int) (*Tray, error) {
	return nil, ErrUnsupported
}

func (t *Tray) Bind(_ Submitter) {}

func (t *Tray) SetStatus(_ app.Status) error { return nil }

func (t *Tray) Close() error { return nil }
