//go:build !linux

package mpris

import (
	"context"

	"github.com/llehouerou/tytimer/internal/app"
)

// Submitter accepts timer commands.
type Submitter interface {
	Submit(ctx context.Context, cmd app.Command) error
}

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New() (*Adapter, error) {
	return &Adapter{}, nil
}

// Bind is a no-op on non-Linux platforms.
func (a *Adapter) Bind(_ Submitter) {}

// SetStatus is a no-op on non-Linux platforms.
func (a *Adapter) SetStatus(_ app.Status) error { return nil }

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
