//go:build linux

package mpris

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/tytimer/internal/app"
	"github.com/llehouerou/tytimer/internal/errmsg"
)

const (
	submitTimeout = 2 * time.Second
	trackID       = "/org/mpris/MediaPlayer2/tytimer/countdown"
)

var errNotBound = errors.New("mpris adapter has no command target")

// Submitter accepts timer commands.
type Submitter interface {
	Submit(ctx context.Context, cmd app.Command) error
}

// Adapter exposes the countdown as an MPRIS player over D-Bus.
// Method calls become timer commands; property reads use the last status.
type Adapter struct {
	server *server.Server
	state  *state
}

// state is the last status seen, shared between the scheduling goroutine
// and D-Bus handlers.
type state struct {
	mu     sync.Mutex
	status app.Status
	submit Submitter
}

func (s *state) get() app.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *state) send(cmd app.Command) error {
	s.mu.Lock()
	target := s.submit
	s.mu.Unlock()
	if target == nil {
		return errNotBound
	}
	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()
	return target.Submit(ctx, cmd)
}

// BusName returns the MPRIS name suffix for this process.
func BusName() string {
	return fmt.Sprintf("tytimer.instance%d", os.Getpid())
}

// New creates and starts a new MPRIS adapter. Calls fail until Bind.
func New() (*Adapter, error) {
	st := &state{}
	a := &Adapter{state: st}

	a.server = server.NewServer(BusName(), &rootAdapter{state: st}, &playerAdapter{state: st})

	// Start the server in background
	go func() {
		if err := a.server.Listen(); err != nil {
			slog.Warn(errmsg.Format(errmsg.OpStartMPRIS, err))
		}
	}()

	return a, nil
}

// Bind sets the command target.
func (a *Adapter) Bind(s Submitter) {
	a.state.mu.Lock()
	defer a.state.mu.Unlock()
	a.state.submit = s
}

// SetStatus records the latest status for property reads.
func (a *Adapter) SetStatus(s app.Status) error {
	a.state.mu.Lock()
	defer a.state.mu.Unlock()
	a.state.status = s
	return nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct {
	state *state
}

func (r *rootAdapter) Raise() error {
	return r.state.send(app.ShowAlarm())
}

func (r *rootAdapter) Quit() error {
	return r.state.send(app.Quit())
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return true, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return true, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "tytimer", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
// Play and Pause resume or pause the countdown, Stop ends the timer.
type playerAdapter struct {
	state *state
}

func (p *playerAdapter) Next() error     { return nil }
func (p *playerAdapter) Previous() error { return nil }

func (p *playerAdapter) Pause() error {
	if !p.state.get().Running {
		return nil
	}
	return p.state.send(app.TogglePause())
}

func (p *playerAdapter) PlayPause() error {
	return p.state.send(app.TogglePause())
}

func (p *playerAdapter) Stop() error {
	return p.state.send(app.Quit())
}

func (p *playerAdapter) Play() error {
	s := p.state.get()
	switch {
	case s.Expired:
		return p.state.send(app.RestartAt(100))
	case !s.Running:
		return p.state.send(app.TogglePause())
	}
	return nil
}

func (p *playerAdapter) Seek(_ types.Microseconds) error {
	return nil // Not supported
}

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error {
	return nil // Not supported
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	s := p.state.get()
	switch {
	case s.Expired:
		return types.PlaybackStatusStopped, nil
	case s.Running:
		return types.PlaybackStatusPlaying, nil
	default:
		return types.PlaybackStatusPaused, nil
	}
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	s := p.state.get()
	if s.Original == 0 {
		return types.Metadata{}, nil
	}
	return types.Metadata{
		TrackId: dbus.ObjectPath(trackID),
		Length:  types.Microseconds((time.Duration(s.Original) * time.Second).Microseconds()),
		Title:   "tytimer " + s.Label,
		Artist:  []string{"tytimer"},
	}, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

// Position reports elapsed countdown time.
func (p *playerAdapter) Position() (int64, error) {
	return p.state.get().Elapsed().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}
