// Package alarm turns a timer expiry into the visible and audible alarm.
//
// The Trigger is owned by the scheduling loop and is not safe for
// concurrent use. It is the only owner of the playback handle.
package alarm

import (
	"log/slog"
	"os"

	"github.com/llehouerou/tytimer/internal/errmsg"
	"github.com/llehouerou/tytimer/internal/player"
)

// Surface displays the alarm. Both calls must be safe to repeat.
type Surface interface {
	Show() error
	Hide() error
}

// Engine starts and stops playback instances.
type Engine interface {
	Start(uri string) (player.Handle, error)
	Stop(h player.Handle) error
}

// Trigger mediates the one-shot transition into the alarm state.
type Trigger struct {
	surface   Surface
	engine    Engine
	soundPath string

	active  player.Handle
	playing bool
}

// New creates a Trigger. A nil surface or engine disables that side effect;
// an empty soundPath disables playback.
func New(surface Surface, engine Engine, soundPath string) *Trigger {
	return &Trigger{
		surface:   surface,
		engine:    engine,
		soundPath: soundPath,
	}
}

// Fire shows the alarm surface and starts the alarm sound.
// Call it once per expiry.
func (t *Trigger) Fire() {
	t.Show()
	t.play()
}

// Show requests the alarm surface without touching playback.
func (t *Trigger) Show() {
	if t.surface == nil {
		return
	}
	if err := t.surface.Show(); err != nil {
		slog.Warn(errmsg.Format(errmsg.OpShowAlarm, err))
	}
}

// Hide requests the alarm surface be hidden.
func (t *Trigger) Hide() {
	if t.surface == nil {
		return
	}
	if err := t.surface.Hide(); err != nil {
		slog.Warn(errmsg.Format(errmsg.OpHideAlarm, err))
	}
}

// Cancel stops and releases the active playback instance, if any.
// Engine failures are logged and swallowed.
func (t *Trigger) Cancel() {
	if !t.playing {
		return
	}
	h := t.active
	t.playing = false
	t.active = 0
	if err := t.engine.Stop(h); err != nil {
		slog.Warn(errmsg.Format(errmsg.OpStopPlayback, err), "handle", h)
	}
}

// HandleEvent processes an end-of-stream or error notification from the
// engine. Both release the instance so a later expiry starts fresh.
// Events for handles other than the active one are ignored.
func (t *Trigger) HandleEvent(ev player.Event) {
	if !t.playing || ev.Handle != t.active {
		return
	}
	if ev.Err != nil {
		slog.Warn(errmsg.Format(errmsg.OpPlayback, ev.Err), "handle", ev.Handle)
	} else {
		slog.Debug("alarm sound finished", "handle", ev.Handle)
	}
	t.Cancel()
}

// Active reports whether a playback instance is owned.
func (t *Trigger) Active() bool { return t.playing }

func (t *Trigger) play() {
	if t.engine == nil {
		return
	}
	t.Cancel()

	if t.soundPath == "" {
		return
	}
	if _, err := os.Stat(t.soundPath); err != nil {
		slog.Info("alarm sound unavailable, skipping playback", "path", t.soundPath, "error", err)
		return
	}
	uri, err := player.FileURI(t.soundPath)
	if err != nil {
		slog.Warn(errmsg.Format(errmsg.OpStartPlayback, err), "path", t.soundPath)
		return
	}

	h, err := t.engine.Start(uri)
	if err != nil {
		slog.Warn(errmsg.Format(errmsg.OpStartPlayback, err), "uri", uri)
		return
	}
	t.active = h
	t.playing = true
	slog.Debug("alarm sound started", "handle", h, "uri", uri)
}
