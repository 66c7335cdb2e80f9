package alarm

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tytimer/internal/player"
)

type fakeSurface struct {
	shows   int
	hides   int
	visible bool
	err     error
}

func (s *fakeSurface) Show() error {
	s.shows++
	s.visible = true
	return s.err
}

func (s *fakeSurface) Hide() error {
	s.hides++
	s.visible = false
	return s.err
}

func soundFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alarm.mp3")
	require.NoError(t, os.WriteFile(path, []byte("ID3"), 0o600))
	return path
}

func ops(calls []player.Call) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Op
	}
	return out
}

func TestFire_ShowsAndPlays(t *testing.T) {
	surface := &fakeSurface{}
	engine := player.NewMock()
	tr := New(surface, engine, soundFile(t))

	tr.Fire()

	assert.Equal(t, 1, surface.shows)
	assert.True(t, surface.visible)
	require.Len(t, engine.Calls(), 1)
	call := engine.Calls()[0]
	assert.Equal(t, "start", call.Op)
	assert.Contains(t, call.URI, "file://")
	assert.True(t, tr.Active())
}

func TestFire_StopsPreviousInstanceFirst(t *testing.T) {
	engine := player.NewMock()
	tr := New(&fakeSurface{}, engine, soundFile(t))

	tr.Fire()
	tr.Fire()

	assert.Equal(t, []string{"start", "stop", "start"}, ops(engine.Calls()))
	calls := engine.Calls()
	assert.Equal(t, calls[0].Handle, calls[1].Handle)
	assert.Equal(t, 1, engine.MaxAlive())
	assert.Equal(t, 1, engine.Alive())
}

func TestFire_MissingSoundSkipsPlayback(t *testing.T) {
	surface := &fakeSurface{}
	engine := player.NewMock()
	tr := New(surface, engine, filepath.Join(t.TempDir(), "nope.mp3"))

	tr.Fire()

	assert.Equal(t, 1, surface.shows, "the alarm is still shown")
	assert.Empty(t, engine.Calls())
	assert.False(t, tr.Active())
}

func TestFire_NoEngineOrSurface(t *testing.T) {
	tr := New(nil, nil, "")
	assert.NotPanics(t, func() {
		tr.Fire()
		tr.Hide()
		tr.Cancel()
	})
	assert.False(t, tr.Active())
}

func TestFire_StartErrorIsContained(t *testing.T) {
	engine := player.NewMock()
	engine.SetStartError(errors.New("device busy"))
	surface := &fakeSurface{}
	tr := New(surface, engine, soundFile(t))

	tr.Fire()

	assert.Equal(t, 1, surface.shows)
	assert.False(t, tr.Active())
}

func TestFire_SurfaceErrorDoesNotBlockPlayback(t *testing.T) {
	engine := player.NewMock()
	tr := New(&fakeSurface{err: errors.New("no notification daemon")}, engine, soundFile(t))

	tr.Fire()

	assert.True(t, tr.Active())
}

func TestCancel(t *testing.T) {
	engine := player.NewMock()
	tr := New(&fakeSurface{}, engine, soundFile(t))
	tr.Fire()

	tr.Cancel()
	assert.False(t, tr.Active())
	assert.Equal(t, 0, engine.Alive())

	// Second cancel has nothing to stop.
	tr.Cancel()
	assert.Equal(t, []string{"start", "stop"}, ops(engine.Calls()))
}

func TestCancel_SwallowsStopError(t *testing.T) {
	engine := player.NewMock()
	engine.SetStopError(errors.New("pipeline gone"))
	tr := New(&fakeSurface{}, engine, soundFile(t))
	tr.Fire()

	assert.NotPanics(t, tr.Cancel)
	assert.False(t, tr.Active())
}

func TestHandleEvent(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"end of stream", nil},
		{"playback error", errors.New("decode failure")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := player.NewMock()
			tr := New(&fakeSurface{}, engine, soundFile(t))
			tr.Fire()
			h := engine.Calls()[0].Handle

			tr.HandleEvent(engine.SimulateEnd(h, tt.err))

			assert.False(t, tr.Active())
			assert.Equal(t, []string{"start", "stop"}, ops(engine.Calls()))

			// A later expiry starts fresh playback.
			tr.Fire()
			assert.True(t, tr.Active())
			assert.Equal(t, []string{"start", "stop", "start"}, ops(engine.Calls()))
		})
	}
}

func TestHandleEvent_IgnoresStaleHandle(t *testing.T) {
	engine := player.NewMock()
	tr := New(&fakeSurface{}, engine, soundFile(t))
	tr.Fire()
	first := engine.Calls()[0].Handle
	tr.Fire()

	tr.HandleEvent(player.Event{Handle: first})

	assert.True(t, tr.Active(), "stale completion must not release the current instance")
}

func TestHide(t *testing.T) {
	surface := &fakeSurface{}
	tr := New(surface, nil, "")
	tr.Show()
	tr.Hide()
	tr.Hide()
	assert.Equal(t, 2, surface.hides)
	assert.False(t, surface.visible)
}
