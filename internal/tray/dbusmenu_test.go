//go:build linux

package tray

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tytimer/internal/app"
)

type recordingSubmitter struct {
	mu   sync.Mutex
	cmds []app.Command
}

func (r *recordingSubmitter) Submit(_ context.Context, cmd app.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = append(r.cmds, cmd)
	return nil
}

func (r *recordingSubmitter) commands() []app.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]app.Command(nil), r.cmds...)
}

func newOfflineTray(percentages []int) (*Tray, *recordingSubmitter) {
	sub := &recordingSubmitter{}
	t := &Tray{
		percentages: percentages,
		items:       buildMenu(true, percentages),
		revision:    1,
		submit:      sub,
	}
	return t, sub
}

func TestRootLayout(t *testing.T) {
	items := buildMenu(true, []int{5})

	root := rootLayout(items, -1)
	assert.Equal(t, idRoot, root.ID)
	require.Len(t, root.Children, len(items))

	first, ok := root.Children[0].Value().(layout)
	require.True(t, ok)
	assert.Equal(t, idToggle, first.ID)
	assert.Equal(t, "Pause", first.Properties["label"].Value())

	sep, ok := root.Children[2].Value().(layout)
	require.True(t, ok)
	assert.Equal(t, "separator", sep.Properties["type"].Value())

	assert.Empty(t, rootLayout(items, 0).Children)
}

func TestMenuHandler_Event(t *testing.T) {
	tr, sub := newOfflineTray([]int{1, 5, 10})
	h := &menuHandler{t: tr}

	assert.Nil(t, h.Event(idToggle, "clicked", dbus.MakeVariant(""), 0))
	assert.Nil(t, h.Event(idRestartBase+2, "clicked", dbus.MakeVariant(""), 0))
	assert.Nil(t, h.Event(idQuit, "hovered", dbus.MakeVariant(""), 0))

	assert.Equal(t, []app.Command{app.TogglePause(), app.RestartAt(10)}, sub.commands())
}

func TestMenuHandler_EventKeepsClickOrder(t *testing.T) {
	tr, sub := newOfflineTray([]int{1, 5, 10})
	h := &menuHandler{t: tr}

	for range 20 {
		assert.Nil(t, h.Event(idToggle, "clicked", dbus.MakeVariant(""), 0))
		assert.Nil(t, h.Event(idQuit, "clicked", dbus.MakeVariant(""), 0))
	}

	cmds := sub.commands()
	require.Len(t, cmds, 40)
	for i := 0; i < len(cmds); i += 2 {
		assert.Equal(t, app.TogglePause(), cmds[i])
		assert.Equal(t, app.Quit(), cmds[i+1])
	}
}

func TestMenuHandler_EventGroupReportsMissing(t *testing.T) {
	tr, sub := newOfflineTray(nil)
	h := &menuHandler{t: tr}

	missing, dErr := h.EventGroup([]menuEvent{
		{ID: idQuit, EventID: "clicked", Data: dbus.MakeVariant("")},
		{ID: 42, EventID: "clicked", Data: dbus.MakeVariant("")},
	})
	assert.Nil(t, dErr)
	assert.Equal(t, []int32{42}, missing)
	assert.Equal(t, []app.Command{app.Quit()}, sub.commands())
}

func TestMenuHandler_GetGroupProperties(t *testing.T) {
	tr, _ := newOfflineTray([]int{5})
	h := &menuHandler{t: tr}

	all, dErr := h.GetGroupProperties(nil, nil)
	assert.Nil(t, dErr)
	assert.Len(t, all, len(tr.items))

	some, _ := h.GetGroupProperties([]int32{idQuit}, nil)
	require.Len(t, some, 1)
	assert.Equal(t, "Quit", some[0].Properties["label"].Value())

	v, _ := h.GetProperty(idShowAlarm, "label")
	assert.Equal(t, "Show Alarm Window", v.Value())
}

func TestItemHandler_Activate(t *testing.T) {
	tr, sub := newOfflineTray(nil)
	h := &itemHandler{t: tr}

	assert.Nil(t, h.Activate(0, 0))
	assert.Nil(t, h.SecondaryActivate(0, 0))

	assert.Equal(t, []app.Command{app.ShowAlarm(), app.TogglePause()}, sub.commands())
}

func TestNew_Registers(t *testing.T) {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}

	tr, err := New([]int{1, 5, 10})
	if err != nil {
		t.Skipf("no tray host: %v", err)
	}
	defer tr.Close()

	require.NoError(t, tr.SetStatus(app.Status{Label: "0:06", Remaining: 6, Original: 6, Running: true, At: time.Now()}))
}
