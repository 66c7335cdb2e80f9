package tray

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tytimer/internal/app"
)

func labels(items []menuItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		if it.separator {
			out[i] = "---"
			continue
		}
		out[i] = it.label
	}
	return out
}

func TestBuildMenu(t *testing.T) {
	items := buildMenu(true, []int{1, 5, 10})

	assert.Equal(t, []string{
		"Pause", "Show Alarm Window", "---",
		"Restart at 1%", "Restart at 5%", "Restart at 10%",
		"---", "Quit",
	}, labels(items))

	paused := buildMenu(false, nil)
	assert.Equal(t, "Resume", paused[0].label)
	assert.Equal(t, []string{"Resume", "Show Alarm Window", "---", "---", "Quit"}, labels(paused))
}

func TestBuildMenu_UniqueIDs(t *testing.T) {
	seen := map[int32]bool{}
	for _, it := range buildMenu(true, []int{1, 2, 3, 4, 5}) {
		assert.False(t, seen[it.id], "duplicate id %d", it.id)
		assert.NotEqual(t, idRoot, it.id)
		seen[it.id] = true
	}
}

func TestFindItem(t *testing.T) {
	items := buildMenu(true, []int{1, 5, 10})

	tests := []struct {
		id     int32
		want   app.Command
		wantOK bool
	}{
		{idToggle, app.TogglePause(), true},
		{idShowAlarm, app.ShowAlarm(), true},
		{idRestartBase + 1, app.RestartAt(5), true},
		{idQuit, app.Quit(), true},
		{idSeparator1, app.Command{}, false},
		{idRoot, app.Command{}, false},
		{999, app.Command{}, false},
	}
	for _, tt := range tests {
		it, ok := findItem(items, tt.id)
		require.Equal(t, tt.wantOK, ok, "id %d", tt.id)
		if ok {
			assert.Equal(t, tt.want, it.command)
		}
	}
}

func TestStatusText(t *testing.T) {
	running := app.Status{Label: "4:59", Remaining: 299, Original: 300, Running: true, At: time.Now()}
	paused := app.Status{Label: "4:59", Remaining: 299, Original: 300, Attention: true}
	expired := app.Status{Label: "0:00", Original: 300, Running: true, Expired: true}

	assert.Equal(t, "tytimer (4:59)", title(running))
	assert.Equal(t, "Active", itemStatus(running))
	assert.Equal(t, "NeedsAttention", itemStatus(paused))
	assert.Equal(t, "Active", itemStatus(expired))

	assert.Contains(t, description(running), "Remaining 4:59, ends")
	assert.Contains(t, description(running), "from now")
	assert.Equal(t, "Remaining 4:59 (paused)", description(paused))
	assert.Equal(t, "Time is up", description(expired))
}
