// Package tray shows the countdown as a StatusNotifierItem with a command menu.
package tray

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/tytimer/internal/app"
)

// Submitter accepts timer commands.
type Submitter interface {
	Submit(ctx context.Context, cmd app.Command) error
}

// Menu item IDs. Restart items are numbered from idRestartBase.
const (
	idRoot int32 = iota
	idToggle
	idShowAlarm
	idSeparator1
	idSeparator2
	idQuit

	idRestartBase int32 = 100
)

type menuItem struct {
	id        int32
	label     string
	separator bool
	command   app.Command
}

func buildMenu(running bool, percentages []int) []menuItem {
	toggle := "Pause"
	if !running {
		toggle = "Resume"
	}
	items := []menuItem{
		{id: idToggle, label: toggle, command: app.TogglePause()},
		{id: idShowAlarm, label: "Show Alarm Window", command: app.ShowAlarm()},
		{id: idSeparator1, separator: true},
	}
	for i, pct := range percentages {
		items = append(items, menuItem{
			id:      idRestartBase + int32(i),
			label:   fmt.Sprintf("Restart at %d%%", pct),
			command: app.RestartAt(pct),
		})
	}
	return append(items,
		menuItem{id: idSeparator2, separator: true},
		menuItem{id: idQuit, label: "Quit", command: app.Quit()},
	)
}

func findItem(items []menuItem, id int32) (menuItem, bool) {
	for _, it := range items {
		if it.id == id && !it.separator {
			return it, true
		}
	}
	return menuItem{}, false
}

func title(s app.Status) string {
	return fmt.Sprintf("tytimer (%s)", s.Label)
}

// itemStatus maps the timer to the SNI status: paused asks for attention.
func itemStatus(s app.Status) string {
	if s.Attention {
		return "NeedsAttention"
	}
	return "Active"
}

func description(s app.Status) string {
	switch {
	case s.Expired:
		return "Time is up"
	case !s.Running:
		return fmt.Sprintf("Remaining %s (paused)", s.Label)
	default:
		return fmt.Sprintf("Remaining %s, ends %s", s.Label, humanize.Time(s.EndsAt()))
	}
}
