package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/tytimer/internal/app"
	"github.com/llehouerou/tytimer/internal/errmsg"
	"github.com/llehouerou/tytimer/internal/timer"
)

const (
	actionStop        = "stop"
	actionPausePrefix = "pause-"
)

// Submitter accepts timer commands.
type Submitter interface {
	Submit(ctx context.Context, cmd app.Command) error
}

// Alarm is the alarm surface: a critical notification offering Stop and
// Pause buttons. Show and Hide run on the scheduling goroutine; Run
// delivers button presses from the notification server and redraws the
// visible alarm after status changes.
type Alarm struct {
	n           Notifier
	percentages []int
	timeout     int32
	refresh     chan struct{}

	mu      sync.Mutex
	id      uint32
	visible bool
	status  app.Status
}

// NewAlarm creates an alarm surface. percentages lists the pause buttons,
// timeout is the expiry in ms (0 never expires).
func NewAlarm(n Notifier, percentages []int, timeout int32) *Alarm {
	return &Alarm{
		n:           n,
		percentages: percentages,
		timeout:     timeout,
		refresh:     make(chan struct{}, 1),
	}
}

// Show presents the alarm, replacing it if already visible.
func (a *Alarm) Show() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.show()
}

func (a *Alarm) show() error {
	notif := a.notification()
	if a.visible {
		notif.ReplacesID = a.id
	}
	id, err := a.n.Notify(notif)
	if err != nil {
		return err
	}
	a.id = id
	a.visible = true
	return nil
}

// Hide closes the alarm. Hiding a hidden alarm does nothing.
func (a *Alarm) Hide() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.visible {
		return nil
	}
	id := a.id
	a.visible = false
	a.id = 0
	return a.n.Close(id)
}

// Visible reports whether the alarm notification is on screen.
func (a *Alarm) Visible() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.visible
}

// SetStatus records s and, when the alarm is visible and its text changed,
// schedules a redraw on the Run goroutine. It never calls the notifier.
func (a *Alarm) SetStatus(s app.Status) error {
	a.mu.Lock()
	changed := s.Label != a.status.Label || s.Running != a.status.Running
	a.status = s
	visible := a.visible
	a.mu.Unlock()
	if !visible || !changed {
		return nil
	}
	select {
	case a.refresh <- struct{}{}:
	default:
	}
	return nil
}

// redraw replaces the visible notification without holding the lock across
// the bus call. A notification hidden or replaced meanwhile is closed again.
func (a *Alarm) redraw() {
	a.mu.Lock()
	if !a.visible {
		a.mu.Unlock()
		return
	}
	notif := a.notification()
	notif.ReplacesID = a.id
	a.mu.Unlock()

	id, err := a.n.Notify(notif)
	if err != nil {
		slog.Warn(errmsg.Format(errmsg.OpShowAlarm, err))
		return
	}

	a.mu.Lock()
	current := a.visible && a.id == notif.ReplacesID
	if current {
		a.id = id
	}
	orphan := !current && (!a.visible || a.id != id)
	a.mu.Unlock()
	if orphan {
		if err := a.n.Close(id); err != nil {
			slog.Debug("closing stale alarm notification", "id", id, "error", err)
		}
	}
}

// Run forwards button presses to s and redraws the visible alarm until ctx
// is done or the notifier disconnects.
func (a *Alarm) Run(ctx context.Context, s Submitter) {
	events := a.n.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case <-a.refresh:
			a.redraw()
		case ev, ok := <-events:
			if !ok {
				return
			}
			a.handle(ctx, s, ev)
		}
	}
}

func (a *Alarm) handle(ctx context.Context, s Submitter, ev Event) {
	a.mu.Lock()
	if !a.visible || ev.ID != a.id {
		a.mu.Unlock()
		return
	}
	if ev.Closed {
		a.visible = false
		a.id = 0
		a.mu.Unlock()
		slog.Debug("alarm notification closed", "reason", ev.Reason)
		return
	}
	a.mu.Unlock()

	cmd, ok := actionCommand(ev.Action)
	if !ok {
		return
	}
	slog.Info("alarm action", "action", ev.Action)
	if err := s.Submit(ctx, cmd); err != nil {
		slog.Warn("alarm action dropped", "action", ev.Action, "error", err)
	}
}

func (a *Alarm) notification() Notification {
	actions := []Action{{Key: actionStop, Label: "Stop"}}
	for _, pct := range a.percentages {
		actions = append(actions, Action{
			Key:   actionPausePrefix + strconv.Itoa(pct),
			Label: fmt.Sprintf("Pause %d%%", pct),
		})
	}
	return Notification{
		Title:   "tytimer",
		Body:    alarmBody(a.status),
		Icon:    "alarm-symbolic",
		Timeout: a.timeout,
		Urgency: UrgencyCritical,
		Actions: actions,
	}
}

func alarmBody(s app.Status) string {
	if s.Original == 0 {
		return "Time is up"
	}
	body := fmt.Sprintf("Remaining: %s / Original: %s", s.Label, timer.Format(s.Original))
	if s.Running && s.Remaining > 0 {
		body += "\nEnds " + humanize.Time(s.EndsAt())
	}
	return body
}

// actionCommand maps a notification action key to a timer command.
func actionCommand(key string) (app.Command, bool) {
	if key == actionStop {
		return app.Quit(), true
	}
	if rest, ok := strings.CutPrefix(key, actionPausePrefix); ok {
		pct, err := strconv.Atoi(rest)
		if err != nil || pct <= 0 {
			return app.Command{}, false
		}
		return app.RestartAt(pct), true
	}
	return app.Command{}, false
}

// Shutdown hides the alarm and disconnects from the bus.
func (a *Alarm) Shutdown() {
	if err := a.Hide(); err != nil {
		slog.Warn(errmsg.Format(errmsg.OpHideAlarm, err))
	}
	if err := a.n.Disconnect(); err != nil {
		slog.Debug("notification bus disconnect", "error", err)
	}
}
