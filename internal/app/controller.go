package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/llehouerou/tytimer/internal/alarm"
	"github.com/llehouerou/tytimer/internal/errmsg"
	"github.com/llehouerou/tytimer/internal/player"
	"github.com/llehouerou/tytimer/internal/ticker"
	"github.com/llehouerou/tytimer/internal/timer"
)

// ErrStopped is returned by Submit once the loop has exited.
var ErrStopped = errors.New("timer stopped")

// ErrAlreadyRunning is returned when Run is called twice.
var ErrAlreadyRunning = errors.New("timer loop already running")

// TickSource delivers the periodic ticks. Start replaces any installed ticker.
type TickSource interface {
	Start(interval time.Duration)
	C() <-chan time.Time
	Stop()
}

// Controller is the single scheduling context. Ticks, commands and playback
// events are handled one at a time on the goroutine running Run; no other
// goroutine touches the timer or the alarm trigger.
type Controller struct {
	timer    *timer.Timer
	alarm    *alarm.Trigger
	sinks    []StatusSink
	ticks    TickSource
	interval time.Duration
	playback <-chan player.Event
	now      func() time.Time

	commands chan Command
	started  chan struct{}
	done     chan struct{}
}

// Option configures a Controller.
type Option func(*Controller)

// WithSinks adds status sinks.
func WithSinks(sinks ...StatusSink) Option {
	return func(c *Controller) { c.sinks = append(c.sinks, sinks...) }
}

// WithTickSource replaces the default one-second ticker.
func WithTickSource(ts TickSource) Option {
	return func(c *Controller) { c.ticks = ts }
}

// WithInterval changes the tick interval.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) { c.interval = d }
}

// WithPlaybackEvents routes playback end/error notifications into the loop.
func WithPlaybackEvents(ch <-chan player.Event) Option {
	return func(c *Controller) { c.playback = ch }
}

// WithClock overrides the wall clock used for status timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New creates a controller for t and a.
func New(t *timer.Timer, a *alarm.Trigger, opts ...Option) *Controller {
	c := &Controller{
		timer:    t,
		alarm:    a,
		ticks:    ticker.New(),
		interval: ticker.Interval,
		now:      time.Now,
		commands: make(chan Command),
		started:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit delivers a command to the loop. It blocks until the loop accepts
// it, the loop exits, or ctx is done.
func (c *Controller) Submit(ctx context.Context, cmd Command) error {
	select {
	case c.commands <- cmd:
		return nil
	case <-c.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed after Run has returned and teardown has completed.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Run drives the timer until ctx is cancelled or a quit command arrives.
// Teardown always cancels the alarm sound and hides the alarm surface.
func (c *Controller) Run(ctx context.Context) error {
	select {
	case <-c.started:
		return ErrAlreadyRunning
	default:
		close(c.started)
	}
	defer close(c.done)
	defer c.shutdown()

	c.ticks.Start(c.interval)
	slog.Info("timer started", "duration", timer.Format(c.timer.Original()))
	c.publish()

	for {
		select {
		case <-ctx.Done():
			slog.Info("shutdown requested", "reason", context.Cause(ctx))
			return nil
		case cmd := <-c.commands:
			if cmd.Kind == CmdQuit {
				slog.Info("quit requested")
				return nil
			}
			c.handle(cmd)
		case <-c.ticks.C():
			c.tick()
		case ev := <-c.playback:
			c.alarm.HandleEvent(ev)
		}
	}
}

// tick publishes the expired status before the alarm fires.
func (c *Controller) tick() {
	expired := c.timer.Tick()
	c.publish()
	if expired {
		slog.Info("timer expired", "original", timer.Format(c.timer.Original()))
		c.alarm.Fire()
	}
}

func (c *Controller) handle(cmd Command) {
	switch cmd.Kind {
	case CmdTogglePause:
		if c.timer.TogglePause() {
			slog.Info("timer resumed", "remaining", timer.Format(c.timer.Remaining()))
		} else {
			slog.Info("timer paused", "remaining", timer.Format(c.timer.Remaining()))
		}
	case CmdRestart:
		remaining := c.timer.RestartAt(cmd.Percent)
		slog.Info("timer restarted", "percent", cmd.Percent, "remaining", timer.Format(remaining))
		c.alarm.Cancel()
		c.alarm.Hide()
	case CmdShowAlarm:
		c.alarm.Show()
		return
	default:
		slog.Warn("ignoring unknown command", "command", cmd)
		return
	}
	c.publish()
}

func (c *Controller) publish() {
	s := statusOf(c.timer, c.now())
	for _, sink := range c.sinks {
		if err := sink.SetStatus(s); err != nil {
			slog.Warn(errmsg.Format(errmsg.OpUpdateStatus, err), "sink", fmt.Sprintf("%T", sink))
		}
	}
}

func (c *Controller) shutdown() {
	c.ticks.Stop()
	c.alarm.Cancel()
	c.alarm.Hide()
	slog.Info("timer stopped", "remaining", timer.Format(c.timer.Remaining()))
}
