package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tytimer/internal/alarm"
	"github.com/llehouerou/tytimer/internal/app"
	"github.com/llehouerou/tytimer/internal/config"
	"github.com/llehouerou/tytimer/internal/errmsg"
	"github.com/llehouerou/tytimer/internal/icons"
	"github.com/llehouerou/tytimer/internal/logging"
	"github.com/llehouerou/tytimer/internal/mpris"
	"github.com/llehouerou/tytimer/internal/mqtt"
	"github.com/llehouerou/tytimer/internal/notify"
	"github.com/llehouerou/tytimer/internal/player"
	"github.com/llehouerou/tytimer/internal/stderr"
	"github.com/llehouerou/tytimer/internal/timer"
	"github.com/llehouerou/tytimer/internal/tray"
	"github.com/llehouerou/tytimer/internal/ui/countdown"
)

// runForeground runs the timer in this process until it is quit or signalled.
func runForeground(o *options, minutes float64) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return startupFailure(errmsg.OpLoadConfig, err)
	}

	closeLog, err := logging.Setup(cfg.GetLogFile(), cfg.GetLogLevel())
	if err != nil {
		return startupFailure(errmsg.OpSetupLogging, err)
	}
	defer closeLog()

	t, err := timer.New(minutes)
	if err != nil {
		return startupFailure(errmsg.OpInitialize, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	err = run(ctx, cfg, t, o.tui)
	if err != nil {
		slog.Error("startup failed", "error", err)
	}
	return err
}

func run(ctx context.Context, cfg *config.Config, t *timer.Timer, tui bool) error {
	percentages := cfg.GetRestartPercentages()

	var engine alarm.Engine
	var playback <-chan player.Event
	if cfg.SoundEnabled() {
		if tui {
			if err := stderr.Start(); err != nil {
				slog.Debug("stderr capture unavailable", "error", err)
			}
			defer stderr.Stop()
		}
		eng := player.New(cfg.GetVolume())
		defer eng.Close()
		if err := eng.Init(); err != nil {
			return startupFailure(errmsg.OpInitAudio, err)
		}
		engine = eng
		playback = eng.Events()
	}

	var sinks []app.StatusSink
	var surface alarm.Surface
	var alarmNotice *notify.Alarm
	if cfg.NotifyEnabled() {
		n, err := notify.New()
		if err != nil {
			return startupFailure(errmsg.OpStartNotifications, err)
		}
		alarmNotice = notify.NewAlarm(n, percentages, int32(cfg.Notify.TimeoutMS))
		defer alarmNotice.Shutdown()
		surface = alarmNotice
		sinks = append(sinks, alarmNotice)
	}

	var trayIcon *tray.Tray
	if cfg.TrayEnabled() {
		var err error
		trayIcon, err = tray.New(percentages)
		if err != nil {
			return startupFailure(errmsg.OpStartTray, err)
		}
		defer trayIcon.Close()
		sinks = append(sinks, trayIcon)
	}

	var remote *mpris.Adapter
	if cfg.MPRISEnabled() {
		a, err := mpris.New()
		if err != nil {
			slog.Warn(errmsg.Format(errmsg.OpStartMPRIS, err))
		} else {
			remote = a
			defer remote.Close()
			sinks = append(sinks, remote)
		}
	}

	if cfg.HasMQTTConfig() {
		mc := cfg.GetMQTTConfig()
		pub, err := mqtt.NewRealPublisher(mqtt.Options{Broker: mc.Broker, Topic: mc.Topic, ClientID: mc.ClientID})
		if err != nil {
			slog.Warn(errmsg.Format(errmsg.OpConnectMQTT, err))
		} else {
			defer pub.Close()
			sinks = append(sinks, pub)
		}
	}

	var view *countdown.Sink
	if tui {
		view = countdown.NewSink()
		sinks = append(sinks, view)
	}

	trigger := alarm.New(surface, engine, cfg.GetSoundFile())
	ctrl := app.New(t, trigger,
		app.WithSinks(sinks...),
		app.WithPlaybackEvents(playback),
	)

	if trayIcon != nil {
		trayIcon.Bind(ctrl)
	}
	if remote != nil {
		remote.Bind(ctrl)
	}
	if alarmNotice != nil {
		go alarmNotice.Run(ctx, ctrl)
	}

	if !tui {
		return ctrl.Run(ctx)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- ctrl.Run(ctx) }()

	icons.Init(cfg.GetIcons())
	model := countdown.New(ctx, ctrl, view.Updates(), ctrl.Done(), percentages)
	if _, err := tea.NewProgram(model).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		slog.Warn(errmsg.Format(errmsg.OpRunTerminalView, err))
	}
	return <-errCh
}
