// Package cli implements the tytimer command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/llehouerou/tytimer/internal/errmsg"
	"github.com/llehouerou/tytimer/internal/timer"
)

// Exit codes.
const (
	ExitOK              = 0
	ExitStartupFailure  = 1
	ExitInvalidDuration = 2
)

// exitError carries a process exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error { return &exitError{code: ExitInvalidDuration, err: err} }

// opError renders a failed operation the way it is shown to users.
type opError struct {
	op  errmsg.Op
	err error
}

func (e *opError) Error() string { return errmsg.Format(e.op, e.err) }
func (e *opError) Unwrap() error { return e.err }

// startupFailure marks op as an unrecoverable startup failure.
func startupFailure(op errmsg.Op, err error) error {
	return &exitError{code: ExitStartupFailure, err: &opError{op: op, err: err}}
}

type options struct {
	configPath string
	noDaemon   bool
	tui        bool

	stdout io.Writer
	spawn  func(args []string) error
	run    func(o *options, minutes float64) error
}

// NewRootCmd builds the root command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{
		spawn: spawnDetached,
		run:   runForeground,
	})
}

func newRootCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tytimer <minutes>",
		Short: "Countdown timer with tray icon and alarm",
		Long: `tytimer counts down the given number of minutes (decimals allowed),
shows the remaining time in the system tray and raises an alarm with sound
when it reaches zero. It detaches into the background unless --no-daemon
or --tui is given.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := parseMinutes(args[0])
			if err != nil {
				return usageError(err)
			}
			if o.stdout == nil {
				o.stdout = cmd.OutOrStdout()
			}
			if o.tui || o.noDaemon {
				return o.run(o, minutes)
			}
			return runBackground(o, args[0])
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	cmd.Flags().StringVarP(&o.configPath, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/tytimer/config.toml)")
	cmd.Flags().BoolVar(&o.noDaemon, "no-daemon", false, "run in the foreground")
	cmd.Flags().BoolVar(&o.tui, "tui", false, "show the countdown in the terminal (implies --no-daemon)")
	return cmd
}

// parseMinutes accepts a positive, finite number of minutes.
func parseMinutes(arg string) (float64, error) {
	minutes, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", timer.ErrInvalidDuration, arg)
	}
	if _, err := timer.New(minutes); err != nil {
		return 0, err
	}
	return minutes, nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return execute(NewRootCmd(), os.Args[1:], os.Stderr)
}

func execute(cmd *cobra.Command, args []string, stderr io.Writer) int {
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return ExitOK
	}
	fmt.Fprintln(stderr, "tytimer:", err)

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.code == ExitInvalidDuration {
			fmt.Fprintln(stderr, cmd.UseLine())
		}
		return ee.code
	}
	// Argument count errors from cobra.
	fmt.Fprintln(stderr, cmd.UseLine())
	return ExitInvalidDuration
}
