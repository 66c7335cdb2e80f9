package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/llehouerou/tytimer/internal/errmsg"
)

// backgroundArgs is the command line of the detached copy.
func backgroundArgs(o *options, minutesArg string) []string {
	args := []string{"--no-daemon"}
	if o.configPath != "" {
		args = append(args, "--config", o.configPath)
	}
	return append(args, "--", minutesArg)
}

func runBackground(o *options, minutesArg string) error {
	if err := o.spawn(backgroundArgs(o, minutesArg)); err != nil {
		return startupFailure(errmsg.OpStartBackground, err)
	}
	fmt.Fprintln(o.stdout, "Timer started in background.")
	return nil
}

// spawnDetached starts a copy of this executable in a new session with its
// standard streams on the null device, and does not wait for it.
func spawnDetached(args []string) error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	cmd := exec.Command(exe, args...)
	// nil streams are connected to the null device
	cmd.Stdin, cmd.Stdout, cmd.Stderr = nil, nil, nil
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
