package app

import "fmt"

// CommandKind identifies a user command.
type CommandKind int

const (
	CmdTogglePause CommandKind = iota
	CmdRestart
	CmdShowAlarm
	CmdQuit
)

// Command is a discrete user request delivered to the scheduling loop.
type Command struct {
	Kind    CommandKind
	Percent int // CmdRestart only
}

// TogglePause pauses a running timer or resumes a paused one.
func TogglePause() Command { return Command{Kind: CmdTogglePause} }

// RestartAt re-arms the timer at pct percent of its original duration.
func RestartAt(pct int) Command { return Command{Kind: CmdRestart, Percent: pct} }

// ShowAlarm shows the alarm surface without sound.
func ShowAlarm() Command { return Command{Kind: CmdShowAlarm} }

// Quit stops the timer and exits the loop.
func Quit() Command { return Command{Kind: CmdQuit} }

func (c Command) String() string {
	switch c.Kind {
	case CmdTogglePause:
		return "toggle-pause"
	case CmdRestart:
		return fmt.Sprintf("restart-%d%%", c.Percent)
	case CmdShowAlarm:
		return "show-alarm"
	case CmdQuit:
		return "quit"
	default:
		return "unknown"
	}
}
