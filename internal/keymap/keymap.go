// Package keymap defines key bindings and action dispatch for the terminal view.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	ActionQuit        Action = "quit"
	ActionDetach      Action = "detach"
	ActionPlayPause   Action = "play_pause"
	ActionShowAlarm   Action = "show_alarm"
	ActionRestartFull Action = "restart_full"
	ActionRestartPick Action = "restart_pick" // digit selects the preset
	ActionHelp        Action = "help"
)

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "timer"
}

// RestartKeys are the digit keys selecting restart presets, in order.
var RestartKeys = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}

// All contains all key bindings for help generation.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Stop timer and quit", "global"},
	{ActionDetach, []string{"esc"}, "Close view, keep timer", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},

	// Timer
	{ActionPlayPause, []string{" ", "p"}, "Pause/resume", "timer"},
	{ActionShowAlarm, []string{"a"}, "Show alarm", "timer"},
	{ActionRestartFull, []string{"r"}, "Restart from full duration", "timer"},
	{ActionRestartPick, RestartKeys, "Restart at preset %", "timer"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
