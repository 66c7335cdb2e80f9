package timer

// State is the observable state of a Timer.
//
//	┌──────────┐   toggle    ┌──────────┐
//	│ Running  │ ◀─────────▶ │  Paused  │
//	└──────────┘             └──────────┘
//	     │ tick to 0              │
//	     ▼                        │ restart
//	┌──────────┐   restart        │
//	│ Expired  │ ─────────▶ Running ◀┘
//	└──────────┘
//
// Expired is Running with nothing left to count. Pausing an expired timer
// yields Paused with zero remaining; resuming it returns to Expired without
// firing the alarm again.
type State int

const (
	Running State = iota
	Paused
	Expired
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	case Expired:
		return "Expired"
	default:
		return "Unknown"
	}
}
