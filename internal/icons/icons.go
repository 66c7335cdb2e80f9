package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Timer   string
	Running string
	Paused  string
	Expired string
}

var (
	nerdIcons = Icons{
		Timer:   "\U000f051b ", // nf-md-timer_outline
		Running: "\uf04b",      // nf-fa-play
		Paused:  "\uf04c",      // nf-fa-pause
		Expired: "\U000f009e",  // nf-md-bell_ring
	}

	unicodeIcons = Icons{
		Timer:   "⏱ ",
		Running: "▶",
		Paused:  "⏸",
		Expired: "⏰",
	}

	noneIcons = Icons{
		Timer:   "",
		Running: ">",
		Paused:  "||",
		Expired: "!",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// Timer prefixes the application title.
func Timer() string {
	return current.Timer
}

// State returns the indicator for the timer state.
func State(running, expired bool) string {
	switch {
	case expired:
		return current.Expired
	case running:
		return current.Running
	default:
		return current.Paused
	}
}
