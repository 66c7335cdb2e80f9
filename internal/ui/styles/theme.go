package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the terminal view.
type Theme struct {
	// Brand/accent colors
	Primary   lipgloss.Color // Purple - running countdown
	Secondary lipgloss.Color // Gold/orange - gradient end

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color // Primary text (bright)
	FgMuted  lipgloss.Color // Secondary text (dimmed)
	FgSubtle lipgloss.Color // Tertiary text (very dim)

	Border lipgloss.Color

	// Status colors
	Warning lipgloss.Color // Paused
	Error   lipgloss.Color // Expired

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Clock   lipgloss.Style // Remaining time
	Paused  lipgloss.Style
	Expired lipgloss.Style
	Frame   lipgloss.Style // Rounded border around the view
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	Border: lipgloss.Color("#585858"),

	Warning: lipgloss.Color("#f1a208"),
	Error:   lipgloss.Color("#ff5555"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Clock: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Paused: lipgloss.NewStyle().
			Foreground(t.Warning).
			Bold(true),
		Expired: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true).
			Blink(true),
		Frame: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),
	}
}
