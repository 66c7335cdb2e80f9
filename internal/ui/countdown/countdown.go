// Package countdown renders the timer in the terminal and turns key presses
// into timer commands.
package countdown

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/tytimer/internal/app"
	"github.com/llehouerou/tytimer/internal/icons"
	"github.com/llehouerou/tytimer/internal/keymap"
	"github.com/llehouerou/tytimer/internal/timer"
	"github.com/llehouerou/tytimer/internal/ui/styles"
)

const (
	minBarWidth = 10
	maxBarWidth = 60
	framePad    = 8
)

// Submitter accepts timer commands.
type Submitter interface {
	Submit(ctx context.Context, cmd app.Command) error
}

// StatusMsg carries a status snapshot into the view.
type StatusMsg app.Status

// StoppedMsg reports that the timer loop has exited.
type StoppedMsg struct{}

// submitErrMsg reports a command the loop did not accept.
type submitErrMsg struct{ err error }

// Model is the bubbletea model of the terminal view.
type Model struct {
	ctx         context.Context
	submit      Submitter
	updates     <-chan app.Status
	stopped     <-chan struct{}
	keys        *keymap.Resolver
	percentages []int

	status   app.Status
	bar      progress.Model
	width    int
	showHelp bool
	lastErr  error
	quitting bool
}

// New creates the view. updates delivers statuses from a Sink, stopped is
// closed when the timer loop exits.
func New(ctx context.Context, s Submitter, updates <-chan app.Status, stopped <-chan struct{}, percentages []int) Model {
	t := styles.T()
	return Model{
		ctx:         ctx,
		submit:      s,
		updates:     updates,
		stopped:     stopped,
		keys:        keymap.NewResolver(keymap.All, percentages),
		percentages: percentages,
		bar: progress.New(
			progress.WithGradient(string(t.Primary), string(t.Secondary)),
			progress.WithoutPercentage(),
			progress.WithWidth(maxBarWidth),
		),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForStatus(), m.waitForStop())
}

func (m Model) waitForStatus() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-m.updates
		if !ok {
			return StoppedMsg{}
		}
		return StatusMsg(s)
	}
}

func (m Model) waitForStop() tea.Cmd {
	return func() tea.Msg {
		<-m.stopped
		return StoppedMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StatusMsg:
		m.status = app.Status(msg)
		return m, m.waitForStatus()
	case StoppedMsg:
		m.quitting = true
		return m, tea.Quit
	case submitErrMsg:
		m.lastErr = msg.err
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(max(msg.Width-framePad, minBarWidth), maxBarWidth)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.keys.Resolve(key) {
	case keymap.ActionQuit:
		return m, m.send(app.Quit())
	case keymap.ActionDetach:
		m.quitting = true
		return m, tea.Quit
	case keymap.ActionHelp:
		m.showHelp = !m.showHelp
		return m, nil
	case keymap.ActionPlayPause:
		return m, m.send(app.TogglePause())
	case keymap.ActionShowAlarm:
		return m, m.send(app.ShowAlarm())
	case keymap.ActionRestartFull:
		return m, m.send(app.RestartAt(100))
	case keymap.ActionRestartPick:
		if pct, ok := m.keys.Preset(key); ok {
			return m, m.send(app.RestartAt(pct))
		}
	}
	return m, nil
}

func (m Model) send(cmd app.Command) tea.Cmd {
	return func() tea.Msg {
		if err := m.submit.Submit(m.ctx, cmd); err != nil {
			slog.Debug("key command dropped", "command", cmd, "error", err)
			return submitErrMsg{err: err}
		}
		return nil
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	s := styles.T().S()
	st := m.status

	header := icons.Timer() + styles.BoldGradient("tytimer", styles.T().Primary, styles.T().Secondary)

	clock := s.Clock
	switch {
	case st.Expired:
		clock = s.Expired
	case !st.Running:
		clock = s.Paused
	}
	line := fmt.Sprintf("%s %s %s",
		icons.State(st.Running, st.Expired),
		clock.Render(st.Label),
		s.Muted.Render("/ "+timer.Format(st.Original)))

	lines := []string{header, "", line, m.bar.ViewAs(fraction(st)), s.Muted.Render(stateLine(st))}
	if m.lastErr != nil {
		lines = append(lines, s.Expired.UnsetBlink().Render(m.lastErr.Error()))
	}
	lines = append(lines, "", s.Subtle.Render(m.hints()))

	return s.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)) + "\n"
}

// fraction is the share of the countdown still remaining.
func fraction(st app.Status) float64 {
	if st.Original <= 0 {
		return 0
	}
	return min(float64(st.Remaining)/float64(st.Original), 1)
}

func stateLine(st app.Status) string {
	switch {
	case st.Original == 0:
		return "starting"
	case st.Expired:
		return "Time is up"
	case !st.Running:
		return "Paused"
	default:
		return "Ends " + humanize.Time(st.EndsAt())
	}
}

func (m Model) hints() string {
	if !m.showHelp {
		return "space pause · r restart · q quit · ? help"
	}
	var b strings.Builder
	for _, ctx := range []string{"timer", "global"} {
		for _, kb := range keymap.ByContext(ctx) {
			keys := m.keys.KeysFor(kb.Action)
			desc := kb.Description
			if kb.Action == keymap.ActionRestartPick {
				desc = presetLabel(m.percentages[:len(keys)])
			}
			if len(keys) == 0 {
				continue
			}
			fmt.Fprintf(&b, "%-10s %s\n", displayKeys(keys), desc)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func presetLabel(percentages []int) string {
	parts := make([]string, len(percentages))
	for i, p := range percentages {
		parts[i] = fmt.Sprintf("%d%%", p)
	}
	return "Restart at " + strings.Join(parts, "/")
}

func displayKeys(keys []string) string {
	out := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		out[i] = k
	}
	if len(out) > 3 {
		return out[0] + "-" + out[len(out)-1]
	}
	return strings.Join(out, "/")
}
