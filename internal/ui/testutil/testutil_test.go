package testutil

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestStripANSI(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("4:59")
	if got := StripANSI(styled); got != "4:59" {
		t.Errorf("StripANSI() = %q, want %q", got, "4:59")
	}
	if got := StripANSI("plain"); got != "plain" {
		t.Errorf("StripANSI(plain) = %q", got)
	}
}

func TestFindLine(t *testing.T) {
	out := "tytimer\n  4:59 / 5:00\nq quit"

	if got := FindLine(out, "5:00"); got != "  4:59 / 5:00" {
		t.Errorf("FindLine() = %q", got)
	}
	if ContainsLine(out, "missing") {
		t.Error("ContainsLine() found a missing substring")
	}
}

func TestKeyMsg(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{" ", " "},
		{"q", "q"},
		{"esc", "esc"},
		{"ctrl+c", "ctrl+c"},
		{"1", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := KeyMsg(tt.key).String(); got != tt.want {
				t.Errorf("KeyMsg(%q).String() = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestExecuteCmd(t *testing.T) {
	if ExecuteCmd(nil) != nil {
		t.Error("ExecuteCmd(nil) should return nil")
	}
}
