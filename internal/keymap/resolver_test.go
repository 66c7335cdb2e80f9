//nolint:goconst // test cases intentionally repeat strings for readability
package keymap

import (
	"slices"
	"testing"
)

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(All, []int{1, 5, 10})

	tests := []struct {
		key      string
		expected Action
	}{
		{"q", ActionQuit},
		{"ctrl+c", ActionQuit},
		{" ", ActionPlayPause},
		{"p", ActionPlayPause},
		{"a", ActionShowAlarm},
		{"r", ActionRestartFull},
		{"1", ActionRestartPick},
		{"3", ActionRestartPick},
		{"4", ""},
		{"9", ""},
		{"esc", ActionDetach},
		{"unknown", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			result := r.Resolve(tt.key)
			if result != tt.expected {
				t.Errorf("Resolve(%q) = %q, want %q", tt.key, result, tt.expected)
			}
		})
	}
}

func TestResolver_Preset(t *testing.T) {
	r := NewResolver(All, []int{1, 5, 10})

	tests := []struct {
		key    string
		want   int
		wantOK bool
	}{
		{"1", 1, true},
		{"2", 5, true},
		{"3", 10, true},
		{"4", 0, false},
		{"r", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := r.Preset(tt.key)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Preset(%q) = %d, %v; want %d, %v", tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolver_PresetsBeyondDigits(t *testing.T) {
	pcts := make([]int, 12)
	for i := range pcts {
		pcts[i] = i + 1
	}
	r := NewResolver(All, pcts)

	if got := r.KeysFor(ActionRestartPick); !slices.Equal(got, RestartKeys) {
		t.Errorf("KeysFor(restart_pick) = %v, want %v", got, RestartKeys)
	}
	if got, _ := r.Preset("9"); got != 9 {
		t.Errorf("Preset(9) = %d, want 9", got)
	}
}

func TestResolver_KeysFor(t *testing.T) {
	bindings := []Binding{
		{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
		{ActionQuit, []string{"q"}, "Quit", "timer"},
		{ActionPlayPause, []string{" "}, "Pause", "timer"},
		{ActionRestartPick, RestartKeys, "Restart", "timer"},
	}

	r := NewResolver(bindings, []int{50, 25})

	if keys := r.KeysFor(ActionQuit); !slices.Equal(keys, []string{"q", "ctrl+c"}) {
		t.Errorf("KeysFor(quit) = %v, want deduplicated [q ctrl+c]", keys)
	}
	if keys := r.KeysFor(ActionRestartPick); !slices.Equal(keys, []string{"1", "2"}) {
		t.Errorf("KeysFor(restart_pick) = %v, want [1 2]", keys)
	}
	if got := r.KeysFor(ActionHelp); len(got) != 0 {
		t.Errorf("KeysFor(unbound) = %v, want empty", got)
	}
}
