package keymap

import "slices"

// Resolver maps key presses to actions. Digit keys resolve to
// ActionRestartPick only when a restart preset exists for them.
type Resolver struct {
	actions map[string]Action
	keys    map[Action][]string
	presets map[string]int // digit key -> restart percentage
}

// NewResolver creates a resolver from bindings and the restart presets, in
// the order they are offered.
func NewResolver(bindings []Binding, percentages []int) *Resolver {
	r := &Resolver{
		actions: make(map[string]Action),
		keys:    make(map[Action][]string),
		presets: make(map[string]int),
	}
	for i, pct := range percentages {
		if i >= len(RestartKeys) {
			break
		}
		r.presets[RestartKeys[i]] = pct
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			if b.Action == ActionRestartPick {
				if _, ok := r.presets[key]; !ok {
					continue
				}
			}
			r.actions[key] = b.Action
			if !slices.Contains(r.keys[b.Action], key) {
				r.keys[b.Action] = append(r.keys[b.Action], key)
			}
		}
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.actions[key]
}

// Preset returns the restart percentage selected by a digit key.
func (r *Resolver) Preset(key string) (int, bool) {
	pct, ok := r.presets[key]
	return pct, ok
}

// KeysFor returns the keys bound to an action, in binding order.
func (r *Resolver) KeysFor(action Action) []string {
	return r.keys[action]
}
