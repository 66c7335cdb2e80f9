//go:build linux

package tray

import (
	"github.com/godbus/dbus/v5"
)

// layout is the dbusmenu (ia{sv}av) node.
type layout struct {
	ID         int32
	Properties map[string]dbus.Variant
	Children   []dbus.Variant
}

type itemProperties struct {
	ID         int32
	Properties map[string]dbus.Variant
}

type menuEvent struct {
	ID        int32
	EventID   string
	Data      dbus.Variant
	Timestamp uint32
}

func itemProps(it menuItem) map[string]dbus.Variant {
	if it.separator {
		return map[string]dbus.Variant{"type": dbus.MakeVariant("separator")}
	}
	return map[string]dbus.Variant{
		"label":   dbus.MakeVariant(it.label),
		"enabled": dbus.MakeVariant(true),
		"visible": dbus.MakeVariant(true),
	}
}

func rootLayout(items []menuItem, depth int32) layout {
	root := layout{
		ID:         idRoot,
		Properties: map[string]dbus.Variant{"children-display": dbus.MakeVariant("submenu")},
		Children:   []dbus.Variant{},
	}
	if depth == 0 {
		return root
	}
	for _, it := range items {
		root.Children = append(root.Children, dbus.MakeVariant(layout{
			ID:         it.id,
			Properties: itemProps(it),
			Children:   []dbus.Variant{},
		}))
	}
	return root
}

// menuHandler serves com.canonical.dbusmenu methods.
type menuHandler struct {
	t *Tray
}

func (h *menuHandler) snapshot() ([]menuItem, uint32) {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	return h.t.items, h.t.revision
}

func (h *menuHandler) GetLayout(parentID, recursionDepth int32, _ []string) (uint32, layout, *dbus.Error) {
	items, revision := h.snapshot()
	if parentID == idRoot {
		return revision, rootLayout(items, recursionDepth), nil
	}
	if it, ok := findItem(items, parentID); ok {
		return revision, layout{ID: it.id, Properties: itemProps(it), Children: []dbus.Variant{}}, nil
	}
	return revision, layout{ID: parentID, Properties: map[string]dbus.Variant{}, Children: []dbus.Variant{}}, nil
}

func (h *menuHandler) GetGroupProperties(ids []int32, _ []string) ([]itemProperties, *dbus.Error) {
	items, _ := h.snapshot()
	out := []itemProperties{}
	for _, it := range items {
		if len(ids) > 0 && !containsID(ids, it.id) {
			continue
		}
		out = append(out, itemProperties{ID: it.id, Properties: itemProps(it)})
	}
	return out, nil
}

func (h *menuHandler) GetProperty(id int32, name string) (dbus.Variant, *dbus.Error) {
	items, _ := h.snapshot()
	for _, it := range items {
		if it.id == id {
			if v, ok := itemProps(it)[name]; ok {
				return v, nil
			}
		}
	}
	return dbus.MakeVariant(""), nil
}

func (h *menuHandler) Event(id int32, eventID string, _ dbus.Variant, _ uint32) *dbus.Error {
	if eventID != "clicked" {
		return nil
	}
	items, _ := h.snapshot()
	if it, ok := findItem(items, id); ok {
		h.t.send(it.command)
	}
	return nil
}

func (h *menuHandler) EventGroup(events []menuEvent) ([]int32, *dbus.Error) {
	var missing []int32
	items, _ := h.snapshot()
	for _, ev := range events {
		if _, ok := findItem(items, ev.ID); !ok {
			missing = append(missing, ev.ID)
			continue
		}
		_ = h.Event(ev.ID, ev.EventID, ev.Data, ev.Timestamp)
	}
	return missing, nil
}

func (h *menuHandler) AboutToShow(_ int32) (bool, *dbus.Error) {
	return false, nil
}

func (h *menuHandler) AboutToShowGroup(_ []int32) ([]int32, []int32, *dbus.Error) {
	return []int32{}, []int32{}, nil
}

func containsID(ids []int32, id int32) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
