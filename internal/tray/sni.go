//go:build linux

package tray

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/godbus/dbus/v5/prop"

	"github.com/llehouerou/tytimer/internal/app"
)

const (
	itemPath  = "/StatusNotifierItem"
	itemIface = "org.kde.StatusNotifierItem"
	menuPath  = "/MenuBar"
	menuIface = "com.canonical.dbusmenu"

	watcherName  = "org.kde.StatusNotifierWatcher"
	watcherPath  = "/StatusNotifierWatcher"
	watcherIface = "org.kde.StatusNotifierWatcher"

	iconName      = "alarm-symbolic"
	submitTimeout = 2 * time.Second
)

// ErrNoWatcher is returned when no StatusNotifierWatcher is running.
var ErrNoWatcher = errors.New("no StatusNotifierWatcher on the session bus")

type pixmap struct {
	Width  int32
	Height int32
	Data   []byte
}

type toolTip struct {
	IconName    string
	Pixmaps     []pixmap
	Title       string
	Description string
}

// Tray is a registered StatusNotifierItem. SetStatus runs on the scheduling
// goroutine; menu clicks arrive on godbus handler goroutines.
type Tray struct {
	conn        *dbus.Conn
	props       *prop.Properties
	percentages []int

	mu       sync.Mutex
	status   app.Status
	items    []menuItem
	revision uint32
	submit   Submitter
}

// New connects to the session bus, exports the item and its menu, and
// registers with the StatusNotifierWatcher.
func New(percentages []int) (*Tray, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}

	t := &Tray{
		conn:        conn,
		percentages: percentages,
		items:       buildMenu(true, percentages),
		revision:    1,
	}
	if err := t.export(); err != nil {
		conn.Close()
		return nil, err
	}
	if err := t.register(); err != nil {
		conn.Close()
		return nil, err
	}
	return t, nil
}

// Bind sets the command target for menu clicks and activation.
func (t *Tray) Bind(s Submitter) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.submit = s
}

func (t *Tray) export() error {
	item := &itemHandler{t: t}
	if err := t.conn.Export(item, itemPath, itemIface); err != nil {
		return fmt.Errorf("export item: %w", err)
	}
	menu := &menuHandler{t: t}
	if err := t.conn.Export(menu, menuPath, menuIface); err != nil {
		return fmt.Errorf("export menu: %w", err)
	}

	props, err := prop.Export(t.conn, itemPath, prop.Map{itemIface: t.itemProps()})
	if err != nil {
		return fmt.Errorf("export item properties: %w", err)
	}
	t.props = props

	menuProps, err := prop.Export(t.conn, menuPath, prop.Map{menuIface: {
		"Version":       {Value: uint32(3), Emit: prop.EmitFalse},
		"TextDirection": {Value: "ltr", Emit: prop.EmitFalse},
		"Status":        {Value: "normal", Emit: prop.EmitFalse},
		"IconThemePath": {Value: []string{}, Emit: prop.EmitFalse},
	}})
	if err != nil {
		return fmt.Errorf("export menu properties: %w", err)
	}

	itemNode := &introspect.Node{
		Name: itemPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			prop.IntrospectData,
			{
				Name:       itemIface,
				Methods:    introspect.Methods(item),
				Properties: props.Introspection(itemIface),
				Signals: []introspect.Signal{
					{Name: "NewTitle"}, {Name: "NewIcon"}, {Name: "NewToolTip"},
					{Name: "NewStatus", Args: []introspect.Arg{{Name: "status", Type: "s"}}},
				},
			},
		},
	}
	menuNode := &introspect.Node{
		Name: menuPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			prop.IntrospectData,
			{
				Name:       menuIface,
				Methods:    introspect.Methods(menu),
				Properties: menuProps.Introspection(menuIface),
				Signals: []introspect.Signal{
					{Name: "LayoutUpdated", Args: []introspect.Arg{
						{Name: "revision", Type: "u"}, {Name: "parent", Type: "i"},
					}},
				},
			},
		},
	}
	if err := t.conn.Export(introspect.NewIntrospectable(itemNode), itemPath, "org.freedesktop.DBus.Introspectable"); err != nil {
		return err
	}
	return t.conn.Export(introspect.NewIntrospectable(menuNode), menuPath, "org.freedesktop.DBus.Introspectable")
}

func (t *Tray) itemProps() map[string]*prop.Prop {
	s := t.status
	return map[string]*prop.Prop{
		"Category":            {Value: "ApplicationStatus", Emit: prop.EmitFalse},
		"Id":                  {Value: "tytimer", Emit: prop.EmitFalse},
		"Title":               {Value: title(s), Emit: prop.EmitTrue},
		"Status":              {Value: itemStatus(s), Emit: prop.EmitTrue},
		"WindowId":            {Value: int32(0), Emit: prop.EmitFalse},
		"IconName":            {Value: iconName, Emit: prop.EmitFalse},
		"IconPixmap":          {Value: []pixmap{}, Emit: prop.EmitFalse},
		"OverlayIconName":     {Value: "", Emit: prop.EmitFalse},
		"AttentionIconName":   {Value: iconName, Emit: prop.EmitFalse},
		"AttentionIconPixmap": {Value: []pixmap{}, Emit: prop.EmitFalse},
		"ToolTip":             {Value: t.toolTip(s), Emit: prop.EmitTrue},
		"ItemIsMenu":          {Value: false, Emit: prop.EmitFalse},
		"Menu":                {Value: dbus.ObjectPath(menuPath), Emit: prop.EmitFalse},
	}
}

func (t *Tray) toolTip(s app.Status) toolTip {
	return toolTip{IconName: iconName, Pixmaps: []pixmap{}, Title: "tytimer", Description: description(s)}
}

func (t *Tray) register() error {
	name := fmt.Sprintf("org.kde.StatusNotifierItem-%d-1", os.Getpid())
	reply, err := t.conn.RequestName(name, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("request name %s: %w", name, err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("name %s already taken", name)
	}

	watcher := t.conn.Object(watcherName, watcherPath)
	if call := watcher.Call(watcherIface+".RegisterStatusNotifierItem", 0, name); call.Err != nil {
		return fmt.Errorf("%w: %w", ErrNoWatcher, call.Err)
	}
	slog.Debug("tray registered", "name", name)
	return nil
}

// SetStatus updates the title, tooltip and status, and rebuilds the menu
// when the pause state flips.
func (t *Tray) SetStatus(s app.Status) error {
	t.mu.Lock()
	prev := t.status
	t.status = s
	layoutChanged := prev.Running != s.Running
	if layoutChanged {
		t.items = buildMenu(s.Running, t.percentages)
		t.revision++
	}
	revision := t.revision
	t.mu.Unlock()

	var errs []error
	if prev.Label != s.Label {
		t.props.SetMust(itemIface, "Title", title(s))
		errs = append(errs, t.conn.Emit(itemPath, itemIface+".NewTitle"))
	}
	if description(prev) != description(s) {
		t.props.SetMust(itemIface, "ToolTip", t.toolTip(s))
		errs = append(errs, t.conn.Emit(itemPath, itemIface+".NewToolTip"))
	}
	if itemStatus(prev) != itemStatus(s) {
		t.props.SetMust(itemIface, "Status", itemStatus(s))
		errs = append(errs, t.conn.Emit(itemPath, itemIface+".NewStatus", itemStatus(s)))
	}
	if layoutChanged {
		errs = append(errs, t.conn.Emit(menuPath, menuIface+".LayoutUpdated", revision, idRoot))
	}
	return errors.Join(errs...)
}

// Close unexports the item and disconnects.
func (t *Tray) Close() error {
	return t.conn.Close()
}

func (t *Tray) send(cmd app.Command) {
	t.mu.Lock()
	s := t.submit
	t.mu.Unlock()
	if s == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()
	if err := s.Submit(ctx, cmd); err != nil {
		slog.Warn("tray command dropped", "command", cmd, "error", err)
	}
}

// itemHandler serves org.kde.StatusNotifierItem methods.
type itemHandler struct {
	t *Tray
}

func (h *itemHandler) Activate(_, _ int32) *dbus.Error {
	h.t.send(app.ShowAlarm())
	return nil
}

func (h *itemHandler) SecondaryActivate(_, _ int32) *dbus.Error {
	h.t.send(app.TogglePause())
	return nil
}

func (h *itemHandler) ContextMenu(_, _ int32) *dbus.Error { return nil }

func (h *itemHandler) Scroll(_ int32, _ string) *dbus.Error { return nil }
