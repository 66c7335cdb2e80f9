//go:build linux

package notify

import (
	"context"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	dbusNotifyDest      = "org.freedesktop.Notifications"
	dbusNotifyPath      = "/org/freedesktop/Notifications"
	dbusNotifyInterface = "org.freedesktop.Notifications"

	callTimeout = 2 * time.Second
)

// dbusNotifier sends notifications via D-Bus.
type dbusNotifier struct {
	conn    *dbus.Conn
	obj     dbus.BusObject
	signals chan *dbus.Signal
	events  chan Event
	done    chan struct{}
	once    sync.Once
}

// New connects to the session bus and subscribes to notification signals.
// It fails when the bus is unavailable.
func New() (Notifier, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(dbusNotifyPath),
		dbus.WithMatchInterface(dbusNotifyInterface),
	); err != nil {
		conn.Close()
		return nil, err
	}

	n := &dbusNotifier{
		conn:    conn,
		obj:     conn.Object(dbusNotifyDest, dbusNotifyPath),
		signals: make(chan *dbus.Signal, 16),
		events:  make(chan Event, 16),
		done:    make(chan struct{}),
	}
	conn.Signal(n.signals)
	go n.forward()
	return n, nil
}

func (n *dbusNotifier) forward() {
	defer close(n.events)
	for {
		select {
		case <-n.done:
			return
		case sig, open := <-n.signals:
			if !open {
				return
			}
			ev, ok := parseSignal(sig)
			if !ok {
				continue
			}
			select {
			case n.events <- ev:
			case <-n.done:
				return
			}
		}
	}
}

func parseSignal(sig *dbus.Signal) (Event, bool) {
	switch sig.Name {
	case dbusNotifyInterface + ".ActionInvoked":
		var ev Event
		if err := dbus.Store(sig.Body, &ev.ID, &ev.Action); err != nil {
			return Event{}, false
		}
		return ev, true
	case dbusNotifyInterface + ".NotificationClosed":
		ev := Event{Closed: true}
		if err := dbus.Store(sig.Body, &ev.ID, &ev.Reason); err != nil {
			return Event{}, false
		}
		return ev, true
	default:
		return Event{}, false
	}
}

// Notify sends a notification via D-Bus.
func (n *dbusNotifier) Notify(notif Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(notif.Urgency)),
		"desktop-entry": dbus.MakeVariant("tytimer"),
		"category":      dbus.MakeVariant("alarm"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	// D-Bus Notify method signature:
	// Notify(app_name, replaces_id, icon, summary, body, actions, hints, timeout) -> id
	call := n.obj.CallWithContext(ctx,
		dbusNotifyInterface+".Notify",
		0,                             // flags
		"tytimer",                     // app_name
		notif.ReplacesID,              // replaces_id
		notif.Icon,                    // app_icon (path or icon name)
		notif.Title,                   // summary
		notif.Body,                    // body
		flattenActions(notif.Actions), // actions
		hints,                         // hints
		notif.Timeout,                 // expire_timeout
	)

	if call.Err != nil {
		return 0, call.Err
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}

	return id, nil
}

// Close closes a notification by ID.
func (n *dbusNotifier) Close(id uint32) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	call := n.obj.CallWithContext(ctx, dbusNotifyInterface+".CloseNotification", 0, id)
	return call.Err
}

func (n *dbusNotifier) Events() <-chan Event { return n.events }

// Disconnect stops forwarding and closes the private bus connection.
func (n *dbusNotifier) Disconnect() error {
	var err error
	n.once.Do(func() {
		n.conn.RemoveSignal(n.signals)
		close(n.done)
		err = n.conn.Close()
	})
	return err
}
