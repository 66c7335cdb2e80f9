// Package notify provides desktop notifications via D-Bus and the alarm
// surface built on top of them.
package notify

// Urgency represents notification priority levels per freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Action is a button offered on a notification.
type Action struct {
	Key   string // returned in ActionInvoked
	Label string
}

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string   // Summary text (required)
	Body       string   // Body text (optional, supports basic markup)
	Icon       string   // Path to image file or icon name (optional)
	Timeout    int32    // ms, -1 = server default, 0 = never expire
	ReplacesID uint32   // 0 = new notification, >0 = replace existing
	Urgency    Urgency  // Low, Normal, Critical
	Actions    []Action // buttons, in display order
}

// Event is a signal emitted by the notification server.
type Event struct {
	ID     uint32
	Action string // set for ActionInvoked
	Closed bool   // set for NotificationClosed
	Reason uint32 // close reason, when Closed
}

// Close reasons per freedesktop spec.
const (
	ReasonExpired   uint32 = 1
	ReasonDismissed uint32 = 2
	ReasonClosed    uint32 = 3
)

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
	// Events delivers action and close signals for all notifications.
	Events() <-chan Event
	// Disconnect releases the bus connection and closes Events.
	Disconnect() error
}

// flattenActions turns actions into the key/label list the D-Bus API expects.
func flattenActions(actions []Action) []string {
	out := make([]string, 0, len(actions)*2)
	for _, a := range actions {
		out = append(out, a.Key, a.Label)
	}
	return out
}
