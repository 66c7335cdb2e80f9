// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Startup
	OpInitialize      Op = "initialize timer"
	OpLoadConfig      Op = "load config"
	OpSetupLogging    Op = "set up logging"
	OpStartBackground Op = "start timer in background"

	// Desktop integration
	OpStartTray          Op = "start tray icon"
	OpStartNotifications Op = "connect to notification service"
	OpStartMPRIS         Op = "start MPRIS server"
	OpUpdateStatus       Op = "update status"
	OpShowAlarm          Op = "show alarm"
	OpHideAlarm          Op = "hide alarm"

	// Playback
	OpInitAudio     Op = "open audio device"
	OpStartPlayback Op = "start alarm sound"
	OpStopPlayback  Op = "stop alarm sound"
	OpPlayback      Op = "play alarm sound"

	// MQTT
	OpConnectMQTT   Op = "connect to MQTT broker"
	OpPublishStatus Op = "publish status"

	// Terminal view
	OpRunTerminalView Op = "run terminal view"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
