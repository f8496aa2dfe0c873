// Package notify sends desktop notifications through native OS tools
// (osascript on macOS, notify-send on Linux, PowerShell on Windows). It uses
// only os/exec so the binary stays CGO-free; platforms without a notification
// facility report themselves as unavailable rather than failing at runtime.
package notify

// NotificationType represents the outcome a notification reports.
type NotificationType string

const (
	// TypeSuccess indicates the wrapped command succeeded.
	TypeSuccess NotificationType = "success"
	// TypeFailure indicates the wrapped command failed.
	TypeFailure NotificationType = "failure"
)

// Notification is a single desktop notification to display.
type Notification struct {
	// Title is the notification title (e.g., "brb: success").
	Title string

	// Message is the notification body text.
	Message string

	// Type indicates the event outcome; it drives urgency on Linux.
	Type NotificationType
}
