package notify

import (
	"os/exec"
	"runtime"
)

// Sender is the platform notification facility.
type Sender interface {
	// Send displays a desktop notification.
	Send(n Notification) error

	// Available reports whether the platform can display notifications.
	Available() bool
}

// NewSender creates a platform-specific notification sender based on the
// current OS. Unsupported platforms get a sender that reports unavailable.
func NewSender() Sender {
	switch runtime.GOOS {
	case "darwin":
		return newDarwinSender()
	case "linux":
		return newLinuxSender()
	case "windows":
		return newWindowsSender()
	default:
		return &noopSender{}
	}
}

// Platform returns the current operating system name.
func Platform() string {
	return runtime.GOOS
}

// toolAvailable checks if a command-line tool is available in PATH.
func toolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// noopSender reports unavailable on platforms without a notification facility.
type noopSender struct{}

func (s *noopSender) Send(_ Notification) error { return nil }
func (s *noopSender) Available() bool           { return false }
