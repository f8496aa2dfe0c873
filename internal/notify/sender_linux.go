//go:build linux

package notify

import (
	"os"
	"os/exec"
)

// linuxSender implements Sender for Linux using notify-send.
type linuxSender struct {
	available bool
}

// newLinuxSender creates a new Linux notification sender.
func newLinuxSender() Sender {
	return &linuxSender{available: toolAvailable("notify-send") && hasDisplay()}
}

// newDarwinSender returns a no-op sender on linux.
func newDarwinSender() Sender {
	return &noopSender{}
}

// newWindowsSender returns a no-op sender on linux.
func newWindowsSender() Sender {
	return &noopSender{}
}

// hasDisplay checks if a display environment is available.
func hasDisplay() bool {
	if os.Getenv("DISPLAY") != "" {
		return true
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return true
	}
	return false
}

// Send displays a notification using notify-send.
func (s *linuxSender) Send(n Notification) error {
	urgency := "normal"
	if n.Type == TypeFailure {
		urgency = "critical"
	}

	cmd := exec.Command("notify-send", "-u", urgency, n.Title, n.Message)
	return cmd.Run()
}

// Available returns true if notify-send is on PATH and a display is present.
func (s *linuxSender) Available() bool {
	return s.available
}
