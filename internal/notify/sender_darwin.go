//go:build darwin

package notify

import (
	"fmt"
	"os/exec"
)

// darwinSender implements Sender for macOS using osascript.
type darwinSender struct {
	available bool
}

// newDarwinSender creates a new macOS notification sender.
func newDarwinSender() Sender {
	return &darwinSender{available: toolAvailable("osascript")}
}

// newLinuxSender returns a no-op sender on darwin.
func newLinuxSender() Sender {
	return &noopSender{}
}

// newWindowsSender returns a no-op sender on darwin.
func newWindowsSender() Sender {
	return &noopSender{}
}

// Send displays a notification using osascript.
func (s *darwinSender) Send(n Notification) error {
	script := fmt.Sprintf(`display notification %q with title %q`, n.Message, n.Title)

	cmd := exec.Command("osascript", "-e", script)
	return cmd.Run()
}

// Available returns true if osascript is on PATH.
func (s *darwinSender) Available() bool {
	return s.available
}
