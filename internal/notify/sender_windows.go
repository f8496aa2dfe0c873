//go:build windows

package notify

import (
	"fmt"
	"os/exec"
	"strings"
)

// windowsSender implements Sender for Windows using PowerShell toasts.
type windowsSender struct {
	available bool
}

// newWindowsSender creates a new Windows notification sender.
func newWindowsSender() Sender {
	return &windowsSender{available: toolAvailable("powershell")}
}

// newDarwinSender returns a no-op sender on windows.
func newDarwinSender() Sender {
	return &noopSender{}
}

// newLinuxSender returns a no-op sender on windows.
func newLinuxSender() Sender {
	return &noopSender{}
}

// Send displays a toast notification using PowerShell.
func (s *windowsSender) Send(n Notification) error {
	script := fmt.Sprintf(`
[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null
$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::ToastText02)
$textNodes = $template.GetElementsByTagName('text')
$textNodes.Item(0).AppendChild($template.CreateTextNode('%s')) | Out-Null
$textNodes.Item(1).AppendChild($template.CreateTextNode('%s')) | Out-Null
$toast = [Windows.UI.Notifications.ToastNotification]::new($template)
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier('brb').Show($toast)
`, escapeForPowerShell(n.Title), escapeForPowerShell(n.Message))

	cmd := exec.Command("powershell", "-ExecutionPolicy", "Bypass", "-NoProfile", "-Command", script)
	return cmd.Run()
}

// Available returns true if PowerShell is on PATH.
func (s *windowsSender) Available() bool {
	return s.available
}

// escapeForPowerShell escapes special characters for PowerShell strings.
func escapeForPowerShell(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch c {
		case '\'':
			b.WriteString("''")
		case '`', '$':
			b.WriteByte('`')
			b.WriteRune(c)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}
