package channel

import (
	"context"
	"fmt"
	"strings"

	"github.com/schoolboyqueue/brb/internal/event"
	"github.com/schoolboyqueue/brb/internal/notify"
)

// desktopBackend delivers a short summary of the event to the platform
// notification facility.
type desktopBackend struct {
	sender notify.Sender
}

func (b *desktopBackend) Deliver(_ context.Context, ev *event.CompletionEvent) error {
	if !b.sender.Available() {
		return ErrUnsupported
	}

	title := "brb: success"
	typ := notify.TypeSuccess
	if ev.Status != event.StatusSuccess {
		title = fmt.Sprintf("brb: failed (exit %d)", ev.ExitCode)
		typ = notify.TypeFailure
	}

	body := fmt.Sprintf("%s (%.2fs)", strings.Join(ev.Command, " "), float64(ev.DurationMS)/1000.0)

	if err := b.sender.Send(notify.Notification{Title: title, Message: body, Type: typ}); err != nil {
		return &BackendError{Err: err}
	}
	return nil
}
