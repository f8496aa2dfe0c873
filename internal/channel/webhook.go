package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/schoolboyqueue/brb/internal/config"
	"github.com/schoolboyqueue/brb/internal/event"
)

// webhookBackend serializes the event as JSON and sends it with the
// configured method and headers. Any response status outside [200,299] is a
// failure even when the transport itself reported none.
type webhookBackend struct {
	channel config.WebhookChannel
	client  *http.Client
}

func (b *webhookBackend) Deliver(ctx context.Context, ev *event.CompletionEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode event payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, b.channel.Method, b.channel.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("invalid webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for name, value := range b.channel.Headers {
		req.Header.Set(name, value)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{Status: resp.StatusCode}
	}
	return nil
}
