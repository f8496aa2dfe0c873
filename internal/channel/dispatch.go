// Package channel resolves the selected channel set and fans a completion
// event out to each channel's delivery backend. Deliveries are independent:
// one channel failing never prevents, delays, or alters another's attempt,
// and the dispatcher itself never fails — it only aggregates outcomes.
package channel

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/schoolboyqueue/brb/internal/config"
	"github.com/schoolboyqueue/brb/internal/event"
	"github.com/schoolboyqueue/brb/internal/notify"
)

// DefaultDeliveryTimeout bounds a single webhook or custom delivery so one
// unreachable channel cannot hang the whole run.
const DefaultDeliveryTimeout = 10 * time.Second

// Backend is the capability contract shared by all delivery backends. The
// event is shared read-only across deliveries; backends never mutate it.
type Backend interface {
	Deliver(ctx context.Context, ev *event.CompletionEvent) error
}

// Outcome is the per-channel result of one delivery attempt.
type Outcome struct {
	ChannelID string
	Err       error
}

// OK reports whether the delivery succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// ResolveSelection returns the channel IDs to deliver to. A non-empty
// explicit request replaces default_channels entirely (no merge). Every ID
// must be defined; the check is eager and atomic, so no delivery is attempted
// against a selection containing an unknown ID. Order is preserved and
// duplicates dispatch redundantly.
func ResolveSelection(requested []string, cfg *config.Config) ([]string, error) {
	selected := cfg.DefaultChannels
	if len(requested) > 0 {
		selected = requested
	}

	if len(selected) == 0 {
		return nil, fmt.Errorf("no channels selected (set default_channels or pass --channel)")
	}

	for _, id := range selected {
		if _, ok := cfg.Channels[id]; !ok {
			return nil, &config.UnknownChannelError{ID: id}
		}
	}

	return selected, nil
}

// Dispatcher fans a completion event out to the backends of the selected
// channels.
type Dispatcher struct {
	cfg        *config.Config
	timeout    time.Duration
	newBackend func(ch config.Channel) Backend
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTimeout sets the per-delivery timeout.
func WithTimeout(d time.Duration) Option {
	return func(dp *Dispatcher) { dp.timeout = d }
}

// WithBackendFactory overrides backend construction. Tests use this to swap
// in fake backends so dispatch behavior is exercised without any network or
// OS access.
func WithBackendFactory(factory func(ch config.Channel) Backend) Option {
	return func(dp *Dispatcher) { dp.newBackend = factory }
}

// NewDispatcher creates a Dispatcher for the given config. The default
// backends share one HTTP client and one desktop sender.
func NewDispatcher(cfg *config.Config, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cfg:     cfg,
		timeout: DefaultDeliveryTimeout,
	}

	client := &http.Client{}
	sender := notify.NewSender()
	d.newBackend = func(ch config.Channel) Backend {
		switch ch.Type {
		case config.TypeWebhook:
			return &webhookBackend{channel: *ch.Webhook, client: client}
		case config.TypeCustom:
			return &customBackend{channel: *ch.Custom}
		default:
			return &desktopBackend{sender: sender}
		}
	}

	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch delivers the event to every selected channel and returns one
// outcome per entry, in selection order. Deliveries run concurrently as a
// latency optimization; outcomes are collected by index so reporting stays
// deterministic and observably identical to a sequential run.
func (d *Dispatcher) Dispatch(ctx context.Context, ev *event.CompletionEvent, selected []string) []Outcome {
	outcomes := make([]Outcome, len(selected))

	var wg sync.WaitGroup
	for i, id := range selected {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			outcomes[i] = Outcome{ChannelID: id, Err: d.deliverOne(ctx, ev, id)}
		}(i, id)
	}
	wg.Wait()

	return outcomes
}

func (d *Dispatcher) deliverOne(ctx context.Context, ev *event.CompletionEvent, id string) error {
	ch, ok := d.cfg.Channels[id]
	if !ok {
		// ResolveSelection validates eagerly; this guards direct callers.
		return &config.UnknownChannelError{ID: id}
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	return d.newBackend(ch).Deliver(ctx, ev)
}
