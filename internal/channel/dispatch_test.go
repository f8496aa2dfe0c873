package channel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/schoolboyqueue/brb/internal/config"
	"github.com/schoolboyqueue/brb/internal/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend records deliveries and fails on demand, so dispatch behavior is
// exercised without any network or OS access.
type fakeBackend struct {
	mu    sync.Mutex
	calls int
	err   error
	delay time.Duration
}

func (b *fakeBackend) Deliver(_ context.Context, _ *event.CompletionEvent) error {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	if b.delay > 0 {
		time.Sleep(b.delay)
	}
	return b.err
}

func (b *fakeBackend) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

// testConfig builds a config with three custom channels; each channel's Exec
// doubles as its identity so fake backends can be keyed per channel.
func testConfig(ids ...string) *config.Config {
	cfg := &config.Config{
		Version:         1,
		DefaultChannels: []string{ids[0]},
		Channels:        make(map[string]config.Channel, len(ids)),
	}
	for _, id := range ids {
		cfg.Channels[id] = config.Channel{
			Type:   config.TypeCustom,
			Custom: &config.CustomChannel{Exec: id},
		}
	}
	return cfg
}

func fakeFactory(fakes map[string]*fakeBackend) func(config.Channel) Backend {
	return func(ch config.Channel) Backend {
		return fakes[ch.Custom.Exec]
	}
}

func TestResolveSelection_DefaultsWhenNoRequest(t *testing.T) {
	t.Parallel()

	cfg := testConfig("a", "b")
	cfg.DefaultChannels = []string{"b", "a"}

	selected, err := ResolveSelection(nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, selected)
}

func TestResolveSelection_ExplicitReplacesDefaults(t *testing.T) {
	t.Parallel()

	cfg := testConfig("a", "b", "c")
	cfg.DefaultChannels = []string{"c"}

	selected, err := ResolveSelection([]string{"a", "b"}, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, selected, "explicit selection replaces defaults, no merge")
}

func TestResolveSelection_UnknownChannelFailsEagerly(t *testing.T) {
	t.Parallel()

	cfg := testConfig("a", "b")

	_, err := ResolveSelection([]string{"a", "ghost", "b"}, cfg)
	var uerr *config.UnknownChannelError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "ghost", uerr.ID)
}

func TestResolveSelection_DuplicatesPreserved(t *testing.T) {
	t.Parallel()

	cfg := testConfig("a")

	selected, err := ResolveSelection([]string{"a", "a"}, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a"}, selected)
}

func TestResolveSelection_NoChannels(t *testing.T) {
	t.Parallel()

	cfg := testConfig("a")
	cfg.DefaultChannels = nil

	_, err := ResolveSelection(nil, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no channels selected")
}

func TestDispatch_OutcomesInSelectionOrder(t *testing.T) {
	t.Parallel()

	cfg := testConfig("a", "b", "c")
	fakes := map[string]*fakeBackend{
		"a": {},
		"b": {err: errors.New("boom")},
		"c": {},
	}

	d := NewDispatcher(cfg, WithBackendFactory(fakeFactory(fakes)))
	ev := event.Build(event.BuildInput{ExitCode: 0})

	outcomes := d.Dispatch(context.Background(), &ev, []string{"a", "b", "c"})
	require.Len(t, outcomes, 3)

	assert.Equal(t, "a", outcomes[0].ChannelID)
	assert.True(t, outcomes[0].OK())
	assert.Equal(t, "b", outcomes[1].ChannelID)
	assert.False(t, outcomes[1].OK())
	assert.EqualError(t, outcomes[1].Err, "boom")
	assert.Equal(t, "c", outcomes[2].ChannelID)
	assert.True(t, outcomes[2].OK())
}

func TestDispatch_FailureDoesNotPreventOtherDeliveries(t *testing.T) {
	t.Parallel()

	cfg := testConfig("a", "b", "c")
	fakes := map[string]*fakeBackend{
		"a": {err: errors.New("down")},
		"b": {err: errors.New("down")},
		"c": {},
	}

	d := NewDispatcher(cfg, WithBackendFactory(fakeFactory(fakes)))
	ev := event.Build(event.BuildInput{ExitCode: 1})

	outcomes := d.Dispatch(context.Background(), &ev, []string{"a", "b", "c"})
	require.Len(t, outcomes, 3)

	for _, fake := range fakes {
		assert.Equal(t, 1, fake.Calls(), "every backend must be attempted")
	}
}

func TestDispatch_DuplicateSelectionDispatchesRedundantly(t *testing.T) {
	t.Parallel()

	cfg := testConfig("a")
	fakes := map[string]*fakeBackend{"a": {}}

	d := NewDispatcher(cfg, WithBackendFactory(fakeFactory(fakes)))
	ev := event.Build(event.BuildInput{})

	outcomes := d.Dispatch(context.Background(), &ev, []string{"a", "a", "a"})
	require.Len(t, outcomes, 3)
	assert.Equal(t, 3, fakes["a"].Calls())
}

func TestDispatch_SlowChannelDoesNotReorderOutcomes(t *testing.T) {
	t.Parallel()

	cfg := testConfig("slow", "fast")
	fakes := map[string]*fakeBackend{
		"slow": {delay: 50 * time.Millisecond},
		"fast": {},
	}

	d := NewDispatcher(cfg, WithBackendFactory(fakeFactory(fakes)))
	ev := event.Build(event.BuildInput{})

	outcomes := d.Dispatch(context.Background(), &ev, []string{"slow", "fast"})
	require.Len(t, outcomes, 2)
	assert.Equal(t, "slow", outcomes[0].ChannelID)
	assert.Equal(t, "fast", outcomes[1].ChannelID)
}

func TestDispatch_UnknownChannelOutcome(t *testing.T) {
	t.Parallel()

	// Dispatch guards against selections that bypassed ResolveSelection.
	cfg := testConfig("a")
	fakes := map[string]*fakeBackend{"a": {}}

	d := NewDispatcher(cfg, WithBackendFactory(fakeFactory(fakes)))
	ev := event.Build(event.BuildInput{})

	outcomes := d.Dispatch(context.Background(), &ev, []string{"ghost"})
	require.Len(t, outcomes, 1)
	var uerr *config.UnknownChannelError
	assert.ErrorAs(t, outcomes[0].Err, &uerr)
}
