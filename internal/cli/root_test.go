package cli

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/schoolboyqueue/brb/internal/channel"
	"github.com/schoolboyqueue/brb/internal/event"
	"github.com/schoolboyqueue/brb/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintSummary_AllDelivered(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printSummary(&buf, 0, []channel.Outcome{
		{ChannelID: "desktop"},
		{ChannelID: "slack"},
	})

	assert.Equal(t, "brb: command succeeded (exit 0); notifications sent 2/2\n", buf.String())
}

func TestPrintSummary_FailuresListed(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printSummary(&buf, 3, []channel.Outcome{
		{ChannelID: "desktop"},
		{ChannelID: "slack", Err: errors.New("webhook returned HTTP 500")},
	})

	out := buf.String()
	assert.Contains(t, out, "command failed (exit 3)")
	assert.Contains(t, out, "notifications sent 1/2")
	assert.Contains(t, out, "slack (webhook returned HTTP 500)")
}

func TestPrintSummary_RedactsFailureReasons(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printSummary(&buf, 0, []channel.Outcome{
		{ChannelID: "slack", Err: errors.New("rejected: Authorization: Bearer sk-123")},
	})

	out := buf.String()
	assert.NotContains(t, out, "sk-123")
	assert.Contains(t, out, "[REDACTED]")
}

func TestBuildEvent_MirrorsRunResult(t *testing.T) {
	t.Parallel()

	started := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	res := runner.Result{
		Command:    []string{"make", "test"},
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
		ExitCode:   1,
	}

	ev := buildEvent(res)
	assert.Equal(t, event.StatusFailure, ev.Status)
	assert.Equal(t, 1, ev.ExitCode)
	assert.Equal(t, []string{"make", "test"}, ev.Command)
	assert.Equal(t, int64(2000), ev.DurationMS)
	assert.NotEmpty(t, ev.Cwd)
	assert.NotEmpty(t, ev.Host)
}

func TestExitError(t *testing.T) {
	t.Parallel()

	err := NewExitError(3)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, "exit status 3", err.Error())
}
