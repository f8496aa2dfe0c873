package event

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_StatusFromExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		exitCode int
		status   string
	}{
		"zero is success":           {exitCode: 0, status: StatusSuccess},
		"one is failure":            {exitCode: 1, status: StatusFailure},
		"spawn sentinel is failure": {exitCode: 127, status: StatusFailure},
		"signal-derived is failure": {exitCode: -1, status: StatusFailure},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ev := Build(BuildInput{ExitCode: test.exitCode})
			assert.Equal(t, test.status, ev.Status)
			assert.Equal(t, test.exitCode, ev.ExitCode)
		})
	}
}

func TestBuild_Timestamps(t *testing.T) {
	t.Parallel()

	started := time.Date(2026, 1, 2, 3, 4, 5, 678_000_000, time.UTC)
	finished := started.Add(1500 * time.Millisecond)

	ev := Build(BuildInput{StartedAt: started, FinishedAt: finished})
	assert.Equal(t, "2026-01-02T03:04:05.678Z", ev.StartedAt)
	assert.Equal(t, "2026-01-02T03:04:07.178Z", ev.FinishedAt)
	assert.Equal(t, int64(1500), ev.DurationMS)
}

func TestBuild_NonUTCInputNormalized(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+2", 2*60*60)
	started := time.Date(2026, 6, 1, 12, 0, 0, 0, loc)

	ev := Build(BuildInput{StartedAt: started, FinishedAt: started})
	assert.Equal(t, "2026-06-01T10:00:00.000Z", ev.StartedAt)
}

func TestBuild_NegativeDurationClamped(t *testing.T) {
	t.Parallel()

	started := time.Now()
	ev := Build(BuildInput{StartedAt: started, FinishedAt: started.Add(-time.Second)})
	assert.Equal(t, int64(0), ev.DurationMS)
}

func TestBuild_HostFallback(t *testing.T) {
	t.Parallel()

	ev := Build(BuildInput{})
	assert.Equal(t, UnknownHost, ev.Host)

	ev = Build(BuildInput{Host: "workstation"})
	assert.Equal(t, "workstation", ev.Host)
}

func TestCompletionEvent_WireContract(t *testing.T) {
	t.Parallel()

	ev := Build(BuildInput{
		Command:    []string{"make", "build"},
		Cwd:        "/home/dev/project",
		StartedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		FinishedAt: time.Date(2026, 1, 2, 3, 4, 6, 0, time.UTC),
		ExitCode:   0,
		Host:       "workstation",
	})

	data, err := json.Marshal(ev)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "brb", decoded["tool"])
	assert.Equal(t, "success", decoded["status"])
	assert.Equal(t, []any{"make", "build"}, decoded["command"])
	assert.Equal(t, "/home/dev/project", decoded["cwd"])
	assert.Equal(t, "2026-01-02T03:04:05.000Z", decoded["started_at"])
	assert.Equal(t, "2026-01-02T03:04:06.000Z", decoded["finished_at"])
	assert.Equal(t, float64(1000), decoded["duration_ms"])
	assert.Equal(t, float64(0), decoded["exit_code"])
	assert.Equal(t, "workstation", decoded["host"])
	assert.Len(t, decoded, 9, "wire contract has exactly nine fields")
}

func TestTestEvent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	ev := TestEvent(now, "/tmp", "host1")

	assert.Equal(t, []string{"brb", "channels", "test"}, ev.Command)
	assert.Equal(t, StatusSuccess, ev.Status)
	assert.Equal(t, int64(1), ev.DurationMS)
	assert.Equal(t, "host1", ev.Host)
}
