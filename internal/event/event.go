// Package event defines the completion event sent to notification channels
// and the builder that assembles it from run metadata.
package event

import "time"

// Tool is the constant tool identifier carried in every event.
const Tool = "brb"

// Status values derived from the wrapped command's exit code.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// UnknownHost is used when the hostname cannot be resolved.
const UnknownHost = "unknown-host"

// timestampLayout renders RFC3339 UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// CompletionEvent is the immutable record describing how the wrapped command
// ran and finished. It is built once per run and shared read-only across all
// channel deliveries. Field names and types are the wire contract for webhook
// bodies and custom-notifier stdin.
type CompletionEvent struct {
	// Constant tool identifier.
	Tool string `json:"tool"`

	// "success" when the exit code is 0, otherwise "failure".
	Status string `json:"status"`

	// Command argv as executed.
	Command []string `json:"command"`

	// Working directory where brb was invoked.
	Cwd string `json:"cwd"`

	// UTC start timestamp (RFC3339, millisecond precision).
	StartedAt string `json:"started_at"`

	// UTC finish timestamp (RFC3339, millisecond precision).
	FinishedAt string `json:"finished_at"`

	// Total duration in milliseconds; never negative.
	DurationMS int64 `json:"duration_ms"`

	// Wrapped command exit code (127 when the command could not be spawned).
	ExitCode int `json:"exit_code"`

	// Hostname when available, "unknown-host" otherwise.
	Host string `json:"host"`
}

// BuildInput carries the run metadata an event is assembled from. The caller
// supplies the clock readings, working directory, and hostname so Build stays
// a pure function.
type BuildInput struct {
	Command    []string
	Cwd        string
	StartedAt  time.Time
	FinishedAt time.Time
	ExitCode   int
	Host       string
}

// Build assembles a CompletionEvent. It always succeeds: an empty host falls
// back to the unknown-host sentinel and clock skew clamps the duration to 0.
func Build(in BuildInput) CompletionEvent {
	host := in.Host
	if host == "" {
		host = UnknownHost
	}

	duration := in.FinishedAt.Sub(in.StartedAt).Milliseconds()
	if duration < 0 {
		duration = 0
	}

	status := StatusFailure
	if in.ExitCode == 0 {
		status = StatusSuccess
	}

	return CompletionEvent{
		Tool:       Tool,
		Status:     status,
		Command:    in.Command,
		Cwd:        in.Cwd,
		StartedAt:  in.StartedAt.UTC().Format(timestampLayout),
		FinishedAt: in.FinishedAt.UTC().Format(timestampLayout),
		DurationMS: duration,
		ExitCode:   in.ExitCode,
		Host:       host,
	}
}

// TestEvent builds the synthetic event used by `brb channels test`.
func TestEvent(now time.Time, cwd, host string) CompletionEvent {
	return Build(BuildInput{
		Command:    []string{"brb", "channels", "test"},
		Cwd:        cwd,
		StartedAt:  now,
		FinishedAt: now.Add(time.Millisecond),
		ExitCode:   0,
		Host:       host,
	})
}
