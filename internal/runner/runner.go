// Package runner executes the wrapped command with inherited stdio and
// captures the completion metadata the event builder needs.
package runner

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// Exit codes reported when the wrapped command never produced one.
const (
	// SpawnFailureExitCode is the sentinel when the command could not be
	// started at all.
	SpawnFailureExitCode = 127

	// NoCommandExitCode is reported when no command was provided.
	NoCommandExitCode = 2
)

// Result captures how a wrapped command ran.
type Result struct {
	// Command argv used for execution.
	Command []string

	// UTC timestamps for command start and finish.
	StartedAt  time.Time
	FinishedAt time.Time

	// Final exit code (SpawnFailureExitCode when spawning failed).
	ExitCode int

	// SpawnErr is set when the command failed to start.
	SpawnErr error
}

// Duration returns the wall-clock time the command ran for.
func (r Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Run executes argv with stdin, stdout, and stderr inherited from the current
// process and blocks until it terminates. Deliveries never run concurrently
// with the wrapped command; the caller dispatches only after Run returns.
func Run(argv []string) Result {
	startedAt := time.Now().UTC()

	if len(argv) == 0 {
		return Result{
			StartedAt:  startedAt,
			FinishedAt: time.Now().UTC(),
			ExitCode:   NoCommandExitCode,
			SpawnErr:   errors.New("no command provided"),
		}
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	result := Result{
		Command:    argv,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
	}

	switch {
	case err == nil:
		result.ExitCode = 0
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = SpawnFailureExitCode
			result.SpawnErr = fmt.Errorf("failed to start %q: %w", argv[0], err)
		}
	}

	return result
}
