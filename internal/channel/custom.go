package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/schoolboyqueue/brb/internal/config"
	"github.com/schoolboyqueue/brb/internal/event"
)

// maxStderrChars bounds the diagnostic text attached to a failure outcome.
const maxStderrChars = 200

// customBackend spawns the configured executable, writes one JSON-encoded
// event to its stdin, and closes it. The child inherits the process
// environment with the configured overrides applied; its stdout is discarded
// and its stderr is captured as diagnostic text.
type customBackend struct {
	channel config.CustomChannel
}

func (b *customBackend) Deliver(ctx context.Context, ev *event.CompletionEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode event payload: %w", err)
	}

	cmd := exec.CommandContext(ctx, b.channel.Exec, b.channel.Args...)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = io.Discard

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	cmd.Env = os.Environ()
	for name, value := range b.channel.Env {
		cmd.Env = append(cmd.Env, name+"="+value)
	}

	if err := cmd.Start(); err != nil {
		return &SpawnError{Exec: b.channel.Exec, Err: err}
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{
				Code:   exitErr.ExitCode(),
				Stderr: truncate(strings.TrimSpace(stderr.String()), maxStderrChars),
			}
		}
		return fmt.Errorf("failed waiting for custom notifier: %w", err)
	}

	return nil
}

// truncate caps s at max characters, appending an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
