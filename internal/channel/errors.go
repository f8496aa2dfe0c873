package channel

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned by the desktop backend on platforms without a
// notification facility.
var ErrUnsupported = errors.New("desktop notifications are not supported on this platform")

// BackendError wraps an error reported by the platform notification facility.
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("desktop notifier failed: %v", e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// HTTPError reports a webhook response with a status outside [200,299]. The
// transport succeeded; the remote rejected or failed to process the event.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("webhook returned HTTP %d", e.Status)
}

// TransportError wraps a connection failure or timeout on a webhook delivery.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("webhook request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// SpawnError reports a custom notifier executable that could not be started.
type SpawnError struct {
	Exec string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start custom notifier %q: %v", e.Exec, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ExitError reports a custom notifier that terminated with a non-zero status.
// Stderr holds the captured (truncated) diagnostic text, if any.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("custom notifier exited with status %d", e.Code)
	}
	return fmt.Sprintf("custom notifier exited with status %d: %s", e.Code, e.Stderr)
}
