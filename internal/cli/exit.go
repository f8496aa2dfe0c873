package cli

import "fmt"

// ExitError carries a process exit code through cobra's error return without
// printing anything. The root command uses it to mirror the wrapped command's
// exit code exactly; delivery failures never change it.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError creates an error that makes the process exit with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}
