// Package cli provides the Cobra-based command surface for brb: the root
// wrapped-command runner plus the init, channels, config, and version
// management commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schoolboyqueue/brb/internal/channel"
	"github.com/schoolboyqueue/brb/internal/config"
	"github.com/schoolboyqueue/brb/internal/event"
	"github.com/schoolboyqueue/brb/internal/runner"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "brb [flags] <command> [args...]",
	Short: "run a command and notify when it completes",
	Long: `brb runs a command with inherited stdio, waits for it to finish, and
delivers a completion event to your configured notification channels
(desktop, webhook, or custom executable).

The process exits with the wrapped command's exit code; notification
failures are reported as warnings but never change it.`,
	Example: `  # Notify the default channels when the build finishes
  brb make build

  # Notify specific channels instead of the defaults
  brb --channel slack --channel desktop -- cargo test

  # Create the starter config
  brb init`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runWrapped,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		fmt.Fprintf(os.Stderr, "brb: %v\n", err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.Flags().StringArray("channel", nil, "channel ID to notify (repeatable; replaces default_channels)")

	// Stop flag parsing at the first positional so the wrapped command's own
	// flags pass through untouched.
	rootCmd.Flags().SetInterspersed(false)
}

func runWrapped(cmd *cobra.Command, args []string) error {
	channels, _ := cmd.Flags().GetStringArray("channel")

	if len(args) == 0 {
		if len(channels) == 0 {
			return cmd.Help()
		}
		return errors.New("no command provided")
	}

	// Config and selection errors abort before the wrapped command is
	// ever spawned.
	loaded, err := config.LoadDefault()
	if err != nil {
		return err
	}
	cfg := &loaded.Config

	selected, err := channel.ResolveSelection(channels, cfg)
	if err != nil {
		return err
	}

	res := runner.Run(args)
	if res.SpawnErr != nil {
		fmt.Fprintf(os.Stderr, "brb: %v\n", res.SpawnErr)
	}

	ev := buildEvent(res)
	outcomes := channel.NewDispatcher(cfg).Dispatch(cmd.Context(), &ev, selected)
	printSummary(os.Stderr, res.ExitCode, outcomes)

	if res.ExitCode != 0 {
		return NewExitError(res.ExitCode)
	}
	return nil
}

// buildEvent assembles the completion event from the run result plus the
// ambient collaborators (cwd, hostname) the event builder keeps out of scope.
func buildEvent(res runner.Result) event.CompletionEvent {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	host, _ := os.Hostname()

	return event.Build(event.BuildInput{
		Command:    res.Command,
		Cwd:        cwd,
		StartedAt:  res.StartedAt,
		FinishedAt: res.FinishedAt,
		ExitCode:   res.ExitCode,
		Host:       host,
	})
}

// printSummary reports delivery results to stderr so the wrapped command's
// stdout stays clean. Failure reasons pass through the redaction filter.
func printSummary(w io.Writer, exitCode int, outcomes []channel.Outcome) {
	sent := 0
	var failed []string
	for _, o := range outcomes {
		if o.OK() {
			sent++
			continue
		}
		failed = append(failed, fmt.Sprintf("%s (%s)", o.ChannelID, channel.Redact(o.Err.Error())))
	}

	label := "command succeeded"
	if exitCode != 0 {
		label = "command failed"
	}

	if len(failed) == 0 {
		fmt.Fprintf(w, "brb: %s (exit %d); notifications sent %d/%d\n", label, exitCode, sent, len(outcomes))
		return
	}
	fmt.Fprintf(w, "brb: %s (exit %d); notifications sent %d/%d; failed: %s\n",
		label, exitCode, sent, len(outcomes), strings.Join(failed, ", "))
}
