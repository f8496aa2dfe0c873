package cli

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/briandowns/spinner"
	"github.com/schoolboyqueue/brb/internal/channel"
	"github.com/schoolboyqueue/brb/internal/config"
	"github.com/schoolboyqueue/brb/internal/event"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "Manage notification channels",
	RunE:  runChannelsList,
}

var channelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured channels",
	RunE:  runChannelsList,
}

var channelsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadDefault()
		if err != nil {
			return err
		}
		fmt.Printf("brb: config is valid (%s)\n", loaded.Path)
		return nil
	},
}

var channelsTestCmd = &cobra.Command{
	Use:   "test <channel-id>",
	Short: "Send a test notification to one channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		loaded, err := config.LoadDefault()
		if err != nil {
			return err
		}
		cfg := &loaded.Config

		if _, ok := cfg.Channels[id]; !ok {
			return &config.UnknownChannelError{ID: id}
		}

		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}
		host, _ := os.Hostname()
		ev := event.TestEvent(time.Now(), cwd, host)

		var sp *spinner.Spinner
		if isInteractive() {
			sp = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
			sp.Suffix = fmt.Sprintf(" delivering test notification to %q...", id)
			sp.Start()
		}

		outcomes := channel.NewDispatcher(cfg).Dispatch(cmd.Context(), &ev, []string{id})
		if sp != nil {
			sp.Stop()
		}

		outcome := outcomes[0]
		if outcome.OK() {
			fmt.Printf("brb: test notification delivered on %q\n", id)
			return nil
		}

		fmt.Fprintf(os.Stderr, "brb: test notification failed on %q: %s\n", id, channel.Redact(outcome.Err.Error()))
		return NewExitError(1)
	},
}

func runChannelsList(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadDefault()
	if err != nil {
		return err
	}

	defaults := make(map[string]bool, len(loaded.Config.DefaultChannels))
	for _, id := range loaded.Config.DefaultChannels {
		defaults[id] = true
	}

	ids := make([]string, 0, len(loaded.Config.Channels))
	for id := range loaded.Config.Channels {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("Config: %s\n", loaded.Path)
	fmt.Println("Channels:")
	for _, id := range ids {
		label := ""
		if defaults[id] {
			label = " (default)"
		}
		fmt.Printf("- %s [%s]%s\n", id, loaded.Config.Channels[id].Type, label)
	}
	return nil
}

// isInteractive reports whether stderr is a terminal; the spinner is
// suppressed in pipes and CI logs.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func init() {
	channelsCmd.AddCommand(channelsListCmd)
	channelsCmd.AddCommand(channelsValidateCmd)
	channelsCmd.AddCommand(channelsTestCmd)
	rootCmd.AddCommand(channelsCmd)
}
