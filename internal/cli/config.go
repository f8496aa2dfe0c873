package cli

import (
	"fmt"
	"os"

	"github.com/schoolboyqueue/brb/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the brb config file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Path()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the loaded config as YAML",
	Long: `Print the loaded config as YAML, after environment interpolation and
validation. Interpolated secrets are shown verbatim.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadDefault()
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(loaded.Config)
		if err != nil {
			return fmt.Errorf("failed to render config: %w", err)
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the starter config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := config.Init()
		if err != nil {
			return err
		}
		if result.Created {
			fmt.Printf("brb: created config at %s\n", result.Path)
		} else {
			fmt.Printf("brb: config already exists at %s\n", result.Path)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(initCmd)
}
