package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/samoyed/pkg/paths"
)

// PathsOutput lists the per-user files samoyed reads.
type PathsOutput struct {
	ConfigDir    string `json:"config_dir"`
	InitScript   string `json:"init_script"`
	GlobalConfig string `json:"global_config"`
}

func newPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the per-user paths samoyed reads",
		Long: `Print the per-user paths samoyed reads, as JSON.

- config_dir: $XDG_CONFIG_HOME/samoyed (default ~/.config/samoyed)
- init_script: sourced by the hook wrapper before every hook, e.g. to extend PATH
- global_config: hook table merged underneath the project's`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output := PathsOutput{
				ConfigDir:    paths.ConfigDir(),
				InitScript:   paths.InitScript(),
				GlobalConfig: paths.GlobalConfigFile(),
			}

			jsonData, err := json.MarshalIndent(output, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal paths to JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			return nil
		},
	}
}
