package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/samoyed/cli"
	"github.com/grovetools/samoyed/config"
	"github.com/grovetools/samoyed/logging"
)

func newConfigCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the hook command table",
	}
	cmd.AddCommand(newConfigShowCmd(deps), newConfigSchemaCmd(), newConfigValidateCmd(deps))
	return cmd
}

func newConfigShowCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the merged hook table and the files it came from",
		Long: `Shows how the final table is built by merging layers:
1. Global config ($XDG_CONFIG_HOME/samoyed/samoyed.toml)
2. Project config (samoyed.toml or samoyed.yml in the repository root, or --config)
3. Override files (samoyed.override.toml next to the project config)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			layered, err := loadLayered(cmd, deps)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if cli.GetOptions(cmd).JSONOutput {
				data, err := json.MarshalIndent(struct {
					Files   map[config.ConfigSource]string `json:"files"`
					Origins map[string]config.ConfigSource `json:"origins"`
					Hooks   config.HookTable               `json:"hooks"`
				}{layered.FilePaths, layered.Origins, layered.Final.Hooks}, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal config: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			printLayer := func(title, path string, cfg *config.Config) error {
				if cfg == nil {
					return nil
				}
				fmt.Fprintf(out, "--- # %s\n", title)
				if path != "" {
					fmt.Fprintf(out, "# Source: %s\n", path)
				}
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("failed to marshal %s: %w", title, err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			if err := printLayer("GLOBAL CONFIG", layered.FilePaths[config.SourceGlobal], layered.Global); err != nil {
				return err
			}
			projectPath := layered.FilePaths[config.SourceProject]
			if projectPath == "" {
				projectPath = layered.FilePaths[config.SourceFlag]
			}
			if err := printLayer("PROJECT CONFIG", projectPath, layered.Project); err != nil {
				return err
			}
			for _, override := range layered.Overrides {
				if err := printLayer("OVERRIDE CONFIG", override.Path, override.Config); err != nil {
					return err
				}
			}
			return printLayer("FINAL MERGED CONFIG", "", layered.Final)
		},
	}
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for samoyed.toml and samoyed.yml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.GenerateSchema()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newConfigValidateCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check every config layer against the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			layered, err := loadLayered(cmd, deps)
			if err != nil {
				return err
			}
			pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
			pretty.Success(fmt.Sprintf("Configuration is valid (%d hooks)", len(layered.Final.Hooks)))
			return nil
		},
	}
}

func loadLayered(cmd *cobra.Command, deps Deps) (*config.LayeredConfig, error) {
	cwd, err := deps.cwd()
	if err != nil {
		return nil, err
	}
	root, err := deps.git().DiscoverRoot(cmd.Context(), cwd)
	if err != nil {
		return nil, err
	}
	path, err := configFile(cmd)
	if err != nil {
		return nil, err
	}
	return config.NewLoader(deps.FS).LoadLayered(root, path)
}
