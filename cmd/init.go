package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/grovetools/samoyed/cli"
	"github.com/grovetools/samoyed/hooks"
	"github.com/grovetools/samoyed/installer"
	"github.com/grovetools/samoyed/logging"
)

func newInitCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "init [install-target]",
		Short: "Install hook stubs and point core.hooksPath at them",
		Long: `Create <install-target>/_ with one stub per client-side git hook, a
wrapper script and a .gitignore, then set core.hooksPath to it. A sample
pre-commit script is written to <install-target> unless one exists.

The target defaults to .samoyed and must live inside the repository.
Running init again rewrites the same files.

Examples:
  samoyed init
  samoyed init tools/hooks
  SAMOYED=0 samoyed init`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := deps.cwd()
			if err != nil {
				return err
			}

			req := installer.Request{Cwd: cwd}
			if len(args) == 1 {
				req.Target = args[0]
			}

			inst := installer.New(installer.Options{
				Mode:    deps.mode(),
				Git:     deps.git(),
				FS:      deps.FS,
				Notices: cmd.ErrOrStderr(),
			})
			res, err := inst.Install(cmd.Context(), req)
			if err != nil {
				return err
			}

			if cli.GetOptions(cmd).JSONOutput {
				data, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal result: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if res.Bypassed {
				return nil
			}

			pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
			pretty.Success("Hooks installed")
			pretty.Path("target", res.Target)
			pretty.Field("core.hooksPath", res.HooksPath)
			if res.SampleCreated {
				pretty.Path("sample", filepath.Join(res.Target, string(hooks.Sample)))
			}
			if len(res.Shadowed) > 0 {
				pretty.WarnPretty(fmt.Sprintf("Hooks in .git/hooks are no longer run by git: %v", res.Shadowed))
			}
			return nil
		},
	}
}
