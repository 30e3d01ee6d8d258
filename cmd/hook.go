package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/samoyed/config"
	"github.com/grovetools/samoyed/dispatch"
	"github.com/grovetools/samoyed/env"
	"github.com/grovetools/samoyed/errors"
)

func newHookCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "hook <hook-name> [args...]",
		Short: "Run the command configured for a git hook",
		Long: `Entry point used by the generated hook stubs. The hook's arguments are
passed through untouched and its exit status becomes samoyed's.`,
		Args:               cobra.MinimumNArgs(1),
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.mode() == env.Disabled {
				return nil
			}
			cwd, err := deps.cwd()
			if err != nil {
				return err
			}

			loader := config.NewLoader(deps.FS)
			d := dispatch.New(dispatch.Options{
				Mode:   deps.mode(),
				Lookup: deps.Lookup,
				Git:    deps.git(),
				FS:     deps.FS,
				Runner: deps.Runner,
				Config: func(root string) (dispatch.LookupFunc, error) {
					cfg, err := loader.LoadFrom(root)
					if err != nil {
						return nil, err
					}
					return cfg.Lookup, nil
				},
				Cwd:    cwd,
				Stdin:  cmd.InOrStdin(),
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
			})

			code, err := d.Dispatch(cmd.Context(), args[0], args[1:])
			if err != nil {
				return err
			}
			if code != 0 {
				return errors.ExitStatus(args[0], code)
			}
			return nil
		},
	}
}
