// Package cmd wires samoyed's subcommands onto a cobra root.
package cmd

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/grovetools/samoyed/cli"
	"github.com/grovetools/samoyed/command"
	"github.com/grovetools/samoyed/env"
	"github.com/grovetools/samoyed/errors"
	"github.com/grovetools/samoyed/git"
	"github.com/grovetools/samoyed/logging"
	"github.com/grovetools/samoyed/pkg/profiling"
	"github.com/grovetools/samoyed/util/fsys"
	"github.com/grovetools/samoyed/util/pathutil"
	"github.com/grovetools/samoyed/version"
)

// Deps are the collaborators every command reaches the outside world
// through.
type Deps struct {
	FS     fsys.FS
	Runner command.Runner
	Lookup env.LookupFunc
	Getwd  func() (string, error)

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultDeps returns Deps backed by the real process environment.
func DefaultDeps() Deps {
	return Deps{
		FS:     fsys.OS{},
		Runner: command.NewRunner(),
		Lookup: os.LookupEnv,
		Getwd:  os.Getwd,
	}
}

func (d Deps) mode() env.Mode {
	return env.ModeFrom(d.Lookup)
}

func (d Deps) git() *git.Configurator {
	return git.NewConfigurator(d.Runner, d.FS)
}

func (d Deps) cwd() (string, error) {
	cwd, err := d.Getwd()
	if err != nil {
		return "", errors.FilesystemError("getwd", ".", err)
	}
	return cwd, nil
}

// configFile returns the --config flag with ~ and environment variables
// expanded, or "" when the flag is unset.
func configFile(cmd *cobra.Command) (string, error) {
	path := cli.GetOptions(cmd).ConfigFile
	if path == "" {
		return "", nil
	}
	expanded, err := pathutil.Expand(path)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInvalidInput, "cannot resolve --config path").
			WithDetail("path", path)
	}
	return expanded, nil
}

// NewRootCmd builds the samoyed command tree.
func NewRootCmd(deps Deps) *cobra.Command {
	root := cli.NewStandardCommand("samoyed", "Delegate git hooks to a project command table")
	root.Long = `samoyed installs a fixed set of git hook stubs under a directory of the
repository and points core.hooksPath at them. When git fires a hook, the
stub runs samoyed, which looks the hook up in samoyed.toml (or samoyed.yml)
and falls back to an executable script of the same name.

Set SAMOYED=0 to skip every hook, or SAMOYED=2 to trace them.`

	cli.SetVersionTemplate(root, version.GetInfo())
	profiling.AddFlags(root)

	root.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		cfg := logging.ConfigFromEnv()
		cfg.Debug = deps.mode() == env.Debug
		logging.Configure(cfg)
		cli.GetLogger(cmd, "cli")
		profiling.EnableFromCommand(cmd, deps.Lookup)
	}

	if deps.Stdin != nil {
		root.SetIn(deps.Stdin)
	}
	if deps.Stdout != nil {
		root.SetOut(deps.Stdout)
	}
	if deps.Stderr != nil {
		root.SetErr(deps.Stderr)
	}

	root.AddCommand(
		newInitCmd(deps),
		newHookCmd(deps),
		newStatusCmd(deps),
		newConfigCmd(deps),
		newPathsCmd(),
		cli.NewVersionCommand("samoyed", version.GetInfo()),
	)
	return root
}

// Execute runs the command line args and returns the process exit code.
func Execute(ctx context.Context, deps Deps, args []string) int {
	root := NewRootCmd(deps)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	profiling.Summarize(root.ErrOrStderr())
	if err == nil {
		return 0
	}

	if _, ok := errors.AsSamoyedError(err); ok {
		verbose, _ := root.PersistentFlags().GetBool("verbose")
		cli.NewErrorHandler(root.ErrOrStderr(), verbose).Handle(err)
	} else {
		cli.PrintError(root, err)
	}
	return errors.ExitCode(err)
}
