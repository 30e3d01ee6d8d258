package testutil

import (
	"context"
	"io"

	"github.com/grovetools/samoyed/command"
)

// FakeRunner is a scripted command.Runner. git rev-parse and git config
// are emulated from Toplevel and Config; every other command is recorded
// and answered with HookExitCode (or HookErr).
type FakeRunner struct {
	// Toplevel is reported by `git rev-parse --show-toplevel`. Empty makes
	// git fail as it does outside a repository.
	Toplevel string
	Config   map[string]string
	// FailConfigSet makes `git config <key> <value>` fail.
	FailConfigSet bool

	HookExitCode int
	HookErr      error
	// HookOutput is written to the spec's Stdout when one is set.
	HookOutput string

	Calls        []command.Spec
	ConfigWrites int
	// HookCtxErr is ctx.Err() as seen by the last non-git run.
	HookCtxErr error
}

// NewFakeRunner returns a FakeRunner rooted at toplevel.
func NewFakeRunner(toplevel string) *FakeRunner {
	return &FakeRunner{
		Toplevel: toplevel,
		Config:   map[string]string{},
	}
}

var _ command.Runner = (*FakeRunner)(nil)

func (f *FakeRunner) Run(ctx context.Context, spec command.Spec) (command.Result, error) {
	f.Calls = append(f.Calls, spec)
	if spec.Name == "git" {
		return f.runGit(spec.Args), nil
	}
	f.HookCtxErr = ctx.Err()

	if f.HookErr != nil {
		return command.Result{ExitCode: command.ExitCommandNotFound}, f.HookErr
	}
	if spec.Stdout != nil && f.HookOutput != "" {
		_, _ = io.WriteString(spec.Stdout, f.HookOutput)
	}
	return command.Result{ExitCode: f.HookExitCode}, nil
}

func (f *FakeRunner) runGit(args []string) command.Result {
	if len(args) == 0 {
		return command.Result{ExitCode: 129}
	}

	switch args[0] {
	case "rev-parse":
		if f.Toplevel == "" {
			return command.Result{
				ExitCode: 128,
				Stderr:   []byte("fatal: not a git repository (or any of the parent directories): .git\n"),
			}
		}
		return command.Result{Stdout: []byte(f.Toplevel + "\n")}

	case "config":
		if len(args) == 3 && args[1] == "--get" {
			v, ok := f.Config[args[2]]
			if !ok {
				return command.Result{ExitCode: 1}
			}
			return command.Result{Stdout: []byte(v + "\n")}
		}
		if len(args) == 3 {
			if f.FailConfigSet {
				return command.Result{ExitCode: 255, Stderr: []byte("error: could not lock config file .git/config\n")}
			}
			if f.Config == nil {
				f.Config = map[string]string{}
			}
			f.Config[args[1]] = args[2]
			f.ConfigWrites++
			return command.Result{}
		}
	}
	return command.Result{ExitCode: 129, Stderr: []byte("fake git: unsupported invocation\n")}
}

// GitCalls returns recorded git invocations.
func (f *FakeRunner) GitCalls() []command.Spec {
	return f.filter(func(s command.Spec) bool { return s.Name == "git" })
}

// HookCalls returns recorded non-git invocations.
func (f *FakeRunner) HookCalls() []command.Spec {
	return f.filter(func(s command.Spec) bool { return s.Name != "git" })
}

func (f *FakeRunner) filter(keep func(command.Spec) bool) []command.Spec {
	var out []command.Spec
	for _, s := range f.Calls {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}
