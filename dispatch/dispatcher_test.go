package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/samoyed/env"
	"github.com/grovetools/samoyed/errors"
	"github.com/grovetools/samoyed/git"
	"github.com/grovetools/samoyed/hooks"
	"github.com/grovetools/samoyed/testutil"
	"github.com/grovetools/samoyed/util/fsys"
)

type fixture struct {
	mem    *fsys.Mem
	runner *testutil.FakeRunner
	stderr *bytes.Buffer
	vars   map[string]string
	table  map[hooks.Name]string
	cfgErr error
}

func newFixture() *fixture {
	return &fixture{
		mem:    fsys.NewMem("/repo/.git", "/repo/src"),
		runner: testutil.NewFakeRunner("/repo"),
		stderr: &bytes.Buffer{},
		vars:   map[string]string{"PATH": "/usr/bin:/bin"},
		table:  map[hooks.Name]string{},
	}
}

func (f *fixture) dispatcher(mode env.Mode) *Dispatcher {
	return New(Options{
		Mode:   mode,
		Lookup: env.MapLookup(f.vars),
		Git:    git.NewConfigurator(f.runner, f.mem),
		FS:     f.mem,
		Runner: f.runner,
		Config: func(string) (LookupFunc, error) {
			if f.cfgErr != nil {
				return nil, f.cfgErr
			}
			return table(f.table), nil
		},
		Cwd:    "/repo/src",
		Stdout: &bytes.Buffer{},
		Stderr: f.stderr,
	})
}

func (f *fixture) script(path string) {
	f.mem.AddFile(path, []byte("#!/bin/sh\n"), 0o755)
}

func TestDispatchDisabledDoesNothing(t *testing.T) {
	f := newFixture()
	f.runner.Toplevel = ""
	f.table[hooks.PreCommit] = "exit 1"

	code, err := f.dispatcher(env.Disabled).Dispatch(context.Background(), "pre-commit", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Empty(t, f.runner.Calls)
	assert.Equal(t, 0, f.mem.Writes)
}

func TestDispatchDisabledAcceptsUnknownHook(t *testing.T) {
	f := newFixture()
	code, err := f.dispatcher(env.Disabled).Dispatch(context.Background(), "not-a-hook", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestDispatchRejectsUnknownHook(t *testing.T) {
	f := newFixture()
	code, err := f.dispatcher(env.Normal).Dispatch(context.Background(), "pre-comit", nil)
	require.Error(t, err)
	assert.Equal(t, 1, code)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
	assert.Empty(t, f.runner.Calls)
}

func TestDispatchOutsideRepository(t *testing.T) {
	f := newFixture()
	f.runner.Toplevel = ""

	code, err := f.dispatcher(env.Normal).Dispatch(context.Background(), "pre-commit", nil)
	require.Error(t, err)
	assert.Equal(t, 1, code)
	assert.Equal(t, errors.ErrCodeNotAGitRepository, errors.GetCode(err))
	assert.Empty(t, f.runner.HookCalls())
}

func TestDispatchConfigCommand(t *testing.T) {
	f := newFixture()
	f.table[hooks.CommitMsg] = `grep -q JIRA "$1"`
	f.script("/repo/.samoyed/commit-msg")

	code, err := f.dispatcher(env.Normal).Dispatch(context.Background(), "commit-msg", []string{".git/COMMIT_EDITMSG"})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	calls := f.runner.HookCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "sh", calls[0].Name)
	assert.Equal(t, []string{"-c", `grep -q JIRA "$1"`, "commit-msg", ".git/COMMIT_EDITMSG"}, calls[0].Args)
	assert.Equal(t, "/repo", calls[0].Dir)
	assert.NotNil(t, calls[0].Stdin)
	assert.NotNil(t, calls[0].Stdout)
	assert.Equal(t, f.stderr, calls[0].Stderr)
	assert.Zero(t, calls[0].Timeout)
}

func TestDispatchFallbackScriptExitCodes(t *testing.T) {
	for _, exitCode := range []int{0, 1, 127} {
		t.Run(fmt.Sprintf("exit %d", exitCode), func(t *testing.T) {
			f := newFixture()
			f.script("/repo/.samoyed/pre-commit")
			f.runner.HookExitCode = exitCode

			code, err := f.dispatcher(env.Normal).Dispatch(context.Background(), "pre-commit", nil)
			require.NoError(t, err)
			assert.Equal(t, exitCode, code)

			calls := f.runner.HookCalls()
			require.Len(t, calls, 1)
			assert.Equal(t, []string{"/repo/.samoyed/pre-commit"}, calls[0].Args)

			if exitCode == 127 {
				assert.Contains(t, f.stderr.String(), "PATH=/usr/bin:/bin")
			} else {
				assert.Empty(t, f.stderr.String())
			}
		})
	}
}

func TestDispatchPropagatesExitStatus(t *testing.T) {
	f := newFixture()
	f.table[hooks.PrePush] = "exit 3"
	f.runner.HookExitCode = 3

	code, err := f.dispatcher(env.Normal).Dispatch(context.Background(), "pre-push", []string{"origin", "git@example.com:r.git"})
	require.NoError(t, err)
	assert.Equal(t, 3, code)
}

func TestDispatchNoOpSpawnsNothing(t *testing.T) {
	f := newFixture()

	code, err := f.dispatcher(env.Normal).Dispatch(context.Background(), "post-checkout", []string{"a", "b", "1"})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Empty(t, f.runner.HookCalls())
	assert.Empty(t, f.stderr.String())
	assert.Equal(t, 0, f.mem.Writes)
}

func TestDispatchDebugTracesShell(t *testing.T) {
	f := newFixture()
	f.table[hooks.PreCommit] = "true"
	f.script("/repo/.samoyed/pre-push")

	d := f.dispatcher(env.Debug)
	_, err := d.Dispatch(context.Background(), "pre-commit", nil)
	require.NoError(t, err)
	_, err = d.Dispatch(context.Background(), "pre-push", nil)
	require.NoError(t, err)

	calls := f.runner.HookCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, []string{"-x", "-c", "true", "pre-commit"}, calls[0].Args)
	assert.Equal(t, []string{"-x", "/repo/.samoyed/pre-push"}, calls[1].Args)
}

func TestDispatchTargetFromWrapperEnv(t *testing.T) {
	f := newFixture()
	f.vars[HooksDirEnv] = "/repo/tools/hooks/_"
	require.NoError(t, f.mem.MkdirAll("/repo/tools/hooks/_", 0o755))
	f.script("/repo/tools/hooks/scripts/pre-push")
	f.script("/repo/.samoyed/pre-push")

	_, err := f.dispatcher(env.Normal).Dispatch(context.Background(), "pre-push", nil)
	require.NoError(t, err)

	calls := f.runner.HookCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"/repo/tools/hooks/scripts/pre-push"}, calls[0].Args)
}

func TestDispatchTargetFromHooksPath(t *testing.T) {
	f := newFixture()
	f.runner.Config[git.HooksPathKey] = "config/hooks/_"
	f.script("/repo/config/hooks/pre-push")

	_, err := f.dispatcher(env.Normal).Dispatch(context.Background(), "pre-push", nil)
	require.NoError(t, err)

	calls := f.runner.HookCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"/repo/config/hooks/pre-push"}, calls[0].Args)
}

func TestDispatchConfigError(t *testing.T) {
	f := newFixture()
	f.cfgErr = errors.ConfigInvalid("bad table")

	code, err := f.dispatcher(env.Normal).Dispatch(context.Background(), "pre-commit", nil)
	require.Error(t, err)
	assert.Equal(t, 1, code)
	assert.Equal(t, errors.ErrCodeConfigInvalid, errors.GetCode(err))
	assert.Empty(t, f.runner.HookCalls())
}

func TestDispatchShellMissing(t *testing.T) {
	f := newFixture()
	f.table[hooks.PreCommit] = "true"
	f.runner.HookErr = errors.CommandNotFound("sh", fmt.Errorf("executable file not found in $PATH"))

	code, err := f.dispatcher(env.Normal).Dispatch(context.Background(), "pre-commit", nil)
	require.Error(t, err)
	assert.Equal(t, 127, code)
	assert.Contains(t, f.stderr.String(), "PATH=")
}

func TestDispatchIgnoresMissingWrapperDir(t *testing.T) {
	f := newFixture()
	// cd with CDPATH set echoes the directory, doubling the captured path.
	f.vars[HooksDirEnv] = "/repo/tools/hooks/_\n/repo/tools/hooks/_"
	f.runner.Config[git.HooksPathKey] = "tools/hooks/_"
	require.NoError(t, f.mem.MkdirAll("/repo/tools/hooks/_", 0o755))
	f.script("/repo/tools/hooks/pre-commit")
	f.runner.HookExitCode = 4

	code, err := f.dispatcher(env.Normal).Dispatch(context.Background(), "pre-commit", nil)
	require.NoError(t, err)
	assert.Equal(t, 4, code)

	calls := f.runner.HookCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"/repo/tools/hooks/pre-commit"}, calls[0].Args)
}

func TestDispatchHookOutlivesCancellation(t *testing.T) {
	f := newFixture()
	f.table[hooks.PrePush] = "sleep 10"
	f.runner.HookExitCode = 130

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code, err := f.dispatcher(env.Normal).Dispatch(ctx, "pre-push", nil)
	require.NoError(t, err)
	assert.Equal(t, 130, code)
	assert.NoError(t, f.runner.HookCtxErr)
}
