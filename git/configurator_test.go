package git

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/samoyed/errors"
	"github.com/grovetools/samoyed/testutil"
	"github.com/grovetools/samoyed/util/fsys"
)

func TestDiscoverRoot(t *testing.T) {
	tests := []struct {
		name     string
		toplevel string
		setup    func(m *fsys.Mem)
		wantErr  bool
	}{
		{
			name:     ".git directory",
			toplevel: "/repo",
			setup:    func(m *fsys.Mem) { _ = m.MkdirAll("/repo/.git", 0o755) },
		},
		{
			name:     "worktree gitdir file",
			toplevel: "/wt",
			setup: func(m *fsys.Mem) {
				_ = m.MkdirAll("/repo/.git/worktrees/wt", 0o755)
				m.AddFile("/wt/.git", []byte("gitdir: /repo/.git/worktrees/wt\n"), 0o644)
			},
		},
		{
			name:     "submodule relative gitdir",
			toplevel: "/repo/sub",
			setup: func(m *fsys.Mem) {
				_ = m.MkdirAll("/repo/.git/modules/sub", 0o755)
				m.AddFile("/repo/sub/.git", []byte("gitdir: ../.git/modules/sub\n"), 0o644)
			},
		},
		{
			name:     "gitdir file pointing nowhere",
			toplevel: "/wt",
			setup: func(m *fsys.Mem) {
				m.AddFile("/wt/.git", []byte("gitdir: /gone\n"), 0o644)
			},
			wantErr: true,
		},
		{
			name:     "gitdir file without gitdir line",
			toplevel: "/wt",
			setup: func(m *fsys.Mem) {
				m.AddFile("/wt/.git", []byte("garbage\n"), 0o644)
			},
			wantErr: true,
		},
		{
			name:     "missing .git",
			toplevel: "/repo",
			setup:    func(m *fsys.Mem) { _ = m.MkdirAll("/repo", 0o755) },
			wantErr:  true,
		},
		{
			name:     "toplevel not a directory",
			toplevel: "/repo",
			setup:    func(m *fsys.Mem) {},
			wantErr:  true,
		},
		{
			name:     "git fails",
			toplevel: "",
			setup:    func(m *fsys.Mem) {},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := fsys.NewMem()
			tt.setup(mem)
			runner := testutil.NewFakeRunner(tt.toplevel)
			c := NewConfigurator(runner, mem)

			root, err := c.DiscoverRoot(context.Background(), "/somewhere")
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeNotAGitRepository, errors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.toplevel, root)

			calls := runner.GitCalls()
			require.Len(t, calls, 1)
			assert.Equal(t, "/somewhere", calls[0].Dir)
			assert.Equal(t, []string{"rev-parse", "--show-toplevel"}, calls[0].Args)
		})
	}
}

func TestSetAndGetHooksPath(t *testing.T) {
	runner := testutil.NewFakeRunner("/repo")
	c := NewConfigurator(runner, fsys.NewMem("/repo/.git"))
	ctx := context.Background()

	_, ok, err := c.GetHooksPath(ctx, "/repo")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetHooksPath(ctx, "/repo", "/repo/.samoyed/_"))
	assert.Equal(t, ".samoyed/_", runner.Config[HooksPathKey])

	value, ok, err := c.GetHooksPath(ctx, "/repo")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, ".samoyed/_", value)

	require.NoError(t, c.SetHooksPath(ctx, "/repo", "/repo/.samoyed/_"))
	assert.Equal(t, ".samoyed/_", runner.Config[HooksPathKey])
	assert.Equal(t, 2, runner.ConfigWrites)
}

func TestSetHooksPathFailure(t *testing.T) {
	runner := testutil.NewFakeRunner("/repo")
	runner.FailConfigSet = true
	c := NewConfigurator(runner, fsys.NewMem("/repo/.git"))

	err := c.SetHooksPath(context.Background(), "/repo", "/repo/.samoyed/_")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeGitConfig, errors.GetCode(err))
	assert.Contains(t, err.Error(), "could not lock config file")
}

func TestHooksPathValue(t *testing.T) {
	assert.Equal(t, ".samoyed/_", HooksPathValue("/repo", "/repo/.samoyed/_"))
	assert.Equal(t, "_", HooksPathValue("/repo", "/repo/_"))
	assert.Equal(t, "/elsewhere/_", HooksPathValue("/repo", "/elsewhere/_"))

	assert.Equal(t, "/repo/.samoyed/_", ResolveHooksPath("/repo", ".samoyed/_"))
	assert.Equal(t, "/abs/_", ResolveHooksPath("/repo", "/abs/_"))
}

func TestShadowedHooks(t *testing.T) {
	mem := fsys.NewMem("/repo/.git/hooks")
	mem.AddFile("/repo/.git/hooks/pre-commit", []byte("#!/bin/sh\n"), 0o755)
	mem.AddFile("/repo/.git/hooks/pre-push.sample", []byte("#!/bin/sh\n"), 0o755)
	mem.AddFile("/repo/.git/hooks/commit-msg", []byte("#!/bin/sh\n"), 0o644)

	c := NewConfigurator(testutil.NewFakeRunner("/repo"), mem)
	assert.Equal(t, []string{"pre-commit"}, c.ShadowedHooks("/repo"))
	assert.Nil(t, c.ShadowedHooks("/other"))
}
