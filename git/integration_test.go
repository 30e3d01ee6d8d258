//go:build integration

package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/samoyed/command"
	"github.com/grovetools/samoyed/testutil"
	"github.com/grovetools/samoyed/util/fsys"
)

func TestConfiguratorWithRealGit(t *testing.T) {
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	sub := filepath.Join(dir, "src", "pkg")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	c := NewConfigurator(command.NewRunner(), fsys.OS{})
	ctx := context.Background()

	root, err := c.DiscoverRoot(ctx, sub)
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, c.SetHooksPath(ctx, root, filepath.Join(root, ".samoyed", "_")))
	out := testutil.RunGitCommand(t, dir, "config", "--get", HooksPathKey)
	assert.Equal(t, ".samoyed/_", strings.TrimSpace(out))

	value, ok, err := c.GetHooksPath(ctx, root)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, ".samoyed/_", value)
}

func TestDiscoverRootOutsideRepository(t *testing.T) {
	testutil.RequireGit(t)
	testutil.IsolateGitConfig(t)
	t.Setenv("GIT_CEILING_DIRECTORIES", os.TempDir())

	c := NewConfigurator(command.NewRunner(), fsys.OS{})
	_, err := c.DiscoverRoot(context.Background(), t.TempDir())
	require.Error(t, err)
}

func TestDiscoverRootInWorktree(t *testing.T) {
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	wt := filepath.Join(t.TempDir(), "wt")
	testutil.RunGitCommand(t, dir, "worktree", "add", "-b", "feature", wt)

	c := NewConfigurator(command.NewRunner(), fsys.OS{})
	root, err := c.DiscoverRoot(context.Background(), wt)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, ".git"))
}
