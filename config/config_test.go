package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/samoyed/errors"
	"github.com/grovetools/samoyed/hooks"
	"github.com/grovetools/samoyed/util/fsys"
)

func newTestLoader(mem *fsys.Mem) *Loader {
	return NewLoader(mem).WithGlobalPath("/home/u/.config/samoyed/samoyed.toml")
}

func TestLoadFromBytesFormats(t *testing.T) {
	tests := []struct {
		name string
		path string
		data string
	}{
		{
			name: "toml",
			path: "samoyed.toml",
			data: `
[hooks]
pre-commit = "go test ./..."

[hooks.commit-msg]
command = 'scripts/lint-msg "$1"'
description = "lint the commit message"
`,
		},
		{
			name: "yaml",
			path: "samoyed.yml",
			data: `
hooks:
  pre-commit: go test ./...
  commit-msg:
    command: scripts/lint-msg "$1"
    description: lint the commit message
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFromBytes(tt.path, []byte(tt.data))
			require.NoError(t, err)

			cmd, ok := cfg.Lookup(hooks.PreCommit)
			assert.True(t, ok)
			assert.Equal(t, "go test ./...", cmd)

			cmd, ok = cfg.Lookup(hooks.CommitMsg)
			assert.True(t, ok)
			assert.Equal(t, `scripts/lint-msg "$1"`, cmd)
			assert.Equal(t, "lint the commit message", cfg.Hooks["commit-msg"].Description)

			_, ok = cfg.Lookup(hooks.PrePush)
			assert.False(t, ok)
		})
	}
}

func TestLoadFromBytesDoesNotExpandVariables(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	cfg, err := LoadFromBytes("samoyed.toml", []byte(`hooks = { pre-push = "echo ${HOME}" }`))
	require.NoError(t, err)
	cmd, _ := cfg.Lookup(hooks.PrePush)
	assert.Equal(t, "echo ${HOME}", cmd)
}

func TestLoadFromBytesRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		path string
		data string
	}{
		{"unknown hook", "samoyed.toml", "[hooks]\npre-comit = \"x\"\n"},
		{"blank command", "samoyed.toml", "[hooks]\npre-commit = \" \"\n"},
		{"unknown key", "samoyed.yml", "hook:\n  pre-commit: x\n"},
		{"malformed toml", "samoyed.toml", "[hooks\n"},
		{"malformed yaml", "samoyed.yaml", "hooks: [unclosed\n"},
		{"unsupported extension", "samoyed.json", `{"hooks": {}}`},
		{"wrong entry type", "samoyed.toml", "[hooks]\npre-commit = 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes(tt.path, []byte(tt.data))
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestLoadFromBytesEmpty(t *testing.T) {
	cfg, err := LoadFromBytes("samoyed.toml", []byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Hooks)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := newTestLoader(fsys.NewMem()).Load("/repo/nope.toml")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigNotFound, errors.GetCode(err))
}

func TestFindConfigFilePrecedence(t *testing.T) {
	mem := fsys.NewMem("/repo")
	mem.AddFile("/repo/.samoyed.yaml", nil, 0o644)
	mem.AddFile("/repo/samoyed.yml", nil, 0o644)
	l := newTestLoader(mem)
	assert.Equal(t, "/repo/samoyed.yml", l.FindConfigFile("/repo"))

	mem.AddFile("/repo/samoyed.toml", nil, 0o644)
	assert.Equal(t, "/repo/samoyed.toml", l.FindConfigFile("/repo"))

	assert.Equal(t, "", l.FindConfigFile("/elsewhere"))
}

func TestLoadLayered(t *testing.T) {
	mem := fsys.NewMem("/repo")
	mem.AddFile("/home/u/.config/samoyed/samoyed.toml", []byte(`
[hooks]
pre-push = "global-push"
post-merge = "global-merge"
`), 0o644)
	mem.AddFile("/repo/samoyed.toml", []byte(`
[hooks]
pre-push = "project-push"
pre-commit = "project-commit"
`), 0o644)
	mem.AddFile("/repo/samoyed.override.yml", []byte(`
hooks:
  pre-commit: local-commit
`), 0o644)

	layered, err := newTestLoader(mem).LoadLayered("/repo", "")
	require.NoError(t, err)

	final := layered.Final
	assertCommand(t, final, hooks.PrePush, "project-push")
	assertCommand(t, final, hooks.PostMerge, "global-merge")
	assertCommand(t, final, hooks.PreCommit, "local-commit")

	assert.Equal(t, SourceGlobal, layered.Origins["post-merge"])
	assert.Equal(t, SourceProject, layered.Origins["pre-push"])
	assert.Equal(t, SourceOverride, layered.Origins["pre-commit"])
	assert.Equal(t, "/repo/samoyed.toml", layered.FilePaths[SourceProject])
	require.Len(t, layered.Overrides, 1)

	// Layers are kept as read.
	assertCommand(t, layered.Project, hooks.PreCommit, "project-commit")
}

func TestLoadLayeredExplicitFile(t *testing.T) {
	mem := fsys.NewMem("/repo")
	mem.AddFile("/repo/samoyed.toml", []byte("[hooks]\npre-push = \"discovered\"\n"), 0o644)
	mem.AddFile("/repo/ci/hooks.yml", []byte("hooks:\n  pre-push: explicit\n"), 0o644)

	l := newTestLoader(mem)
	layered, err := l.LoadLayered("/repo", "/repo/ci/hooks.yml")
	require.NoError(t, err)
	assertCommand(t, layered.Final, hooks.PrePush, "explicit")
	assert.Equal(t, "/repo/ci/hooks.yml", layered.FilePaths[SourceFlag])

	_, err = l.LoadLayered("/repo", "/repo/missing.toml")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigNotFound, errors.GetCode(err))
}

func TestLoadLayeredNoFiles(t *testing.T) {
	cfg, err := newTestLoader(fsys.NewMem("/repo")).LoadFrom("/repo")
	require.NoError(t, err)
	assert.Empty(t, cfg.Hooks)
}

func TestLoadLayeredIgnoresBrokenGlobal(t *testing.T) {
	mem := fsys.NewMem("/repo")
	mem.AddFile("/home/u/.config/samoyed/samoyed.toml", []byte("[hooks\n"), 0o644)
	mem.AddFile("/repo/samoyed.toml", []byte("[hooks]\npre-push = \"ok\"\n"), 0o644)

	cfg, err := newTestLoader(mem).LoadFrom("/repo")
	require.NoError(t, err)
	assertCommand(t, cfg, hooks.PrePush, "ok")
}

func TestLoadLayeredRejectsBrokenProject(t *testing.T) {
	mem := fsys.NewMem("/repo")
	mem.AddFile("/repo/samoyed.toml", []byte("[hooks]\nnot-a-hook = \"x\"\n"), 0o644)

	_, err := newTestLoader(mem).LoadFrom("/repo")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigInvalid, errors.GetCode(err))
}

func TestNilConfigLookup(t *testing.T) {
	var cfg *Config
	_, ok := cfg.Lookup(hooks.PreCommit)
	assert.False(t, ok)
	assert.Nil(t, cfg.Names())
}

func assertCommand(t *testing.T, cfg *Config, name hooks.Name, want string) {
	t.Helper()
	got, ok := cfg.Lookup(name)
	require.True(t, ok, "expected %s to be configured", name)
	assert.Equal(t, want, got)
}
