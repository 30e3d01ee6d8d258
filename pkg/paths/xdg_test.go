package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathsFollowXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	assert.Equal(t, filepath.Join("/xdg", "samoyed"), ConfigDir())
	assert.Equal(t, filepath.Join("/xdg", "samoyed", "init.sh"), InitScript())
	assert.Equal(t, filepath.Join("/xdg", "samoyed", "samoyed.toml"), GlobalConfigFile())
	assert.Equal(t, InitScript(), All()["init_script"])
}

func TestPathsFallBackToHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/tester")

	assert.Equal(t, filepath.Join("/home/tester", ".config", "samoyed", "init.sh"), InitScript())
}
