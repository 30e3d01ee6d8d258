package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFileName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", ".samoyed/_", false},
		{"absolute", "/repo/.samoyed/_", false},
		{"dots inside a name", "hooks..d/_", false},
		{"with spaces", "my hooks/_", false},
		{"empty", "", true},
		{"parent component", "../_", true},
		{"backslash parent", `a\..\_`, true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFileName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateConfigKey(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"core.hooksPath", false},
		{"remote.origin.url", false},
		{"core", true},
		{"core.", true},
		{".hooksPath", true},
		{"core hooks.path", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := validateConfigKey(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "validateConfigKey(%q) = %v", tt.input, err)
		})
	}
}

func TestSafeBuilder(t *testing.T) {
	sb := NewSafeBuilder()

	spec, err := sb.Build("git", "config", "--get", "core.hooksPath")
	require.NoError(t, err)
	assert.Equal(t, "git", spec.Name)
	assert.Equal(t, []string{"config", "--get", "core.hooksPath"}, spec.Args)
	assert.Equal(t, DefaultTimeout, spec.Timeout)
	assert.Equal(t, "git config --get core.hooksPath", spec.String())

	_, err = sb.Build("")
	assert.Error(t, err)

	assert.NoError(t, sb.Validate("configKey", "core.hooksPath"))
	assert.Error(t, sb.Validate("unknown", "x"))
}
