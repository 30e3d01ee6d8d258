package command

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DefaultTimeout bounds helper invocations such as git config reads.
const DefaultTimeout = 30 * time.Second

var configKeyPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*(\.[^\s]+)?\.[a-zA-Z][a-zA-Z0-9-]*$`)

// SafeBuilder produces Specs for short-lived helper commands after
// validating their arguments. Hook commands are not built here: they run
// without a timeout for as long as the user's script needs.
type SafeBuilder struct {
	defaultTimeout time.Duration
	validators     map[string]func(string) error
}

// NewSafeBuilder creates a SafeBuilder with the default validators.
func NewSafeBuilder() *SafeBuilder {
	return &SafeBuilder{
		defaultTimeout: DefaultTimeout,
		validators:     makeDefaultValidators(),
	}
}

func makeDefaultValidators() map[string]func(string) error {
	return map[string]func(string) error{
		"configKey": validateConfigKey,
		"fileName":  validateFileName,
	}
}

func validateConfigKey(key string) error {
	if !configKeyPattern.MatchString(key) {
		return fmt.Errorf("invalid git config key: %q", key)
	}
	return nil
}

// validateFileName rejects empty paths, ".." components and control
// characters that git config cannot store on a single line.
func validateFileName(path string) error {
	if path == "" {
		return fmt.Errorf("file path cannot be empty")
	}

	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return fmt.Errorf("file path cannot contain '..'")
		}
	}

	if strings.ContainsAny(path, "\x00\n\r") {
		return fmt.Errorf("file path contains invalid characters")
	}

	return nil
}

// Validate runs the named validator against value.
func (sb *SafeBuilder) Validate(argType string, value string) error {
	validator, exists := sb.validators[argType]
	if !exists {
		return fmt.Errorf("no validator for argument type: %s", argType)
	}

	return validator(value)
}

// Build returns a Spec for name and args carrying the builder's timeout.
func (sb *SafeBuilder) Build(name string, args ...string) (Spec, error) {
	if name == "" {
		return Spec{}, fmt.Errorf("command name cannot be empty")
	}

	return Spec{
		Name:    name,
		Args:    args,
		Timeout: sb.defaultTimeout,
	}, nil
}
