package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/grovetools/samoyed/errors"
	"github.com/grovetools/samoyed/hooks"
	"github.com/grovetools/samoyed/schema"
)

var (
	validatorOnce sync.Once
	validator     *schema.Validator
	validatorErr  error
)

// validateRaw checks a decoded-but-untyped document against the embedded
// schema.
func validateRaw(path string, raw map[string]interface{}) error {
	validatorOnce.Do(func() {
		validator, validatorErr = schema.NewValidator()
	})
	if validatorErr != nil {
		return errors.Wrap(validatorErr, errors.ErrCodeInternal, "failed to load configuration schema")
	}
	if err := validator.Validate(raw); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration in %s", path)).
			WithDetail("path", path)
	}
	return nil
}

// Validate checks that every key is a known hook with a non-blank command.
func (c *Config) Validate() error {
	for _, name := range c.Names() {
		if !hooks.IsKnown(name) {
			return errors.ConfigInvalid(fmt.Sprintf("unknown hook '%s'", name)).
				WithDetail("hook", name)
		}
		if strings.TrimSpace(c.Hooks[name].Command) == "" {
			return errors.ConfigInvalid(fmt.Sprintf("hook '%s' has an empty command", name)).
				WithDetail("hook", name)
		}
	}
	return nil
}
