// Package git talks to the git binary for repository discovery and the
// core.hooksPath setting.
package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/samoyed/command"
	"github.com/grovetools/samoyed/logging"
	"github.com/grovetools/samoyed/util/fsys"
)

// Configurator runs git through a command.Runner.
type Configurator struct {
	runner  command.Runner
	builder *command.SafeBuilder
	fs      fsys.FS
	logger  *logrus.Entry
}

// NewConfigurator creates a Configurator. fs is used to check the
// repository layout that git reports.
func NewConfigurator(runner command.Runner, filesystem fsys.FS) *Configurator {
	return &Configurator{
		runner:  runner,
		builder: command.NewSafeBuilder(),
		fs:      filesystem,
		logger:  logging.NewLogger("git"),
	}
}

// run executes git with args in dir and returns trimmed stdout.
func (c *Configurator) run(ctx context.Context, dir string, args ...string) (string, command.Result, error) {
	spec, err := c.builder.Build("git", args...)
	if err != nil {
		return "", command.Result{}, err
	}
	spec.Dir = dir

	c.logger.WithField("args", strings.Join(args, " ")).Debug("Running git")
	res, err := c.runner.Run(ctx, spec)
	if err != nil {
		return "", res, err
	}
	return strings.TrimSpace(string(res.Stdout)), res, nil
}

func stderrError(res command.Result) error {
	msg := strings.TrimSpace(string(res.Stderr))
	if msg == "" {
		msg = fmt.Sprintf("git exited with status %d", res.ExitCode)
	}
	return fmt.Errorf("%s", msg)
}
