package command

import (
	"context"
	"os/exec"
)

// Executor creates exec.Cmd values. Tests swap it to control how processes
// are constructed without touching the code that runs them. Commands must
// come from exec.CommandContext so the runner can set Cancel.
type Executor interface {
	CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd
}

// RealExecutor builds commands with os/exec.
type RealExecutor struct{}

func (e *RealExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...)
}
