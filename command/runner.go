package command

import (
	"bytes"
	"context"
	goerrors "errors"
	"io"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"github.com/grovetools/samoyed/errors"
)

// ExitCommandNotFound is the shell convention for "command not found".
const ExitCommandNotFound = 127

// Spec describes one process invocation.
type Spec struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env replaces the inherited environment when non-nil.
	Env []string

	Stdin io.Reader
	// Stdout and Stderr receive output directly when set. When nil the
	// output is captured into Result.
	Stdout io.Writer
	Stderr io.Writer

	// Timeout bounds the run when positive.
	Timeout time.Duration
}

// String renders the invocation for logs.
func (s Spec) String() string {
	return strings.TrimSpace(s.Name + " " + strings.Join(s.Args, " "))
}

// Result is the outcome of a process that was started.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Runner runs processes. A process that starts and exits non-zero is not
// an error; the status is reported in Result.ExitCode. Cancelling ctx
// interrupts the process and still reports the status it exits with; only
// an expired Spec.Timeout is an error.
type Runner interface {
	Run(ctx context.Context, spec Spec) (Result, error)
}

// ExecRunner runs processes on the host.
type ExecRunner struct {
	executor Executor
}

// NewRunner returns an ExecRunner backed by RealExecutor.
func NewRunner() *ExecRunner {
	return NewRunnerWithExecutor(&RealExecutor{})
}

// NewRunnerWithExecutor returns an ExecRunner using exec to build commands.
func NewRunnerWithExecutor(exec Executor) *ExecRunner {
	return &ExecRunner{executor: exec}
}

func (r *ExecRunner) Run(ctx context.Context, spec Spec) (Result, error) {
	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	cmd := r.executor.CommandContext(ctx, spec.Name, spec.Args...) //nolint:gosec // callers validate arguments
	cmd.Dir = spec.Dir
	if spec.Env != nil {
		cmd.Env = spec.Env
	}
	cmd.Stdin = spec.Stdin
	cmd.Cancel = func() error { return interrupt(cmd.Process) }
	if spec.Timeout > 0 {
		cmd.WaitDelay = time.Second
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	if spec.Stdout != nil {
		cmd.Stdout = spec.Stdout
	}
	cmd.Stderr = &stderr
	if spec.Stderr != nil {
		cmd.Stderr = spec.Stderr
	}

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if goerrors.As(err, &exitErr) {
		res.ExitCode = exitStatus(exitErr)
		if spec.Timeout > 0 && goerrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return res, errors.CommandFailed(spec.String(), ctx.Err())
		}
		return res, nil
	}

	if goerrors.Is(err, exec.ErrNotFound) || goerrors.Is(err, exec.ErrDot) || goerrors.Is(err, fs.ErrNotExist) {
		res.ExitCode = ExitCommandNotFound
		return res, errors.CommandNotFound(spec.Name, err)
	}

	res.ExitCode = 1
	return res, errors.CommandFailed(spec.String(), err)
}
