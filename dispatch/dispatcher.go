package dispatch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/samoyed/command"
	"github.com/grovetools/samoyed/env"
	"github.com/grovetools/samoyed/errors"
	"github.com/grovetools/samoyed/git"
	"github.com/grovetools/samoyed/hooks"
	"github.com/grovetools/samoyed/logging"
	"github.com/grovetools/samoyed/pkg/paths"
	"github.com/grovetools/samoyed/pkg/profiling"
	"github.com/grovetools/samoyed/scaffold"
	"github.com/grovetools/samoyed/util/fsys"
)

const (
	// DefaultTarget is used when the install target cannot be recovered
	// from the wrapper or from core.hooksPath.
	DefaultTarget = ".samoyed"

	// HooksDirEnv is exported by the wrapper script with its own directory.
	HooksDirEnv = "SAMOYED_HOOKS_DIR"
)

// Git is the subset of git.Configurator the dispatcher needs.
type Git interface {
	git.RootDiscoverer
	git.HooksPathReader
}

// TableLoader returns the command table for a repository root.
type TableLoader func(root string) (LookupFunc, error)

// Dispatcher runs the action resolved for a fired hook.
type Dispatcher struct {
	mode     env.Mode
	lookup   env.LookupFunc
	git      Git
	fs       fsys.FS
	runner   command.Runner
	resolver *Resolver
	loadCfg  TableLoader
	cwd      string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	logger *logrus.Entry
}

// Options configures a Dispatcher.
type Options struct {
	Mode   env.Mode
	Lookup env.LookupFunc
	Git    Git
	FS     fsys.FS
	Runner command.Runner
	Config TableLoader
	// Cwd is where the hook fired; git reports the root from here.
	Cwd string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a Dispatcher. Nil streams default to the process's own.
func New(opts Options) *Dispatcher {
	d := &Dispatcher{
		mode:     opts.Mode,
		lookup:   opts.Lookup,
		git:      opts.Git,
		fs:       opts.FS,
		runner:   opts.Runner,
		resolver: NewResolver(opts.FS),
		loadCfg:  opts.Config,
		cwd:      opts.Cwd,
		stdin:    opts.Stdin,
		stdout:   opts.Stdout,
		stderr:   opts.Stderr,
		logger:   logging.NewLogger("dispatch"),
	}
	if d.lookup == nil {
		d.lookup = os.LookupEnv
	}
	if d.stdin == nil {
		d.stdin = os.Stdin
	}
	if d.stdout == nil {
		d.stdout = os.Stdout
	}
	if d.stderr == nil {
		d.stderr = os.Stderr
	}
	return d
}

// Dispatch runs hook with args and returns the exit code to report to git.
// Disabled mode returns 0 before anything else happens. The error is
// non-nil only when samoyed itself failed; a hook that exits non-zero is
// reported through the code alone.
func (d *Dispatcher) Dispatch(ctx context.Context, hook string, args []string) (int, error) {
	if d.mode == env.Disabled {
		return 0, nil
	}

	name, err := hooks.Parse(hook)
	if err != nil {
		return 1, err
	}
	log := d.logger.WithField("hook", hook)

	span := profiling.Start("dispatch.discover-root")
	root, err := d.git.DiscoverRoot(ctx, d.cwd)
	span.Stop()
	if err != nil {
		return 1, err
	}

	var lookup LookupFunc
	if d.loadCfg != nil {
		span = profiling.Start("dispatch.load-config")
		lookup, err = d.loadCfg(root)
		span.Stop()
		if err != nil {
			return 1, err
		}
	}

	span = profiling.Start("dispatch.resolve")
	target := d.installTarget(ctx, root)
	action := d.resolver.Resolve(name, lookup, target)
	span.Stop()
	log.WithFields(logrus.Fields{
		"action": action.Kind.String(),
		"target": target,
	}).Debug("Resolved hook")

	var spec command.Spec
	switch action.Kind {
	case NoOp:
		return 0, nil
	case RunCommand:
		spec = d.shellSpec(append([]string{"-c", action.Command, hook}, args...))
	case RunScript:
		spec = d.shellSpec(append([]string{action.Script}, args...))
	}
	spec.Dir = root

	// The hook shares git's process group and receives terminal signals
	// itself; samoyed waits for whatever status it exits with.
	span = profiling.Start("dispatch.run")
	res, err := d.runner.Run(context.WithoutCancel(ctx), spec)
	span.Stop()
	if err != nil {
		if errors.Is(err, errors.ErrCodeCommandNotFound) {
			d.printPathHint(hook)
		}
		return errors.ExitCode(err), err
	}

	if res.ExitCode == command.ExitCommandNotFound {
		d.printPathHint(hook)
	}
	log.WithField("exit_code", res.ExitCode).Debug("Hook finished")
	return res.ExitCode, nil
}

func (d *Dispatcher) shellSpec(args []string) command.Spec {
	if d.mode == env.Debug {
		args = append([]string{"-x"}, args...)
	}
	return command.Spec{
		Name:   "sh",
		Args:   args,
		Stdin:  d.stdin,
		Stdout: d.stdout,
		Stderr: d.stderr,
	}
}

// installTarget recovers the directory passed to `samoyed init`: first
// from the wrapper's exported directory when it exists, then from
// core.hooksPath, then the default.
func (d *Dispatcher) installTarget(ctx context.Context, root string) string {
	if dir, ok := d.lookup(HooksDirEnv); ok && dir != "" {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(d.cwd, dir)
		}
		dir = filepath.Clean(dir)
		if d.fs.IsDir(dir) {
			return TargetFromHooksDir(dir)
		}
		d.logger.WithField(HooksDirEnv, dir).Debug("Ignoring hooks dir that does not exist")
	}

	value, ok, err := d.git.GetHooksPath(ctx, root)
	if err != nil {
		d.logger.WithError(err).Debug("Could not read core.hooksPath")
	}
	if ok && value != "" {
		return TargetFromHooksDir(git.ResolveHooksPath(root, value))
	}
	return filepath.Join(root, DefaultTarget)
}

// TargetFromHooksDir maps a hooks directory (target/_) back to its
// install target.
func TargetFromHooksDir(dir string) string {
	if filepath.Base(dir) == scaffold.HooksDirName {
		return filepath.Dir(dir)
	}
	return dir
}

func (d *Dispatcher) printPathHint(hook string) {
	path, _ := d.lookup("PATH")
	fmt.Fprintf(d.stderr, "samoyed: %s hook: command not found (exit 127)\n", hook)
	fmt.Fprintf(d.stderr, "samoyed: PATH=%s\n", path)
	if initScript := paths.InitScript(); initScript != "" {
		fmt.Fprintf(d.stderr, "samoyed: extend PATH in %s\n", initScript)
	}
}
