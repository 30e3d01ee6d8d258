package errors

import (
	"fmt"
	"os/exec"
)

// NotAGitRepository reports that dir is not inside a usable git work tree.
func NotAGitRepository(dir string, cause error) *SamoyedError {
	return Wrap(cause, ErrCodeNotAGitRepository, fmt.Sprintf("not a git repository: %s", dir)).
		WithDetail("dir", dir)
}

// TraversalRejected reports a candidate path containing a ".." component.
func TraversalRejected(candidate string) *SamoyedError {
	return New(ErrCodeTraversalRejected,
		fmt.Sprintf("path '%s' contains '..' components", candidate)).
		WithDetail("path", candidate)
}

// OutsideRepository reports a path that resolves outside the repository root.
func OutsideRepository(path, root string) *SamoyedError {
	return New(ErrCodeOutsideRepository,
		fmt.Sprintf("path '%s' resolves outside the repository '%s'", path, root)).
		WithDetail("path", path).
		WithDetail("root", root)
}

// ParentMissing reports a path with no existing ancestor to resolve from.
func ParentMissing(path string, cause error) *SamoyedError {
	return Wrap(cause, ErrCodeParentMissing,
		fmt.Sprintf("cannot resolve '%s': no existing parent directory", path)).
		WithDetail("path", path)
}

// FilesystemError wraps a failed filesystem operation.
func FilesystemError(op, path string, err error) *SamoyedError {
	return Wrap(err, ErrCodeFilesystem, fmt.Sprintf("failed to %s %s", op, path)).
		WithDetail("op", op).
		WithDetail("path", path)
}

// GitConfigError wraps a failed read or write of a git configuration key.
func GitConfigError(key string, err error) *SamoyedError {
	return Wrap(err, ErrCodeGitConfig, fmt.Sprintf("git config %s failed", key)).
		WithDetail("key", key)
}

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *SamoyedError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *SamoyedError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// InvalidHookName reports a hook name samoyed does not manage.
func InvalidHookName(name string) *SamoyedError {
	return New(ErrCodeInvalidInput, fmt.Sprintf("unknown git hook '%s'", name)).
		WithDetail("hook", name)
}

// CommandNotFound reports an executable that could not be started.
func CommandNotFound(name string, err error) *SamoyedError {
	return Wrap(err, ErrCodeCommandNotFound, fmt.Sprintf("command not found: %s", name)).
		WithDetail("command", name).
		WithDetail(detailExitCode, 127)
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *SamoyedError {
	samErr := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	if exitErr, ok := err.(*exec.ExitError); ok {
		samErr = samErr.WithDetail(detailExitCode, exitErr.ExitCode())
	}

	return samErr
}

// ExitStatus carries a hook's non-zero exit status back to main so the
// process can exit with the same value.
func ExitStatus(hook string, code int) *SamoyedError {
	return New(ErrCodeHookFailed, fmt.Sprintf("%s hook exited with status %d", hook, code)).
		WithDetail("hook", hook).
		WithDetail(detailExitCode, code)
}
