package cli

import (
	"fmt"
	"io"

	"github.com/grovetools/samoyed/errors"
	"github.com/grovetools/samoyed/logging"
)

// ErrorHandler prints one readable line per failure.
type ErrorHandler struct {
	Verbose bool
	out     io.Writer
	pretty  *logging.PrettyLogger
}

// NewErrorHandler creates an ErrorHandler writing to w.
func NewErrorHandler(w io.Writer, verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		out:     w,
		pretty:  logging.NewPrettyLogger().WithWriter(w),
	}
}

// Handle reports err and returns it unchanged. Hook exit statuses are not
// reported: the hook already spoke for itself.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}

	se, _ := errors.AsSamoyedError(err)
	detail := func(key string) interface{} {
		if se == nil {
			return nil
		}
		return se.Details[key]
	}

	switch errors.GetCode(err) {
	case errors.ErrCodeHookFailed:
		return err

	case errors.ErrCodeNotAGitRepository:
		h.pretty.ErrorPretty("Not inside a git working tree. Run samoyed from a repository.", nil)

	case errors.ErrCodeTraversalRejected:
		h.pretty.ErrorPretty(fmt.Sprintf("Install target %q contains '..'; name a directory inside the repository.", detail("path")), nil)

	case errors.ErrCodeOutsideRepository:
		h.pretty.ErrorPretty(fmt.Sprintf("Install target %q is outside the repository %s.", detail("path"), detail("root")), nil)

	case errors.ErrCodeParentMissing:
		h.pretty.ErrorPretty(fmt.Sprintf("Cannot resolve install target %q", detail("path")), err)

	case errors.ErrCodeGitConfig:
		h.pretty.ErrorPretty("Failed to update git configuration", err)

	case errors.ErrCodeConfigNotFound:
		h.pretty.ErrorPretty(fmt.Sprintf("Configuration file %v not found.", detail("path")), nil)

	case errors.ErrCodeConfigInvalid:
		h.pretty.ErrorPretty("Invalid hook configuration", err)

	case errors.ErrCodeCommandNotFound:
		h.pretty.ErrorPretty(fmt.Sprintf("Command %v not found on PATH.", detail("command")), nil)

	default:
		h.pretty.ErrorPretty("samoyed", err)
	}

	if h.Verbose && se != nil {
		fmt.Fprintf(h.out, "\nError details:\n%s\n", se.ToJSON())
	}
	return err
}
