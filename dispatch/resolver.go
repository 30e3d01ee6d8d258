// Package dispatch decides what a fired hook runs and runs it.
package dispatch

import (
	"path/filepath"

	"github.com/grovetools/samoyed/hooks"
	"github.com/grovetools/samoyed/util/fsys"
)

// ScriptsDirName holds user-authored fallback scripts inside the install
// target.
const ScriptsDirName = "scripts"

// ActionKind enumerates ResolvedAction variants.
type ActionKind int

const (
	NoOp ActionKind = iota
	RunCommand
	RunScript
)

func (k ActionKind) String() string {
	switch k {
	case RunCommand:
		return "command"
	case RunScript:
		return "script"
	default:
		return "none"
	}
}

// Action is the outcome of resolving a hook.
type Action struct {
	Kind ActionKind
	// Command is set for RunCommand.
	Command string
	// Script is set for RunScript.
	Script string
}

// LookupFunc returns the configured command for a hook, if any.
type LookupFunc func(hooks.Name) (string, bool)

// Resolver applies the fixed lookup order: configured command, then an
// executable fallback script, then nothing.
type Resolver struct {
	fs fsys.FS
}

// NewResolver returns a Resolver that checks scripts through fs.
func NewResolver(filesystem fsys.FS) *Resolver {
	return &Resolver{fs: filesystem}
}

// ScriptCandidates lists fallback script locations for hook, in the order
// they are tried.
func ScriptCandidates(target string, hook hooks.Name) []string {
	return []string{
		filepath.Join(target, ScriptsDirName, string(hook)),
		filepath.Join(target, string(hook)),
	}
}

// Resolve returns the action for hook. A script that exists but is not
// executable is treated as absent.
func (r *Resolver) Resolve(hook hooks.Name, lookup LookupFunc, target string) Action {
	if lookup != nil {
		if cmd, ok := lookup(hook); ok {
			return Action{Kind: RunCommand, Command: cmd}
		}
	}

	for _, candidate := range ScriptCandidates(target, hook) {
		if r.fs.IsExecutable(candidate) {
			return Action{Kind: RunScript, Script: candidate}
		}
	}

	return Action{Kind: NoOp}
}
