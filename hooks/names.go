// Package hooks enumerates the client-side Git hooks samoyed manages.
package hooks

import (
	"github.com/grovetools/samoyed/errors"
)

// Name identifies a client-side Git hook.
type Name string

const (
	ApplypatchMsg    Name = "applypatch-msg"
	CommitMsg        Name = "commit-msg"
	PostApplypatch   Name = "post-applypatch"
	PostCheckout     Name = "post-checkout"
	PostCommit       Name = "post-commit"
	PostMerge        Name = "post-merge"
	PostRewrite      Name = "post-rewrite"
	PreApplypatch    Name = "pre-applypatch"
	PreAutoGC        Name = "pre-auto-gc"
	PreCommit        Name = "pre-commit"
	PreMergeCommit   Name = "pre-merge-commit"
	PrePush          Name = "pre-push"
	PreRebase        Name = "pre-rebase"
	PrepareCommitMsg Name = "prepare-commit-msg"
)

// Sample is the hook that `samoyed init` seeds with an example script.
const Sample = PreCommit

var all = []Name{
	ApplypatchMsg,
	CommitMsg,
	PostApplypatch,
	PostCheckout,
	PostCommit,
	PostMerge,
	PostRewrite,
	PreApplypatch,
	PreAutoGC,
	PreCommit,
	PreMergeCommit,
	PrePush,
	PreRebase,
	PrepareCommitMsg,
}

// All returns every managed hook in a stable order.
func All() []Name {
	out := make([]Name, len(all))
	copy(out, all)
	return out
}

// Strings returns All as plain strings.
func Strings() []string {
	out := make([]string, len(all))
	for i, n := range all {
		out[i] = string(n)
	}
	return out
}

// IsKnown reports whether s names a managed hook. Matching is exact.
func IsKnown(s string) bool {
	for _, n := range all {
		if string(n) == s {
			return true
		}
	}
	return false
}

// Parse converts s into a Name, rejecting anything samoyed does not manage.
func Parse(s string) (Name, error) {
	if !IsKnown(s) {
		return "", errors.InvalidHookName(s)
	}
	return Name(s), nil
}

func (n Name) String() string {
	return string(n)
}
