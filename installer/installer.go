// Package installer implements `samoyed init`: it lays out the hook
// scaffold inside a repository and points core.hooksPath at it.
package installer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/samoyed/env"
	"github.com/grovetools/samoyed/git"
	"github.com/grovetools/samoyed/logging"
	"github.com/grovetools/samoyed/pkg/profiling"
	"github.com/grovetools/samoyed/scaffold"
	"github.com/grovetools/samoyed/util/fsys"
	"github.com/grovetools/samoyed/util/pathutil"
)

// DefaultTarget is the install target used when none is given.
const DefaultTarget = ".samoyed"

// BypassNotice is printed when SAMOYED=0 skips installation.
const BypassNotice = "SAMOYED=0 skip install"

// Git is the subset of git.Configurator the installer needs.
type Git interface {
	git.RootDiscoverer
	git.HooksPathWriter
	ShadowedHooks(root string) []string
}

// Request describes one install.
type Request struct {
	// Target is the install target as the user typed it. Empty means
	// DefaultTarget.
	Target string
	// Cwd is the directory the command was run from.
	Cwd string
}

// Result summarizes a completed install.
type Result struct {
	Bypassed      bool     `json:"bypassed"`
	Root          string   `json:"root,omitempty"`
	Target        string   `json:"target,omitempty"`
	HooksDir      string   `json:"hooks_dir,omitempty"`
	HooksPath     string   `json:"hooks_path,omitempty"`
	SampleCreated bool     `json:"sample_created"`
	Shadowed      []string `json:"shadowed,omitempty"`
}

// Installer runs the install state machine. Each stage aborts the ones
// after it on failure.
type Installer struct {
	mode     env.Mode
	git      Git
	fs       fsys.FS
	scaffold *scaffold.Writer
	notices  io.Writer
	logger   *logrus.Entry
}

// Options configures an Installer.
type Options struct {
	Mode env.Mode
	Git  Git
	FS   fsys.FS
	// Notices receives the bypass notice. Defaults to stderr.
	Notices io.Writer
}

// New creates an Installer.
func New(opts Options) *Installer {
	notices := opts.Notices
	if notices == nil {
		notices = os.Stderr
	}
	return &Installer{
		mode:     opts.Mode,
		git:      opts.Git,
		fs:       opts.FS,
		scaffold: scaffold.NewWriter(opts.FS),
		notices:  notices,
		logger:   logging.NewLogger("installer"),
	}
}

// Install performs the install described by req. In Disabled mode it
// prints a notice and returns a bypassed result without touching git or
// the filesystem.
func (i *Installer) Install(ctx context.Context, req Request) (*Result, error) {
	if i.mode == env.Disabled {
		fmt.Fprintln(i.notices, BypassNotice)
		return &Result{Bypassed: true}, nil
	}

	target := req.Target
	if target == "" {
		target = DefaultTarget
	}
	log := i.logger.WithField("target", target)

	span := profiling.Start("install.discover-root")
	root, err := i.git.DiscoverRoot(ctx, req.Cwd)
	span.Stop()
	if err != nil {
		return nil, err
	}

	validated, err := pathutil.Validate(i.fs, root, req.Cwd, target)
	if err != nil {
		return nil, err
	}
	log.WithField("path", validated.Path).Debug("Install target validated")

	span = profiling.Start("install.scaffold")
	report, err := i.scaffold.Write(validated.Path)
	span.Stop()
	if err != nil {
		return nil, err
	}

	span = profiling.Start("install.set-hooks-path")
	err = i.git.SetHooksPath(ctx, validated.Root, report.HooksDir)
	span.Stop()
	if err != nil {
		return nil, err
	}

	res := &Result{
		Root:          validated.Root,
		Target:        validated.Path,
		HooksDir:      report.HooksDir,
		HooksPath:     git.HooksPathValue(validated.Root, report.HooksDir),
		SampleCreated: report.SampleCreated,
		Shadowed:      i.git.ShadowedHooks(validated.Root),
	}
	log.WithFields(logrus.Fields{
		"hooks_path":     res.HooksPath,
		"sample_created": res.SampleCreated,
	}).Debug("Hooks installed")
	return res, nil
}
