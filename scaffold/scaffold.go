// Package scaffold writes the hook directory layout used by samoyed.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"text/template"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/samoyed/errors"
	"github.com/grovetools/samoyed/hooks"
	"github.com/grovetools/samoyed/logging"
	"github.com/grovetools/samoyed/util/fsys"
)

const (
	// HooksDirName is the stub directory inside the install target.
	HooksDirName = "_"
	// WrapperName is the shared wrapper script every stub execs.
	WrapperName = "samoyed"

	gitignoreContent = "*\n"

	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644
	execPerm fs.FileMode = 0o755
)

//go:embed templates/samoyed templates/stub.tmpl templates/pre-commit
var templates embed.FS

var stubTemplate = template.Must(template.ParseFS(templates, "templates/stub.tmpl"))

// HooksDir returns the stub directory for an install target.
func HooksDir(target string) string {
	return filepath.Join(target, HooksDirName)
}

// Wrapper returns the embedded wrapper script.
func Wrapper() []byte {
	data, err := templates.ReadFile("templates/samoyed")
	if err != nil {
		panic(fmt.Sprintf("embedded wrapper missing: %v", err))
	}
	return data
}

// SampleHook returns the embedded sample pre-commit script.
func SampleHook() []byte {
	data, err := templates.ReadFile("templates/pre-commit")
	if err != nil {
		panic(fmt.Sprintf("embedded sample hook missing: %v", err))
	}
	return data
}

// RenderStub returns the stub body for name. Output depends only on name.
func RenderStub(name hooks.Name) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		HookName string
		Wrapper  string
	}{
		HookName: string(name),
		Wrapper:  WrapperName,
	}
	if err := stubTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s stub: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Report describes what Write produced.
type Report struct {
	Target        string
	HooksDir      string
	Stubs         []string
	SampleCreated bool
}

// Writer lays out an install target.
type Writer struct {
	fs     fsys.FS
	logger *logrus.Entry
}

// NewWriter returns a Writer operating on fsys.
func NewWriter(filesystem fsys.FS) *Writer {
	return &Writer{
		fs:     filesystem,
		logger: logging.NewLogger("scaffold"),
	}
}

// Write creates target/_ with its .gitignore, the wrapper and one stub per
// hook, then the sample hook if absent. Directories are created before
// files and the _ subtree before the sample, so an interrupted run leaves
// a prefix of the layout that a rerun completes.
func (w *Writer) Write(target string) (*Report, error) {
	hooksDir := HooksDir(target)
	for _, dir := range []string{target, hooksDir} {
		if err := w.fs.MkdirAll(dir, dirPerm); err != nil {
			return nil, errors.FilesystemError("create directory", dir, err)
		}
	}

	if err := w.writeFile(filepath.Join(hooksDir, ".gitignore"), []byte(gitignoreContent), filePerm); err != nil {
		return nil, err
	}

	if err := w.writeExecutable(filepath.Join(hooksDir, WrapperName), Wrapper()); err != nil {
		return nil, err
	}

	report := &Report{Target: target, HooksDir: hooksDir}
	for _, name := range hooks.All() {
		body, err := RenderStub(name)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to render hook stub")
		}
		path := filepath.Join(hooksDir, string(name))
		if err := w.writeExecutable(path, body); err != nil {
			return nil, err
		}
		report.Stubs = append(report.Stubs, path)
	}

	samplePath := filepath.Join(target, string(hooks.Sample))
	if w.fs.Exists(samplePath) {
		w.logger.WithField("path", samplePath).Debug("Sample hook exists, leaving it untouched")
		return report, nil
	}
	if err := w.writeExecutable(samplePath, SampleHook()); err != nil {
		return nil, err
	}
	report.SampleCreated = true

	w.logger.WithFields(logrus.Fields{
		"target": target,
		"stubs":  len(report.Stubs),
	}).Debug("Scaffold written")

	return report, nil
}

func (w *Writer) writeFile(path string, data []byte, perm fs.FileMode) error {
	if err := w.fs.WriteFile(path, data, perm); err != nil {
		return errors.FilesystemError("write", path, err)
	}
	return nil
}

func (w *Writer) writeExecutable(path string, data []byte) error {
	if err := w.writeFile(path, data, execPerm); err != nil {
		return err
	}
	if err := w.fs.SetExecutable(path); err != nil {
		return errors.FilesystemError("chmod", path, err)
	}
	return nil
}
