//go:build windows

package command

import (
	"os"
	"os/exec"
)

func exitStatus(exitErr *exec.ExitError) int {
	if code := exitErr.ExitCode(); code >= 0 {
		return code
	}
	return 1
}

// interrupt kills p; Windows has no deliverable SIGINT.
func interrupt(p *os.Process) error {
	return p.Kill()
}
