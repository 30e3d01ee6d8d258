//go:build !windows

package command

import (
	"os"
	"os/exec"
	"syscall"
)

// exitStatus follows the shell convention of 128+signal for processes
// killed by a signal.
func exitStatus(exitErr *exec.ExitError) int {
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return exitErr.ExitCode()
}

// interrupt asks p to stop the way a terminal ^C would, leaving its traps
// a chance to run.
func interrupt(p *os.Process) error {
	return p.Signal(os.Interrupt)
}
