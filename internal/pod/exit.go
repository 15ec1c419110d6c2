// SPDX-License-Identifier: MPL-2.0

package pod

import (
	"os/exec"
	"syscall"
)

// childExit watches a single *exec.Cmd, calling Wait exactly once in the
// background and publishing the result via done. Every phase that needs
// to know whether the child has exited (the launch phase's early-exit
// race, the supervision phase's first-exit race, and the reap phase's
// await) reads from the same childExit rather than calling Wait again,
// which Go's os/exec forbids.
type childExit struct {
	done chan struct{}
	code int
	err  error
}

func watchChild(cmd *exec.Cmd) *childExit {
	c := &childExit{done: make(chan struct{})}
	go func() {
		err := cmd.Wait()
		c.code = exitCodeOf(err)
		c.err = err
		close(c.done)
	}()
	return c
}

// exitCodeOf derives the exit code the supervision phase reports: the
// process's status code, or 0 if it terminated via signal or exited
// cleanly.
func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		return 0
	}
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok {
		return exitErr.ExitCode()
	}
	if status.Signaled() {
		return 0
	}
	return status.ExitStatus()
}
