// SPDX-License-Identifier: MPL-2.0

package pod

import (
	"os/exec"
	"syscall"
)

// reap sends a group-terminate to every started child, in start order,
// and awaits each one's death. A failed terminate (the child is likely
// already dead) is logged and skipped — not fatal. An await failure that
// isn't a normal exit status is the one fatal condition; it aborts
// reaping the remaining children, since it may mean one is still alive.
func (p *Pod) reap(activeSet []*started) error {
	for _, st := range activeSet {
		pid := st.cmd.Process.Pid

		if err := syscall.Kill(-pid, syscall.SIGTERM); err != nil {
			p.banner("~~~~> %s [failed] %v", st.proc.String(), err)
			p.logger.Debug("terminate failed", "process", st.proc.DisplayKey(), "err", err)
			continue
		}

		<-st.exit.done

		if st.exit.err != nil {
			if _, ok := st.exit.err.(*exec.ExitError); !ok {
				return &IOError{Process: st.proc.String(), Err: st.exit.err}
			}
		}
		p.logger.Debug("reaped", "process", st.proc.DisplayKey(), "pid", pid)

		if !p.opts.Quiet {
			p.banner("~~~~> %s [%d killed]", st.proc.String(), pid)
		}
	}
	return nil
}
