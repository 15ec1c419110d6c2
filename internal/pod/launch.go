// SPDX-License-Identifier: MPL-2.0

package pod

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"syscall"

	"podctl/internal/process"
	"podctl/internal/waiter"
)

// launch starts every process in ordered, strictly one at a time, gating
// each on readiness before starting the next. A spawned process is
// appended to activeSet even when it fails to become ready, so reap
// still tears it down. launch stops and returns the first error.
func (p *Pod) launch(ctx context.Context, ordered []*process.Process, maxKey int, activeSet *[]*started) error {
	for i, proc := range ordered {
		cmd := exec.Command("sh", "-c", proc.Command)
		cmd.Env = mergeEnv(proc.Env)
		cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

		stdout, err := cmd.StdoutPipe()
		if err != nil {
			return &SpawnError{Process: proc.String(), Err: err}
		}
		stderr, err := cmd.StderrPipe()
		if err != nil {
			return &SpawnError{Process: proc.String(), Err: err}
		}

		if err := cmd.Start(); err != nil {
			return &SpawnError{Process: proc.String(), Err: err}
		}
		p.logger.Debug("spawned", "process", proc.DisplayKey(), "pid", cmd.Process.Pid)

		exit := watchChild(cmd)
		st := &started{proc: proc, cmd: cmd, exit: exit}

		prefix := p.wheel.colorize(i, padKey(proc.DisplayKey(), maxKey))
		go p.relay(stdout, prefix)
		go p.relay(stderr, prefix)

		if !p.opts.Quiet {
			p.banner("----> %s", proc.String())
		}

		availableByDefault := len(proc.Checks) == 0
		var readyErr error
		if !availableByDefault {
			readyErr = p.awaitReady(ctx, proc, exit)
		}

		*activeSet = append(*activeSet, st)

		if readyErr != nil {
			p.logger.Debug("readiness check failed", "process", proc.DisplayKey(), "err", readyErr)
			return readyErr
		}

		if (!availableByDefault && !p.opts.Quiet) || p.opts.Verbose {
			p.banner("----> %s: available", proc.DisplayKey())
		}
	}
	return nil
}

// relay forwards r line by line to Stdout, prefixed. It is fire-and-
// forget: a read error ends this reader only, it is never fatal to the
// pod.
func (p *Pod) relay(r io.Reader, prefix string) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fmt.Fprintf(p.opts.Stdout, "[ %s ] %s\n", prefix, scanner.Text())
	}
}

// awaitReady races cancellation, the child's own early exit, and the
// Waiter against the process's readiness checks.
func (p *Pod) awaitReady(ctx context.Context, proc *process.Process, exit *childExit) error {
	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	waitCh := make(chan error, 1)
	go func() {
		waitCh <- waiter.Wait(taskCtx, proc.Key(), proc.Checks, proc.Wait, p.opts.Verbose, p.opts.Stderr)
	}()

	select {
	case <-ctx.Done():
		return ErrCanceled
	case <-exit.done:
		return &NeverInitializedError{Key: proc.Key()}
	case err := <-waitCh:
		return err
	}
}
