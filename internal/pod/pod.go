// SPDX-License-Identifier: MPL-2.0

package pod

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"podctl/internal/dag"
	"podctl/internal/process"
	"podctl/pkg/types"
)

// maxKeyWidth caps the log-prefix padding width regardless of how long
// the longest key in a batch is.
const maxKeyWidth = 32

// Options configures a Pod's output and verbosity.
type Options struct {
	// Debug enables debug-level logging of internal pod events on Stderr.
	Debug bool
	// Verbose makes the Waiter announce every probe start and forces the
	// "available" banner to print even for default-available processes.
	Verbose bool
	// Quiet suppresses non-essential banners. It never suppresses child
	// stdout/stderr prefixing.
	Quiet bool
	// Stdout receives relayed child output. Defaults to os.Stdout.
	Stdout io.Writer
	// Stderr receives banners and verbose Waiter logging. Defaults to
	// os.Stderr.
	Stderr io.Writer
}

// Pod is an immutable configuration — options, processes, and a color
// wheel — paired with transient runtime state built up during Run.
type Pod struct {
	opts   Options
	procs  []*process.Process
	wheel  *wheel
	logger *log.Logger
}

// started pairs a process with its spawned child and exit watcher. It is
// appended to the active set once the child's readiness wait ends,
// whether or not it became available, so reap always sees it.
type started struct {
	proc *process.Process
	cmd  *exec.Cmd
	exit *childExit
}

// New builds a Pod over procs, which need not yet be dependency-ordered;
// Run resolves the order itself.
func New(opts Options, procs []*process.Process) *Pod {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	level := log.WarnLevel
	if opts.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(opts.Stderr, log.Options{
		Prefix: "pod",
		Level:  level,
	})

	return &Pod{opts: opts, procs: procs, wheel: newWheel(), logger: logger}
}

// Run resolves dependency order, launches every process in sequence
// gating each on readiness, races the running fleet against ctx
// cancellation, and always reaps every spawned child before returning.
func (p *Pod) Run(ctx context.Context) (types.ExitCode, error) {
	if len(p.procs) == 0 {
		return 0, nil
	}

	ordered, err := dag.Resolve(p.procs)
	if err != nil {
		p.logger.Debug("dependency resolution failed", "err", err)
		return 1, err
	}
	p.logger.Debug("resolved start order", "count", len(ordered))

	if !p.opts.Quiet {
		keys := make([]string, len(ordered))
		for i, proc := range ordered {
			keys[i] = proc.DisplayKey()
		}
		p.banner("====> %s", strings.Join(keys, ", "))
	}

	maxKey := 0
	for _, proc := range ordered {
		if l := len(proc.DisplayKey()); l > maxKey {
			maxKey = l
		}
	}
	if maxKey > maxKeyWidth {
		maxKey = maxKeyWidth
	}

	var activeSet []*started
	runErr := p.launch(ctx, ordered, maxKey, &activeSet)

	var code types.ExitCode
	if runErr == nil {
		code, runErr = p.supervise(ctx, activeSet)
	}

	// Reap always runs; an unrecognized I/O error here takes priority
	// over whatever the launch/supervise phases returned, since it means
	// a child may still be alive.
	if reapErr := p.reap(activeSet); reapErr != nil {
		return 1, reapErr
	}

	if runErr != nil {
		return 1, runErr
	}

	if !p.opts.Quiet {
		p.banner("====> finished")
	}
	return code, nil
}

func (p *Pod) banner(format string, args ...any) {
	style := lipgloss.NewStyle().Bold(true)
	fmt.Fprintln(p.opts.Stderr, style.Render(fmt.Sprintf(format, args...)))
}

// mergeEnv returns the parent environment overlaid with extra, with
// extra winning on collision.
func mergeEnv(extra map[string]string) []string {
	base := os.Environ()
	if len(extra) == 0 {
		return base
	}

	merged := make(map[string]string, len(base)+len(extra))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			merged[k] = v
		}
	}
	for k, v := range extra {
		merged[k] = v
	}

	out := make([]string, 0, len(merged))
	for k, v := range merged {
		out = append(out, k+"="+v)
	}
	return out
}

// padKey right-pads or truncates key to exactly n characters.
func padKey(key string, n int) string {
	if len(key) > n {
		return key[:n]
	}
	return key + strings.Repeat(" ", n-len(key))
}
