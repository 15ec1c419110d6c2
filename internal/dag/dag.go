// SPDX-License-Identifier: MPL-2.0

// Package dag orders a pod's processes by their declared dependencies.
//
// Resolve produces a deterministic linearization via depth-first
// visitation: for every dependency edge a→b (b listed in a.Deps), b
// appears before a in the output. A heuristic pre-sort biases the order
// so cheap, fast-to-ready processes are tried first among otherwise
// independent siblings; it never changes the edges the topological pass
// must respect, only how ties between unrelated processes are broken.
package dag

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"podctl/internal/process"
)

// ErrCycle is the sentinel wrapped by CycleError.
var ErrCycle = errors.New("dependency cycle")

// ErrUnknownDependency is the sentinel wrapped by UnknownDependencyError.
var ErrUnknownDependency = errors.New("unknown dependency")

// CycleError indicates that the dependency graph contains a cycle,
// preventing topological ordering. Path is the DFS chain active at the
// moment of detection: it may include processes preceding the actual
// cycle, but it always contains every process on the cycle itself.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("Cycle: %s", strings.Join(e.Path, " → "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// UnknownDependencyError indicates a process named a dependency that
// matches no process key in the same pod.
type UnknownDependencyError struct {
	Name string
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("Unknown dependency: %s", e.Name)
}

func (e *UnknownDependencyError) Unwrap() error { return ErrUnknownDependency }

// Resolve returns procs in an order satisfying every declared
// dependency: for each edge a→b, b precedes a in the result. Among
// processes with no ordering constraint between them, order follows the
// primary-order heuristic (fewer checks first, then fewer deps),
// stably preserving input order for exact ties.
func Resolve(procs []*process.Process) ([]*process.Process, error) {
	ordered := primaryOrder(procs)

	byKey := make(map[string]*process.Process, len(ordered))
	for _, p := range ordered {
		byKey[p.Key()] = p
	}

	visited := make(map[string]bool, len(ordered))
	var path []string
	var result []*process.Process

	for _, p := range ordered {
		sub, err := visit(p, byKey, make(map[string]bool), visited, &path)
		if err != nil {
			return nil, err
		}
		result = append(result, sub...)
	}

	return result, nil
}

// primaryOrder returns a stably-sorted copy of procs: fewer checks
// first, then fewer deps. Processes with equal keys preserve input order.
func primaryOrder(procs []*process.Process) []*process.Process {
	ordered := make([]*process.Process, len(procs))
	copy(ordered, procs)
	sort.SliceStable(ordered, func(i, j int) bool {
		if len(ordered[i].Checks) != len(ordered[j].Checks) {
			return len(ordered[i].Checks) < len(ordered[j].Checks)
		}
		return len(ordered[i].Deps) < len(ordered[j].Deps)
	})
	return ordered
}

// visit performs the DFS emit for a single root. run tracks the dep
// labels currently active on this root's recursion stack — a fresh set
// per top-level call from Resolve, never shared across roots. visited is
// the global once-emitted set shared across every root. path is the
// in-progress label chain, used only to render a cycle message.
func visit(p *process.Process, byKey map[string]*process.Process, run map[string]bool, visited map[string]bool, path *[]string) ([]*process.Process, error) {
	key := p.Key()
	if visited[key] {
		return nil, nil
	}

	var result []*process.Process
	for _, dep := range p.Deps {
		*path = append(*path, key)

		if run[dep] {
			cycle := append(append([]string{}, *path...), dep)
			return nil, &CycleError{Path: cycle}
		}

		depProc, ok := byKey[dep]
		if !ok {
			return nil, &UnknownDependencyError{Name: dep}
		}

		run[dep] = true
		sub, err := visit(depProc, byKey, run, visited, path)
		if err != nil {
			return nil, err
		}
		result = append(result, sub...)

		delete(run, dep)
		*path = (*path)[:len(*path)-1]
	}

	visited[key] = true
	result = append(result, p)
	return result, nil
}
