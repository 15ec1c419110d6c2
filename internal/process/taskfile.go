// SPDX-License-Identifier: MPL-2.0

package process

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// TaskfileError wraps an I/O or deserialization failure while loading a
// taskfile.
type TaskfileError struct {
	Path string
	Err  error
}

func (e *TaskfileError) Error() string {
	return fmt.Sprintf("taskfile %s: %v", e.Path, e.Err)
}

func (e *TaskfileError) Unwrap() error { return e.Err }

// taskfileDocument mirrors the wire format described in §4.2/§6: a version
// stamp plus an ordered task list. Field names are the wire names, distinct
// from the Process struct's Go-side field names.
type taskfileDocument struct {
	Version uint32          `yaml:"version"`
	Tasks   []taskfileEntry `yaml:"tasks"`
}

type taskfileEntry struct {
	Run    string            `yaml:"run"`
	Name   string            `yaml:"name"`
	Deps   []string          `yaml:"deps"`
	Checks []string          `yaml:"checks"`
	Wait   string            `yaml:"wait"`
	Env    map[string]string `yaml:"env"`
}

// LoadTaskfile reads and parses a taskfile document, returning its tasks in
// declaration order with Origin set to the file's basename (or "<invalid>"
// if the path yields none) and QualifiedLabel recomputed from it.
func LoadTaskfile(path string) ([]*Process, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &TaskfileError{Path: path, Err: err}
	}

	var doc taskfileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &TaskfileError{Path: path, Err: err}
	}

	origin := filepath.Base(path)
	if origin == "." || origin == string(filepath.Separator) {
		origin = invalidOrigin
	}

	procs := make([]*Process, 0, len(doc.Tasks))
	for _, t := range doc.Tasks {
		wait := defaultWait
		if t.Wait != "" {
			d, err := time.ParseDuration(t.Wait)
			if err != nil {
				return nil, &TaskfileError{Path: path, Err: fmt.Errorf("task %q: invalid wait %q: %w", t.Name, t.Wait, err)}
			}
			wait = d
		}

		env := t.Env
		if env == nil {
			env = map[string]string{}
		}

		procs = append(procs, &Process{
			Command: t.Run,
			Label:   t.Name,
			Origin:  origin,
			Deps:    t.Deps,
			Checks:  t.Checks,
			Wait:    wait,
			Env:     env,
		})
	}

	return procs, nil
}
