// SPDX-License-Identifier: MPL-2.0

package process

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadTaskfile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.yaml")
	doc := `
version: 1
tasks:
  - name: db
    run: ./db
  - name: web
    run: ./server
    deps: [db]
    checks: ["http://localhost:8080/health"]
    wait: 10s
    env:
      PORT: "8080"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write taskfile: %v", err)
	}

	procs, err := LoadTaskfile(path)
	if err != nil {
		t.Fatalf("LoadTaskfile: %v", err)
	}
	if len(procs) != 2 {
		t.Fatalf("got %d processes, want 2", len(procs))
	}

	if procs[0].Label != "db" || procs[0].Origin != "tasks.yaml" {
		t.Errorf("procs[0] = %+v", procs[0])
	}
	if procs[0].QualifiedLabel() != "tasks.yaml/db" {
		t.Errorf("qualified label = %q", procs[0].QualifiedLabel())
	}

	w := procs[1]
	if w.Wait != 10*time.Second {
		t.Errorf("wait = %v, want 10s", w.Wait)
	}
	if len(w.Deps) != 1 || w.Deps[0] != "db" {
		t.Errorf("deps = %v", w.Deps)
	}
	if w.Env["PORT"] != "8080" {
		t.Errorf("env = %v", w.Env)
	}
}

func TestLoadTaskfile_DefaultsWhenFieldsMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "minimal.yaml")
	if err := os.WriteFile(path, []byte("version: 1\ntasks:\n  - run: echo hi\n"), 0o644); err != nil {
		t.Fatalf("write taskfile: %v", err)
	}

	procs, err := LoadTaskfile(path)
	if err != nil {
		t.Fatalf("LoadTaskfile: %v", err)
	}
	if len(procs) != 1 {
		t.Fatalf("got %d processes, want 1", len(procs))
	}
	if procs[0].Wait != defaultWait {
		t.Errorf("wait = %v, want default", procs[0].Wait)
	}
	if procs[0].Env == nil {
		t.Errorf("env should default to an empty map, not nil")
	}
}

func TestLoadTaskfile_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadTaskfile(filepath.Join(t.TempDir(), "nope.yaml"))
	var tfErr *TaskfileError
	if !errors.As(err, &tfErr) {
		t.Fatalf("error = %v, want *TaskfileError", err)
	}
}

func TestLoadTaskfile_InvalidWait(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	doc := "version: 1\ntasks:\n  - run: echo hi\n    wait: not-a-duration\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write taskfile: %v", err)
	}

	_, err := LoadTaskfile(path)
	if err == nil {
		t.Fatal("expected error for invalid wait duration")
	}
}
