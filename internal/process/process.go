// SPDX-License-Identifier: MPL-2.0

// Package process defines the supervised task specification: a parsed
// command line or a taskfile entry, its identity, its declared
// dependencies, and its readiness checks.
package process

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// defaultWait is the readiness deadline applied when a process doesn't
// specify one.
const defaultWait = 30 * time.Second

// DefaultWait returns the readiness deadline a process gets when its
// specifier and taskfile entry both omit one. Callers that merge in a
// config-level default wait compare against this to detect the
// unmodified case.
func DefaultWait() time.Duration {
	return defaultWait
}

// invalidOrigin is substituted for a taskfile path that has no basename.
const invalidOrigin = "<invalid>"

// ErrInvalidFormat is the sentinel wrapped by FormatError.
var ErrInvalidFormat = errors.New("invalid process format")

// FormatError reports a specifier that does not match the process grammar
// (§4.1): `[ label [ "+" deps ] ":" ] command [ "=" check ]`.
type FormatError struct {
	Text string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("Invalid process format: %s", e.Text)
}

// Unwrap returns ErrInvalidFormat for errors.Is() compatibility.
func (e *FormatError) Unwrap() error { return ErrInvalidFormat }

// Process is the unit of supervision: a shell command line plus the
// metadata needed to order, launch, and gate it. The pod never modifies
// a Process it is given.
type Process struct {
	// Command is the shell command line to execute.
	Command string
	// Label is the user-assigned identifier used for dep references and
	// display. Empty if the specifier omitted it.
	Label string
	// Origin is the taskfile basename this process came from, or "" when
	// parsed from an inline specifier.
	Origin string
	// Deps are the labels this process requires to be available before it
	// starts, in declaration order.
	Deps []string
	// Checks are the readiness-probe URLs; empty means "available
	// immediately after spawn".
	Checks []string
	// Wait is the per-process readiness deadline.
	Wait time.Duration
	// Env is extra environment for the spawned shell; the task's entries
	// win over the parent environment on collision.
	Env map[string]string
}

// New builds a Process from explicit fields, applying the same defaults
// Parse and LoadTaskfile apply: the default wait and an empty Env.
func New(origin, label, command string, deps []string, check string) *Process {
	p := &Process{
		Command: command,
		Label:   label,
		Origin:  origin,
		Deps:    deps,
		Wait:    defaultWait,
		Env:     map[string]string{},
	}
	if check != "" {
		p.Checks = []string{check}
	}
	return p
}

// QualifiedLabel returns the display-only identity: "<origin>/<label>" if
// both are present, else whichever of the two is present, else "".
// It is never used for dependency resolution — see Key.
func (p *Process) QualifiedLabel() string {
	switch {
	case p.Origin != "" && p.Label != "":
		return p.Origin + "/" + p.Label
	case p.Label != "":
		return p.Label
	case p.Origin != "":
		return p.Origin
	default:
		return ""
	}
}

// Key is the identity used by the dependency resolver's symbol table:
// Label if present, else Command. Dep references always resolve against
// bare labels, never the qualified form.
func (p *Process) Key() string {
	if p.Label != "" {
		return p.Label
	}
	return p.Command
}

// DisplayKey is the identity used for log lines and banners: QualifiedLabel
// if non-empty, else Key.
func (p *Process) DisplayKey() string {
	if q := p.QualifiedLabel(); q != "" {
		return q
	}
	return p.Key()
}

// String renders "<qualified_label>: <command> (<check>)", matching the
// original implementation's process-display format. Multiple checks are
// summarized as "N checks".
func (p *Process) String() string {
	var b strings.Builder
	if q := p.QualifiedLabel(); q != "" {
		b.WriteString(q)
		b.WriteString(": ")
	}
	b.WriteString(p.Command)
	switch len(p.Checks) {
	case 0:
	case 1:
		fmt.Fprintf(&b, " (%s)", p.Checks[0])
	default:
		fmt.Fprintf(&b, " (%d checks)", len(p.Checks))
	}
	return b.String()
}

// Parse splits a single specifier line per the grammar in §4.1:
//
//	spec := [ label [ "+" deps ] ":" ] command [ "=" check ]
//	deps := label ( "," label )*
//
// origin is attached to the resulting Process as its Origin (empty for
// inline specifiers parsed from CLI arguments).
func Parse(origin, text string) (*Process, error) {
	label, rest := splitLabel(text)

	var deps []string
	if label != "" {
		var depsText string
		label, depsText = splitDeps(label)
		if depsText != "" {
			for _, d := range strings.Split(depsText, ",") {
				deps = append(deps, strings.TrimSpace(d))
			}
		}
	}

	if label != "" && !labelPattern.MatchString(label) {
		return nil, &FormatError{Text: text}
	}

	cmd, check := splitCheck(rest)
	if strings.TrimSpace(cmd) == "" {
		return nil, &FormatError{Text: text}
	}

	return New(origin, label, cmd, deps, check), nil
}

// labelPattern matches the label grammar from §3: one or more alphanumerics.
var labelPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// splitLabel splits "label: rest" on the first colon. If there is no
// colon, the whole text is the remainder and there is no label.
func splitLabel(text string) (label, rest string) {
	parts := strings.SplitN(text, ":", 2)
	if len(parts) != 2 {
		return "", text
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

// splitDeps splits "label+deps" on the first "+".
func splitDeps(label string) (head, deps string) {
	parts := strings.SplitN(label, "+", 2)
	if len(parts) != 2 {
		return strings.TrimSpace(label), ""
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

// splitCheck splits "command=check" on the first "=".
func splitCheck(rest string) (cmd, check string) {
	parts := strings.SplitN(rest, "=", 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(parts[0]), ""
}
