// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"podctl/pkg/types"
)

// exitError signals a specific process exit code without forcing
// os.Exit from inside RunE — Execute inspects the returned error with
// errors.As and exits with the code it carries.
type exitError struct {
	Code types.ExitCode
	Err  error
}

func (e *exitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *exitError) Unwrap() error { return e.Err }
