// SPDX-License-Identifier: MPL-2.0

// Command podctl runs a set of interdependent local processes, ordering
// their startup by declared dependencies and gating each one's
// availability on user-supplied readiness checks.
package main

func main() {
	Execute()
}
