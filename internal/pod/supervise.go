// SPDX-License-Identifier: MPL-2.0

package pod

import (
	"context"

	"podctl/pkg/types"
)

// supervise races every active child's exit against ctx cancellation.
// The first child to exit determines the Pod's exit code; cancellation
// returns ErrCanceled without one.
func (p *Pod) supervise(ctx context.Context, activeSet []*started) (types.ExitCode, error) {
	if len(activeSet) == 0 {
		return 0, nil
	}

	firstExit := make(chan int, len(activeSet))
	for _, st := range activeSet {
		st := st
		go func() {
			<-st.exit.done
			firstExit <- st.exit.code
		}()
	}

	select {
	case <-ctx.Done():
		p.logger.Debug("supervise canceled")
		return 0, ErrCanceled
	case code := <-firstExit:
		p.logger.Debug("first child exited", "code", code)
		return types.ExitCode(code), nil
	}
}
