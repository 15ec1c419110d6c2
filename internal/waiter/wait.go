// SPDX-License-Identifier: MPL-2.0

package waiter

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"
)

// pollInterval is the fixed delay between probe attempts.
const pollInterval = time.Second

// Wait runs one probe per URL concurrently and succeeds only once every
// probe has passed before deadline (now + wait). The first hard failure
// cancels the remaining probes. key identifies the owning process for
// verbose logging; it may be empty.
func Wait(ctx context.Context, key string, urls []string, wait time.Duration, verbose bool, out io.Writer) error {
	if len(urls) == 0 {
		return nil
	}

	probes := make([]Probe, len(urls))
	for i, raw := range urls {
		p, err := NewProbe(raw)
		if err != nil {
			return err
		}
		probes[i] = p
	}

	deadline := time.Now().Add(wait)

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range probes {
		p := p
		g.Go(func() error {
			if verbose {
				logStart(out, key, p.URL())
			}
			return poll(gctx, p, deadline)
		})
	}

	return g.Wait()
}

func logStart(out io.Writer, key, url string) {
	if key != "" {
		fmt.Fprintf(out, "----> %s: ... %s\n", key, url)
		return
	}
	fmt.Fprintf(out, "----> ... %s\n", url)
}

// poll runs p at a fixed 1-second interval until it passes, the deadline
// is reached, or ctx is cancelled. Per-attempt errors are swallowed as
// "not yet ready"; only a deadline overrun is reported.
func poll(ctx context.Context, p Probe, deadline time.Time) error {
	for {
		before := time.Now()

		remaining := time.Until(deadline)
		if remaining < 0 {
			remaining = 0
		}

		ok, _ := p.Check(ctx, remaining)
		if ok {
			return nil
		}

		after := time.Now()
		elapsed := after.Sub(before)

		if !after.Add(pollInterval).Before(deadline) {
			return &DeadlineExceededError{URL: p.URL(), Elapsed: elapsed}
		}

		sleep := pollInterval - elapsed
		if sleep < 0 {
			sleep = 0
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
	}
}
