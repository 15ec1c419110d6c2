// SPDX-License-Identifier: MPL-2.0

package waiter

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestWait_NoURLsSucceedsImmediately(t *testing.T) {
	t.Parallel()

	if err := Wait(context.Background(), "a", nil, time.Second, false, io.Discard); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWait_AllPassBeforeDeadline(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := Wait(context.Background(), "a", []string{srv.URL}, 2*time.Second, false, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWait_DeadlineExceeded(t *testing.T) {
	t.Parallel()

	err := Wait(context.Background(), "a", []string{"http://127.0.0.1:1/"}, 1200*time.Millisecond, false, io.Discard)
	if err == nil {
		t.Fatal("expected a deadline-exceeded error")
	}
	var deadlineErr *DeadlineExceededError
	if !errors.As(err, &deadlineErr) {
		t.Fatalf("error = %v, want *DeadlineExceededError", err)
	}
}

func TestWait_ConstructionErrorShortCircuits(t *testing.T) {
	t.Parallel()

	err := Wait(context.Background(), "a", []string{"ftp://x/"}, time.Second, false, io.Discard)
	var schemeErr *UnsupportedSchemeError
	if !errors.As(err, &schemeErr) {
		t.Fatalf("error = %v, want *UnsupportedSchemeError", err)
	}
}

func TestWait_CancellationStopsPolling(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Wait(ctx, "a", []string{"http://127.0.0.1:1/"}, 30*time.Second, false, io.Discard)
	if err == nil {
		t.Fatal("expected an error when the context is already cancelled")
	}
}

func TestWait_VerboseLogsProbeStart(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	if err := Wait(context.Background(), "web", []string{srv.URL}, time.Second, true, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	line := buf.String()
	if !strings.HasPrefix(line, "----> web: ... ") {
		t.Errorf("verbose line = %q, want prefix %q", line, "----> web: ... ")
	}
}

func TestWait_VerboseWithoutKey(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	if err := Wait(context.Background(), "", []string{srv.URL}, time.Second, true, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "----> ... ") {
		t.Errorf("verbose line = %q, want prefix %q", buf.String(), "----> ... ")
	}
}
