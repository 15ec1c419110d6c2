// SPDX-License-Identifier: MPL-2.0

package waiter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewProbe_UnsupportedScheme(t *testing.T) {
	t.Parallel()

	_, err := NewProbe("ftp://x/")
	var schemeErr *UnsupportedSchemeError
	if !errors.As(err, &schemeErr) {
		t.Fatalf("error = %v, want *UnsupportedSchemeError", err)
	}
	if schemeErr.Scheme != "ftp" {
		t.Errorf("scheme = %q, want %q", schemeErr.Scheme, "ftp")
	}
}

func TestNewProbe_NoScheme(t *testing.T) {
	t.Parallel()

	_, err := NewProbe("not-a-url-at-all")
	var badErr *BadURLError
	if !errors.As(err, &badErr) {
		t.Fatalf("error = %v, want *BadURLError", err)
	}
}

func TestHTTPProbe_PassesOn2xx(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p, err := NewProbe(srv.URL)
	if err != nil {
		t.Fatalf("NewProbe: %v", err)
	}

	ok, err := p.Check(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !ok {
		t.Error("expected pass on 2xx")
	}
}

func TestHTTPProbe_FailsOnNon2xx(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p, err := NewProbe(srv.URL)
	if err != nil {
		t.Fatalf("NewProbe: %v", err)
	}

	ok, err := p.Check(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if ok {
		t.Error("expected fail on 404")
	}
}

func TestFileProbe_ExistsVsMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "marker")

	p, err := NewProbe("file://" + path)
	if err != nil {
		t.Fatalf("NewProbe: %v", err)
	}

	ok, err := p.Check(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if ok {
		t.Error("expected fail before file exists")
	}

	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write marker: %v", err)
	}

	ok, err = p.Check(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !ok {
		t.Error("expected pass after file exists")
	}
}

func TestShellProbe_ExitStatus(t *testing.T) {
	t.Parallel()

	pass, err := NewProbe("shell:true")
	if err != nil {
		t.Fatalf("NewProbe: %v", err)
	}
	ok, err := pass.Check(context.Background(), time.Second)
	if err != nil || !ok {
		t.Errorf("expected pass, got ok=%v err=%v", ok, err)
	}

	fail, err := NewProbe("shell:false")
	if err != nil {
		t.Fatalf("NewProbe: %v", err)
	}
	ok, err = fail.Check(context.Background(), time.Second)
	if ok {
		t.Error("expected fail for `false`")
	}
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Errorf("error = %v, want *CommandError", err)
	}
}
