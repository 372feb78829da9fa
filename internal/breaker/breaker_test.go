// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/horizon/internal/metrics"
)

var errUpstream = errors.New("upstream down")

func TestCall_Success(t *testing.T) {
	t.Parallel()

	b := New("test-success", Settings{})
	got, err := Call(b, func() ([]string, error) { return []string{"a", "b"}, nil })
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %v", got)
	}
	if b.State() != "closed" {
		t.Errorf("state = %s", b.State())
	}
}

func TestCall_NilSlice(t *testing.T) {
	t.Parallel()

	b := New("test-nil", Settings{})
	got, err := Call(b, func() ([]string, error) { return nil, nil })
	if err != nil || got != nil {
		t.Errorf("Call = %v, %v", got, err)
	}
}

func TestBreaker_OpensAndRejects(t *testing.T) {
	t.Parallel()

	b := New("test-open", Settings{MinRequests: 4, Timeout: time.Hour})
	for i := 0; i < 4; i++ {
		if err := b.Run(func() error { return errUpstream }); !errors.Is(err, errUpstream) {
			t.Fatalf("attempt %d: err = %v", i, err)
		}
	}
	if b.State() != "open" {
		t.Fatalf("state = %s, want open", b.State())
	}

	called := false
	err := b.Run(func() error { called = true; return nil })
	if !Rejected(err) {
		t.Errorf("err = %v, want rejection", err)
	}
	if called {
		t.Error("open breaker invoked the protected call")
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test-open")); got != 2 {
		t.Errorf("state gauge = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerRequests.WithLabelValues("test-open", "rejected")); got != 1 {
		t.Errorf("rejected counter = %v, want 1", got)
	}
}

func TestBreaker_IsSuccessful(t *testing.T) {
	t.Parallel()

	b := New("test-classify", Settings{
		MinRequests:  2,
		IsSuccessful: func(err error) bool { return err == nil || errors.Is(err, errUpstream) },
	})
	for i := 0; i < 5; i++ {
		_ = b.Run(func() error { return errUpstream })
	}
	if b.State() != "closed" {
		t.Errorf("errors classified as success tripped the breaker")
	}
}

func TestStateString(t *testing.T) {
	t.Parallel()

	if Rejected(errUpstream) {
		t.Error("plain error reported as rejection")
	}
	if New("test-name", Settings{}).Name() != "test-name" {
		t.Error("Name mismatch")
	}
}
