// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/horizon/internal/store"
)

func TestPeriodicService_RunsUntilCanceled(t *testing.T) {
	var runs atomic.Int32
	svc := NewPeriodicService("tick", 5*time.Millisecond, func(context.Context) error {
		if runs.Add(1) == 1 {
			return errors.New("first run fails")
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for runs.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("only %d runs", runs.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if svc.String() != "tick" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestPeriodicService_DefaultInterval(t *testing.T) {
	svc := NewPeriodicService("x", 0, func(context.Context) error { return nil })
	if svc.interval != time.Hour {
		t.Errorf("interval = %v, want 1h", svc.interval)
	}
}

func TestStoreGC(t *testing.T) {
	kv, err := store.OpenBadger(store.BadgerConfig{InMemory: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := StoreGC(kv)(context.Background()); err != nil {
		t.Errorf("gc on open store: %v", err)
	}

	_ = kv.Close()
	if err := StoreGC(kv)(context.Background()); !errors.Is(err, store.ErrClosed) {
		t.Errorf("gc on closed store = %v, want ErrClosed", err)
	}
}

func TestCacheCleanup(t *testing.T) {
	var calls int
	task := CacheCleanup(func() int {
		calls++
		return 2
	})
	if err := task(context.Background()); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("cleanup calls = %d", calls)
	}
}
