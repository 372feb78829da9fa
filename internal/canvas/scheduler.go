// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package canvas

import (
	"sync"
	"time"
)

// Task is a running repeating callback.
type Task interface {
	// Stop prevents any further invocation. It is safe to call more than once.
	Stop()
}

// Scheduler runs a callback once per frame until it returns false or the
// returned Task is stopped. Every must not invoke fn before returning.
type Scheduler interface {
	Every(fn func() bool) Task
}

// TickerScheduler drives frames from a time.Ticker.
type TickerScheduler struct {
	Interval time.Duration
}

// NewTickerScheduler returns a scheduler firing every interval. A
// non-positive interval selects DefaultFrameInterval.
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &TickerScheduler{Interval: interval}
}

// Every implements Scheduler.
func (s *TickerScheduler) Every(fn func() bool) Task {
	t := &tickerTask{done: make(chan struct{})}
	ticker := time.NewTicker(s.Interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-ticker.C:
				if !fn() {
					t.Stop()
					return
				}
			}
		}
	}()

	return t
}

type tickerTask struct {
	once sync.Once
	done chan struct{}
}

func (t *tickerTask) Stop() {
	t.once.Do(func() { close(t.done) })
}
