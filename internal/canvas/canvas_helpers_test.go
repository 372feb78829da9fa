// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package canvas

import (
	"sync"
	"time"
)

// manualScheduler runs frames only when Tick is called.
type manualScheduler struct {
	mu    sync.Mutex
	tasks []*manualTask
}

type manualTask struct {
	mu      sync.Mutex
	fn      func() bool
	stopped bool
}

func (t *manualTask) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}

func (t *manualTask) live() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.stopped
}

func (s *manualScheduler) Every(fn func() bool) Task {
	t := &manualTask{fn: fn}
	s.mu.Lock()
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()
	return t
}

// Tick runs one frame of every live task and returns how many remain live.
func (s *manualScheduler) Tick() int {
	s.mu.Lock()
	tasks := append([]*manualTask(nil), s.tasks...)
	s.mu.Unlock()

	live := 0
	for _, t := range tasks {
		if !t.live() {
			continue
		}
		if t.fn() {
			live++
		} else {
			t.Stop()
		}
	}
	return live
}

func (s *manualScheduler) last() *manualTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.tasks) == 0 {
		return nil
	}
	return s.tasks[len(s.tasks)-1]
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestViewport() (*Viewport, *manualScheduler, *fakeClock) {
	sched := &manualScheduler{}
	clock := newFakeClock()
	vp := NewViewport(DefaultConfig(), WithScheduler(sched), WithClock(clock.Now), WithSize(800, 600))
	return vp, sched, clock
}
