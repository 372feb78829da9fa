// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package canvas

import (
	"math"
	"sync"
	"time"

	"github.com/tomtom215/horizon/internal/graph"
)

// Viewport defaults.
const (
	DefaultMinScale      = 0.4
	DefaultMaxScale      = 2.8
	DefaultZoomSpeed     = 0.001
	DefaultFriction      = 0.88
	DefaultMinSpeed      = 0.1
	DefaultStartSpeed    = 0.5
	DefaultFrameInterval = 16 * time.Millisecond

	// releaseWindow is how long the pointer may rest before release and still
	// hand its velocity to inertia.
	releaseWindow = 100 * time.Millisecond
)

// Config holds the viewport tuning parameters.
type Config struct {
	MinScale  float64
	MaxScale  float64
	ZoomSpeed float64
	// Friction multiplies the inertia velocity once per frame.
	Friction float64
	// MinSpeed stops inertia once speed (px/frame) drops below it.
	MinSpeed float64
	// StartSpeed is the release speed (px/frame) needed to begin inertia.
	StartSpeed    float64
	FrameInterval time.Duration
}

// DefaultConfig returns the standard viewport parameters.
func DefaultConfig() Config {
	return Config{
		MinScale:      DefaultMinScale,
		MaxScale:      DefaultMaxScale,
		ZoomSpeed:     DefaultZoomSpeed,
		Friction:      DefaultFriction,
		MinSpeed:      DefaultMinSpeed,
		StartSpeed:    DefaultStartSpeed,
		FrameInterval: DefaultFrameInterval,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinScale <= 0 {
		c.MinScale = d.MinScale
	}
	if c.MaxScale <= c.MinScale {
		c.MaxScale = math.Max(d.MaxScale, c.MinScale)
	}
	if c.ZoomSpeed <= 0 {
		c.ZoomSpeed = d.ZoomSpeed
	}
	if c.Friction <= 0 || c.Friction >= 1 {
		c.Friction = d.Friction
	}
	if c.MinSpeed <= 0 {
		c.MinSpeed = d.MinSpeed
	}
	if c.StartSpeed <= 0 {
		c.StartSpeed = d.StartSpeed
	}
	if c.FrameInterval <= 0 {
		c.FrameInterval = d.FrameInterval
	}
	return c
}

// Transform is a snapshot of the viewport state.
type Transform struct {
	OffsetX float64 `json:"panX"`
	OffsetY float64 `json:"panY"`
	Scale   float64 `json:"zoom"`
}

// Identity is the untransformed view.
var Identity = Transform{Scale: 1}

// ScreenToWorld maps a screen point into world space.
func (t Transform) ScreenToWorld(x, y float64) graph.Point {
	return graph.Point{X: (x - t.OffsetX) / t.Scale, Y: (y - t.OffsetY) / t.Scale}
}

// WorldToScreen maps a world point into screen space.
func (t Transform) WorldToScreen(p graph.Point) (x, y float64) {
	return p.X*t.Scale + t.OffsetX, p.Y*t.Scale + t.OffsetY
}

// Option configures a Viewport.
type Option func(*Viewport)

// WithScheduler sets the frame scheduler used for inertia.
func WithScheduler(s Scheduler) Option {
	return func(v *Viewport) { v.sched = s }
}

// WithClock sets the time source used for velocity estimation.
func WithClock(now func() time.Time) Option {
	return func(v *Viewport) { v.now = now }
}

// WithSize sets the screen size used by ZoomBy and WorldCenter.
func WithSize(width, height float64) Option {
	return func(v *Viewport) { v.width, v.height = width, height }
}

// OnChange registers a callback invoked after every transform change. It is
// called without the viewport lock held and may be called from the
// scheduler's goroutine.
func OnChange(fn func(Transform)) Option {
	return func(v *Viewport) { v.onChange = fn }
}

type panAnchor struct {
	x, y             float64
	offsetX, offsetY float64
}

type pointerSample struct {
	x, y float64
	at   time.Time
}

// Viewport is the single writer of a view transform.
type Viewport struct {
	mu  sync.Mutex
	cfg Config
	t   Transform

	sched    Scheduler
	now      func() time.Time
	onChange func(Transform)

	width, height float64

	panning bool
	anchor  panAnchor
	last    pointerSample
	vx, vy  float64

	inertia Task
	gen     uint64
}

// NewViewport creates a viewport at the identity transform.
func NewViewport(cfg Config, opts ...Option) *Viewport {
	v := &Viewport{
		cfg: cfg.withDefaults(),
		t:   Identity,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.sched == nil {
		v.sched = NewTickerScheduler(v.cfg.FrameInterval)
	}
	return v
}

// Config returns the effective configuration.
func (v *Viewport) Config() Config {
	return v.cfg
}

// Transform returns the current transform.
func (v *Viewport) Transform() Transform {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.t
}

// ClampScale bounds s to the configured range. Non-finite values map to 1
// before clamping.
func (v *Viewport) ClampScale(s float64) float64 {
	return clampScale(s, v.cfg)
}

func clampScale(s float64, cfg Config) float64 {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		s = 1
	}
	return math.Min(math.Max(s, cfg.MinScale), cfg.MaxScale)
}

// SetTransform replaces the transform, clamping its scale. Inertia stops.
func (v *Viewport) SetTransform(t Transform) {
	v.mu.Lock()
	v.cancelInertiaLocked()
	t.Scale = clampScale(t.Scale, v.cfg)
	if !finite(t.OffsetX) {
		t.OffsetX = 0
	}
	if !finite(t.OffsetY) {
		t.OffsetY = 0
	}
	v.t = t
	v.mu.Unlock()
	v.notify(t)
}

// Reset returns to the identity transform.
func (v *Viewport) Reset() {
	v.SetTransform(Identity)
}

// SetSize records the screen size.
func (v *Viewport) SetSize(width, height float64) {
	v.mu.Lock()
	v.width, v.height = width, height
	v.mu.Unlock()
}

// Pan adds a screen-space delta to the offset.
func (v *Viewport) Pan(dx, dy float64) {
	v.mu.Lock()
	v.t.OffsetX += dx
	v.t.OffsetY += dy
	t := v.t
	v.mu.Unlock()
	v.notify(t)
}

// ZoomAt scales by (1 + ZoomSpeed*delta) around a screen point, keeping the
// world point under it fixed. Positive delta zooms in; wheel handlers pass
// the negated vertical wheel delta.
func (v *Viewport) ZoomAt(cx, cy, delta float64) {
	v.mu.Lock()
	next := v.t.Scale * (1 + v.cfg.ZoomSpeed*delta)
	v.zoomLocked(cx, cy, next)
	t := v.t
	v.mu.Unlock()
	v.notify(t)
}

// ZoomBy multiplies the scale by factor around the screen center.
func (v *Viewport) ZoomBy(factor float64) {
	v.mu.Lock()
	v.zoomLocked(v.width/2, v.height/2, v.t.Scale*factor)
	t := v.t
	v.mu.Unlock()
	v.notify(t)
}

func (v *Viewport) zoomLocked(cx, cy, next float64) {
	if math.IsNaN(next) {
		return
	}
	next = clampScale(next, v.cfg)
	world := v.t.ScreenToWorld(cx, cy)
	v.t.OffsetX = cx - world.X*next
	v.t.OffsetY = cy - world.Y*next
	v.t.Scale = next
}

// ScreenToWorld maps a screen point through the current transform.
func (v *Viewport) ScreenToWorld(x, y float64) graph.Point {
	return v.Transform().ScreenToWorld(x, y)
}

// WorldToScreen maps a world point through the current transform.
func (v *Viewport) WorldToScreen(p graph.Point) (x, y float64) {
	return v.Transform().WorldToScreen(p)
}

// WorldCenter is the world point at the center of the screen.
func (v *Viewport) WorldCenter() graph.Point {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.t.ScreenToWorld(v.width/2, v.height/2)
}

// BeginPan starts a drag pan at a screen point. Inertia stops.
func (v *Viewport) BeginPan(x, y float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cancelInertiaLocked()
	v.panning = true
	v.anchor = panAnchor{x: x, y: y, offsetX: v.t.OffsetX, offsetY: v.t.OffsetY}
	v.last = pointerSample{x: x, y: y, at: v.now()}
	v.vx, v.vy = 0, 0
}

// MovePan moves an active pan to a screen point. It is a no-op when no pan
// is active.
func (v *Viewport) MovePan(x, y float64) {
	v.mu.Lock()
	if !v.panning {
		v.mu.Unlock()
		return
	}
	now := v.now()
	dx, dy := x-v.last.x, y-v.last.y
	if dt := now.Sub(v.last.at); dt > 0 {
		perFrame := float64(v.cfg.FrameInterval) / float64(dt)
		v.vx, v.vy = dx*perFrame, dy*perFrame
	} else {
		v.vx, v.vy = dx, dy
	}
	v.last = pointerSample{x: x, y: y, at: now}

	v.t.OffsetX = v.anchor.offsetX + (x - v.anchor.x)
	v.t.OffsetY = v.anchor.offsetY + (y - v.anchor.y)
	t := v.t
	v.mu.Unlock()
	v.notify(t)
}

// EndPan releases the pan. When the release speed reaches StartSpeed an
// inertia task begins.
func (v *Viewport) EndPan() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.panning {
		return
	}
	v.panning = false
	if v.now().Sub(v.last.at) > releaseWindow {
		v.vx, v.vy = 0, 0
	}
	if math.Hypot(v.vx, v.vy) < v.cfg.StartSpeed {
		v.vx, v.vy = 0, 0
		return
	}
	v.startInertiaLocked()
}

// AbortPan drops an active pan without starting inertia.
func (v *Viewport) AbortPan() {
	v.mu.Lock()
	v.panning = false
	v.vx, v.vy = 0, 0
	v.mu.Unlock()
}

// Panning reports whether a drag pan is active.
func (v *Viewport) Panning() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.panning
}

// Coasting reports whether an inertia task is running.
func (v *Viewport) Coasting() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.inertia != nil
}

// Fling starts inertia with an explicit velocity in px per frame.
func (v *Viewport) Fling(vx, vy float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cancelInertiaLocked()
	v.vx, v.vy = vx, vy
	if math.Hypot(vx, vy) < v.cfg.MinSpeed {
		v.vx, v.vy = 0, 0
		return
	}
	v.startInertiaLocked()
}

// CancelInertia stops any running inertia task.
func (v *Viewport) CancelInertia() {
	v.mu.Lock()
	v.cancelInertiaLocked()
	v.mu.Unlock()
}

// Close releases the scheduler task. The viewport remains usable.
func (v *Viewport) Close() {
	v.CancelInertia()
}

func (v *Viewport) startInertiaLocked() {
	v.gen++
	gen := v.gen
	v.inertia = v.sched.Every(func() bool { return v.step(gen) })
}

func (v *Viewport) cancelInertiaLocked() {
	v.gen++
	if v.inertia != nil {
		v.inertia.Stop()
		v.inertia = nil
	}
}

// step applies one inertia frame and reports whether another is wanted.
func (v *Viewport) step(gen uint64) bool {
	v.mu.Lock()
	if gen != v.gen {
		v.mu.Unlock()
		return false
	}
	v.t.OffsetX += v.vx
	v.t.OffsetY += v.vy
	v.vx *= v.cfg.Friction
	v.vy *= v.cfg.Friction
	more := math.Hypot(v.vx, v.vy) >= v.cfg.MinSpeed
	if !more {
		v.vx, v.vy = 0, 0
		v.inertia = nil
	}
	t := v.t
	v.mu.Unlock()
	v.notify(t)
	return more
}

func (v *Viewport) notify(t Transform) {
	if v.onChange != nil {
		v.onChange(t)
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
