package overlay

import (
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeClock fires timers only when Advance moves past their deadline.
type fakeClock struct {
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	t := &fakeTimer{at: c.now + d, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now += d
	due := []*fakeTimer{}
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.fired = true
		t.fn()
	}
}

type inlineDispatcher struct{}

func (inlineDispatcher) Post(fn func()) { fn() }

type fakeAnimation struct {
	from, to float64
	step     func(float64)
	done     func()
	stopped  bool
}

func (a *fakeAnimation) Stop() { a.stopped = true }

// Complete drives the animation to its end.
func (a *fakeAnimation) Complete() {
	a.step(a.to)
	a.done()
}

type fakeAnimator struct {
	started []*fakeAnimation
}

func (f *fakeAnimator) Animate(from, to float64, d time.Duration, step func(float64), done func()) Animation {
	a := &fakeAnimation{from: from, to: to, step: step, done: done}
	f.started = append(f.started, a)
	return a
}

func (f *fakeAnimator) last(t *testing.T) *fakeAnimation {
	t.Helper()
	if len(f.started) == 0 {
		t.Fatal("no animation started")
	}
	return f.started[len(f.started)-1]
}

// recordingSurface counts calls on top of LogSurface state.
type recordingSurface struct {
	LogSurface
	shows, hides int
}

func (s *recordingSurface) SetVisible() { s.shows++; s.LogSurface.SetVisible() }
func (s *recordingSurface) SetHidden()  { s.hides++; s.LogSurface.SetHidden() }

type harness struct {
	clock    *fakeClock
	animator *fakeAnimator
	surface  *recordingSurface
	c        *Controller
}

func newHarness() *harness {
	h := &harness{
		clock:    &fakeClock{},
		animator: &fakeAnimator{},
		surface:  &recordingSurface{LogSurface: LogSurface{logger: zerolog.Nop()}},
	}
	h.c = NewController(h.surface, inlineDispatcher{}, h.clock, h.animator, zerolog.Nop())
	return h
}

func TestDebounceCollapsesBurst(t *testing.T) {
	h := newHarness()

	h.c.RequestVisibility(true)
	h.clock.Advance(30 * time.Millisecond)
	h.c.RequestVisibility(false)
	if h.c.State() != Pending {
		t.Errorf("State() = %v, want pending", h.c.State())
	}

	h.clock.Advance(DebounceInterval - time.Millisecond)
	if len(h.animator.started) != 0 {
		t.Fatalf("animation started before debounce elapsed")
	}
	h.clock.Advance(time.Millisecond)

	if len(h.animator.started) != 1 {
		t.Fatalf("animations = %d, want 1", len(h.animator.started))
	}
	a := h.animator.last(t)
	if a.to != 0 {
		t.Errorf("animation target = %v, want 0", a.to)
	}
	if h.c.State() != Transitioning {
		t.Errorf("State() = %v, want transitioning", h.c.State())
	}
	a.Complete()
	if h.surface.Visible() {
		t.Error("surface visible after fade-out, want hidden")
	}
	if h.surface.shows != 0 {
		t.Errorf("surface shown %d times, want 0", h.surface.shows)
	}
	if h.c.State() != Idle {
		t.Errorf("State() = %v, want idle", h.c.State())
	}
}

func TestFlappingEndsVisibleWithOneAnimation(t *testing.T) {
	h := newHarness()

	h.c.RequestVisibility(true)
	h.clock.Advance(20 * time.Millisecond)
	h.c.RequestVisibility(false)
	h.clock.Advance(30 * time.Millisecond)
	h.c.RequestVisibility(true)
	h.clock.Advance(DebounceInterval)

	if len(h.animator.started) != 1 {
		t.Fatalf("animations = %d, want 1", len(h.animator.started))
	}
	a := h.animator.last(t)
	if a.from != 0 || a.to != 1 {
		t.Errorf("animation %v -> %v, want 0 -> 1", a.from, a.to)
	}
	a.Complete()
	if !h.surface.Visible() || h.surface.Opacity() != 1 {
		t.Errorf("surface visible=%v opacity=%v, want visible at 1", h.surface.Visible(), h.surface.Opacity())
	}
}

func TestFadeInStartsFromZeroWhenHidden(t *testing.T) {
	h := newHarness()
	h.surface.SetOpacity(0.7)

	h.c.RequestVisibility(true)
	h.clock.Advance(DebounceInterval)

	a := h.animator.last(t)
	if a.from != 0 {
		t.Errorf("fade-in from %v, want 0", a.from)
	}
	if !h.surface.Visible() || h.surface.Opacity() != 0 {
		t.Errorf("surface visible=%v opacity=%v before first step, want visible at 0", h.surface.Visible(), h.surface.Opacity())
	}
	a.step(0.5)
	if h.surface.Opacity() != 0.5 {
		t.Errorf("opacity after step = %v, want 0.5", h.surface.Opacity())
	}
}

func TestStaleFadeOutDoesNotHide(t *testing.T) {
	h := newHarness()
	h.c.RequestVisibility(true)
	h.clock.Advance(DebounceInterval)
	h.animator.last(t).Complete()

	h.c.RequestVisibility(false)
	h.clock.Advance(DebounceInterval)
	fadeOut := h.animator.last(t)
	fadeOut.step(0.4)

	// Show request arrives while the fade-out is still running.
	h.c.RequestVisibility(true)
	fadeOut.Complete()
	if !h.surface.Visible() {
		t.Fatal("stale fade-out completion hid the surface")
	}

	h.clock.Advance(DebounceInterval)
	fadeIn := h.animator.last(t)
	if fadeIn == fadeOut {
		t.Fatal("no fade-in started")
	}
	if fadeIn.to != 1 {
		t.Errorf("fade-in target = %v, want 1", fadeIn.to)
	}
	fadeIn.Complete()
	if !h.surface.Visible() || h.surface.Opacity() != 1 {
		t.Errorf("surface visible=%v opacity=%v, want visible at 1", h.surface.Visible(), h.surface.Opacity())
	}
	if h.surface.hides != 0 {
		t.Errorf("surface hidden %d times, want 0", h.surface.hides)
	}
}

func TestNewTransitionReplacesRunningAnimation(t *testing.T) {
	h := newHarness()
	h.c.RequestVisibility(true)
	h.clock.Advance(DebounceInterval)
	fadeIn := h.animator.last(t)
	fadeIn.step(0.6)

	h.c.RequestVisibility(false)
	h.clock.Advance(DebounceInterval)
	if !fadeIn.stopped {
		t.Error("running fade-in was not stopped")
	}
	fadeOut := h.animator.last(t)
	if fadeOut.from != 0.6 {
		t.Errorf("fade-out from %v, want current opacity 0.6", fadeOut.from)
	}

	// Late callbacks from the replaced animation are ignored.
	fadeIn.step(0.9)
	fadeIn.done()
	if h.surface.Opacity() != 0.6 {
		t.Errorf("opacity = %v after stale step, want 0.6", h.surface.Opacity())
	}

	fadeOut.Complete()
	if h.surface.Visible() || h.surface.Opacity() != 0 {
		t.Errorf("surface visible=%v opacity=%v, want hidden at 0", h.surface.Visible(), h.surface.Opacity())
	}
}

func TestDisposeStopsEverything(t *testing.T) {
	t.Run("pending", func(t *testing.T) {
		h := newHarness()
		h.c.RequestVisibility(true)
		h.c.Dispose()
		h.clock.Advance(DebounceInterval)
		if len(h.animator.started) != 0 {
			t.Error("animation started after dispose")
		}
		if h.surface.shows != 0 {
			t.Error("surface touched after dispose")
		}
	})

	t.Run("animating", func(t *testing.T) {
		h := newHarness()
		h.c.RequestVisibility(true)
		h.clock.Advance(DebounceInterval)
		a := h.animator.last(t)
		a.step(0.3)
		h.c.Dispose()
		if !a.stopped {
			t.Error("animation not stopped by dispose")
		}
		a.Complete()
		if h.surface.Opacity() != 0.3 {
			t.Errorf("opacity = %v after dispose, want 0.3", h.surface.Opacity())
		}
	})

	t.Run("requests ignored", func(t *testing.T) {
		h := newHarness()
		h.c.Dispose()
		h.c.Dispose()
		h.c.RequestVisibility(true)
		h.clock.Advance(DebounceInterval)
		if len(h.animator.started) != 0 || h.c.State() != Idle {
			t.Error("request after dispose was not ignored")
		}
	})
}

func TestEaseOutQuad(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0.75},
		{1, 1},
		{2, 1},
	}
	for _, tt := range tests {
		if got := EaseOutQuad(tt.in); got != tt.want {
			t.Errorf("EaseOutQuad(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
