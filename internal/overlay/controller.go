package overlay

import (
	"sync"

	"github.com/rs/zerolog"
)

// Controller turns a stream of visibility requests into at most one fade at
// a time on a Surface.
//
// Each request bumps a generation counter. Work scheduled for an older
// generation (a debounce expiry, a fade-out completion) sees the mismatch
// and drops itself. Animation callbacks carry their own sequence number so
// steps from a replaced animation never touch the surface.
type Controller struct {
	surface    Surface
	dispatcher Dispatcher
	clock      Clock
	animator   Animator
	logger     zerolog.Logger

	mu          sync.Mutex
	gen         uint64
	target      bool
	state       State
	pending     Timer
	anim        Animation
	animSeq     uint64
	finishedSeq uint64
	disposed    bool
}

// NewController returns an idle controller. Surface calls are made only
// through dispatcher.
func NewController(surface Surface, dispatcher Dispatcher, clock Clock, animator Animator, logger zerolog.Logger) *Controller {
	if clock == nil {
		clock = SystemClock{}
	}
	if animator == nil {
		animator = NewTween()
	}
	return &Controller{
		surface:    surface,
		dispatcher: dispatcher,
		clock:      clock,
		animator:   animator,
		logger:     logger,
	}
}

// RequestVisibility records visible as the target and restarts the debounce
// window. Only the last request of a burst produces a transition. Safe to
// call from any goroutine.
func (c *Controller) RequestVisibility(visible bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}

	c.target = visible
	c.gen++
	gen := c.gen
	if c.pending != nil {
		c.pending.Stop()
	}
	c.state = Pending
	c.pending = c.clock.AfterFunc(DebounceInterval, func() {
		c.dispatcher.Post(func() { c.transition(gen) })
	})
	c.logger.Debug().Bool("visible", visible).Uint64("gen", gen).Msg("visibility requested")
}

// transition runs on the dispatcher once the debounce window for gen ends.
func (c *Controller) transition(gen uint64) {
	c.mu.Lock()
	if c.disposed || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	if c.anim != nil {
		c.anim.Stop()
		c.anim = nil
	}
	c.animSeq++
	seq := c.animSeq
	visible := c.target
	c.state = Transitioning
	c.mu.Unlock()

	from := c.surface.Opacity()
	to := 0.0
	d := FadeOutDuration
	if visible {
		if !c.surface.Visible() {
			c.surface.SetOpacity(0)
			c.surface.SetVisible()
			from = 0
		}
		to = 1
		d = FadeInDuration
	}
	c.logger.Debug().
		Bool("visible", visible).
		Float64("from", from).
		Float64("to", to).
		Msg("fade started")

	anim := c.animator.Animate(from, to, d,
		func(v float64) {
			c.dispatcher.Post(func() { c.step(seq, v) })
		},
		func() {
			c.dispatcher.Post(func() { c.finish(gen, seq, visible) })
		},
	)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed || seq != c.animSeq {
		anim.Stop()
		return
	}
	if c.finishedSeq != seq {
		c.anim = anim
	}
}

func (c *Controller) step(seq uint64, v float64) {
	c.mu.Lock()
	live := !c.disposed && seq == c.animSeq
	c.mu.Unlock()
	if live {
		c.surface.SetOpacity(v)
	}
}

// finish handles the end of animation seq, started for generation gen.
func (c *Controller) finish(gen, seq uint64, visible bool) {
	c.mu.Lock()
	if c.disposed || seq != c.animSeq {
		c.mu.Unlock()
		return
	}
	c.anim = nil
	c.finishedSeq = seq
	current := gen == c.gen
	if current {
		c.state = Idle
	}
	// A fade-out only hides if no newer request exists, even one that is
	// still debouncing.
	hide := !visible && current && !c.target
	c.mu.Unlock()

	if visible {
		c.surface.SetOpacity(1)
		return
	}
	if hide {
		c.surface.SetHidden()
		c.surface.SetOpacity(0)
		c.logger.Debug().Msg("indicator hidden")
	}
}

// State reports where the controller is in its cycle.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Target returns the most recently requested visibility.
func (c *Controller) Target() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// Dispose cancels the pending debounce and any running animation. No
// surface call is made for work scheduled before Dispose, other than one
// already executing. Further requests are ignored.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.disposed = true
	c.gen++
	c.animSeq++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	if c.anim != nil {
		c.anim.Stop()
		c.anim = nil
	}
	c.state = Idle
}
