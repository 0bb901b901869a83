package overlay

import (
	"sync"
	"time"
)

// frameInterval is roughly 60 frames per second.
const frameInterval = 16 * time.Millisecond

// EaseOutQuad decelerates toward the end: 1-(1-t)^2.
func EaseOutQuad(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	u := 1 - t
	return 1 - u*u
}

// Tween is an Animator that steps on a ticker goroutine.
type Tween struct {
	Interval time.Duration
	Ease     func(float64) float64
}

// NewTween returns a 60fps tween with quadratic ease-out.
func NewTween() *Tween {
	return &Tween{Interval: frameInterval, Ease: EaseOutQuad}
}

type tweenAnimation struct {
	stop chan struct{}
	once sync.Once
}

func (a *tweenAnimation) Stop() {
	a.once.Do(func() { close(a.stop) })
}

func (a *tweenAnimation) stopped() bool {
	select {
	case <-a.stop:
		return true
	default:
		return false
	}
}

// emit runs fn unless the animation has been stopped.
func (a *tweenAnimation) emit(fn func()) bool {
	if a.stopped() {
		return false
	}
	fn()
	return true
}

func (t *Tween) Animate(from, to float64, d time.Duration, step func(float64), done func()) Animation {
	interval := t.Interval
	if interval <= 0 {
		interval = frameInterval
	}
	ease := t.Ease
	if ease == nil {
		ease = EaseOutQuad
	}
	a := &tweenAnimation{stop: make(chan struct{})}

	go func() {
		if d <= 0 {
			a.emit(func() { step(to); done() })
			return
		}
		start := time.Now()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-a.stop:
				return
			case now := <-ticker.C:
				p := float64(now.Sub(start)) / float64(d)
				if p >= 1 {
					a.emit(func() { step(to); done() })
					return
				}
				v := from + (to-from)*ease(p)
				if !a.emit(func() { step(v) }) {
					return
				}
			}
		}
	}()
	return a
}
