// Package overlay drives the mute indicator: it debounces visibility
// requests and fades the indicator surface in and out.
package overlay

import "time"

// Controller tuning.
const (
	DebounceInterval = 120 * time.Millisecond
	FadeInDuration   = 160 * time.Millisecond
	FadeOutDuration  = 160 * time.Millisecond
)

// Surface is the indicator being shown. Opacity is relative to the
// surface's own configured base opacity: 1 means fully shown. All methods
// are called on the surface's Dispatcher.
type Surface interface {
	SetOpacity(v float64)
	SetVisible()
	SetHidden()
	Opacity() float64
	Visible() bool
}

// Dispatcher runs functions on the execution context that owns a Surface.
// Functions run in the order they were posted.
type Dispatcher interface {
	Post(fn func())
}

// Timer is a pending AfterFunc call.
type Timer interface {
	Stop() bool
}

// Clock schedules delayed calls.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Animation is an in-flight opacity animation.
type Animation interface {
	Stop()
}

// Animator interpolates a value from one opacity to another. step receives
// intermediate values and done is called once after the final step. Neither
// is called after Stop returns, though a call already in progress may finish.
type Animator interface {
	Animate(from, to float64, d time.Duration, step func(float64), done func()) Animation
}

// State is the controller's position in its request cycle.
type State int

const (
	Idle State = iota
	Pending
	Transitioning
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Transitioning:
		return "transitioning"
	}
	return "idle"
}
