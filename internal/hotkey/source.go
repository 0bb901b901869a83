package hotkey

import (
	"github.com/Danondso/mutecue/internal/keys"
)

// EventKind distinguishes key presses from releases. Auto-repeat is
// delivered as KeyDown.
type EventKind int

const (
	KeyDown EventKind = iota
	KeyUp
)

func (k EventKind) String() string {
	if k == KeyUp {
		return "up"
	}
	return "down"
}

// Event is one raw key event from a Source.
type Event struct {
	Kind EventKind
	Code keys.Code
}

// Verdict tells a Source what to do with the event it just delivered.
type Verdict int

const (
	// Pass forwards the event to the rest of the system.
	Pass Verdict = iota
	// Suppress consumes the event.
	Suppress
)

// Callback receives raw key events. A Source calls it from a single
// goroutine and must not deliver events concurrently.
type Callback func(Event) Verdict

// Handle identifies one installation on a Source.
type Handle uint64

// Source is a system-wide low-level keyboard event stream.
type Source interface {
	// Install starts delivering events to cb. It must not block waiting
	// for events.
	Install(cb Callback) (Handle, error)
	// Uninstall stops delivery for h. Events already in flight may still
	// reach the callback.
	Uninstall(h Handle) error
}

// Reinstaller is implemented by sources that must be registered again after
// the active combination changes.
type Reinstaller interface {
	NeedsReinstall() bool
}
