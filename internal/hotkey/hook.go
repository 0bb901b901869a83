package hotkey

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Danondso/mutecue/internal/keys"
)

var (
	// ErrClosed is returned by operations on a Hook after Close.
	ErrClosed = errors.New("hotkey hook is closed")
	// ErrInstall wraps failures to register with the input source.
	ErrInstall = errors.New("install keyboard hook")
)

// Hook tracks held keys from a Source and fires an action when they match
// the active Combination.
//
// The held-key set and match flag belong to the source's callback goroutine.
// UpdateCombination never touches them directly: it posts the new
// combination on a one-slot channel that the callback drains on its next
// turn, and publishes it through an atomic pointer for readers.
type Hook struct {
	src    Source
	action func()
	logger zerolog.Logger

	active atomic.Pointer[Combination]
	swaps  chan Combination
	closed atomic.Bool

	mu     sync.Mutex // serializes install, swap and close
	handle Handle

	// Owned by the callback goroutine.
	combo   Combination
	held    keys.Set
	matched bool
}

// Install registers a hook on src that calls action each time the held keys
// become exactly combo. action runs on the source's event goroutine and must
// return quickly. An install failure is returned wrapped in ErrInstall.
func Install(src Source, combo Combination, action func(), logger zerolog.Logger) (*Hook, error) {
	if combo.IsZero() {
		return nil, ErrEmptyCombination
	}
	if action == nil {
		action = func() {}
	}
	h := &Hook{
		src:    src,
		action: action,
		logger: logger,
		swaps:  make(chan Combination, 1),
		combo:  combo,
		held:   keys.NewSet(),
	}
	h.active.Store(&combo)

	handle, err := src.Install(h.onEvent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInstall, err)
	}
	h.handle = handle
	h.logger.Info().Str("combination", combo.String()).Msg("hotkey hook installed")
	return h, nil
}

// onEvent is the Callback handed to the source.
func (h *Hook) onEvent(ev Event) Verdict {
	if h.closed.Load() {
		return Pass
	}

	select {
	case c := <-h.swaps:
		h.combo = c
		h.held = keys.NewSet()
		h.matched = false
	default:
	}

	k := keys.Normalize(ev.Code)
	switch ev.Kind {
	case KeyDown:
		h.held.Add(k)
	case KeyUp:
		h.held.Remove(k)
	}

	if !h.combo.Matches(h.held) {
		h.matched = false
		return Pass
	}
	if !h.matched {
		h.matched = true
		h.logger.Debug().Str("combination", h.combo.String()).Msg("hotkey matched")
		h.action()
	}
	return Suppress
}

// Combination returns the active combination.
func (h *Hook) Combination() Combination {
	return *h.active.Load()
}

// UpdateCombination replaces the active combination and clears the held-key
// state. Safe to call from any goroutine.
func (h *Hook) UpdateCombination(c Combination) error {
	if c.IsZero() {
		return ErrEmptyCombination
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed.Load() {
		return ErrClosed
	}

	h.active.Store(&c)
	for {
		select {
		case h.swaps <- c:
			h.logger.Info().Str("combination", c.String()).Msg("hotkey updated")
			return h.reinstallLocked()
		default:
			// Drop the unconsumed older swap; the latest one wins.
			select {
			case <-h.swaps:
			default:
			}
		}
	}
}

func (h *Hook) reinstallLocked() error {
	r, ok := h.src.(Reinstaller)
	if !ok || !r.NeedsReinstall() {
		return nil
	}
	if err := h.src.Uninstall(h.handle); err != nil {
		h.logger.Warn().Err(err).Msg("uninstall before reinstall")
	}
	handle, err := h.src.Install(h.onEvent)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInstall, err)
	}
	h.handle = handle
	return nil
}

// Close uninstalls the hook. Callbacks delivered afterwards pass events
// through untouched. Closing twice is a no-op.
func (h *Hook) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed.Swap(true) {
		return nil
	}
	if err := h.src.Uninstall(h.handle); err != nil {
		return errors.Wrap(err, "uninstall keyboard hook")
	}
	h.logger.Info().Msg("hotkey hook removed")
	return nil
}
