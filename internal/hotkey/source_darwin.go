//go:build darwin

package hotkey

import (
	"sync"

	"github.com/pkg/errors"
	hook "github.com/robotn/gohook"
	"github.com/rs/zerolog"

	"github.com/Danondso/mutecue/internal/keys"
)

// extendedCodes maps libuiohook virtual codes that differ from the Linux
// numbering. Codes below 0x59 already share it.
var extendedCodes = map[uint16]keys.Code{
	0x0E1C: 96,  // keypad enter
	0x0E1D: 97,  // right ctrl
	0x0E38: 100, // right alt
	0x0E47: 102, // home
	0xE048: 103, // up
	0x0E49: 104, // page up
	0xE04B: 105, // left
	0xE04D: 106, // right
	0x0E4F: 107, // end
	0xE050: 108, // down
	0x0E51: 109, // page down
	0x0E52: 110, // insert
	0x0E53: 111, // delete
	0x0E5B: 125, // left meta (command)
	0x0E5C: 126, // right meta (command)
}

// GohookSource listens to the global key stream through libuiohook. The
// process needs Accessibility permission. libuiohook only observes events,
// so Suppress verdicts are ignored and the chord still reaches the
// focused application.
type GohookSource struct {
	Logger zerolog.Logger

	mu   sync.Mutex
	next Handle
	cur  Handle
	stop chan struct{}
}

// Install starts the libuiohook event loop.
func (s *GohookSource) Install(cb Callback) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return 0, errors.New("gohook source already installed")
	}

	evChan := hook.Start()
	if evChan == nil {
		return 0, errors.New("start gohook event loop (grant Accessibility permissions in System Settings > Privacy & Security)")
	}
	stop := make(chan struct{})
	s.stop = stop
	s.next++
	s.cur = s.next

	go func() {
		for {
			select {
			case <-stop:
				return
			case ev, ok := <-evChan:
				if !ok {
					return
				}
				if e, ok := eventFromHook(ev); ok {
					cb(e)
				}
			}
		}
	}()

	s.Logger.Info().Msg("listening on global key stream")
	return s.cur, nil
}

// Uninstall stops the event loop.
func (s *GohookSource) Uninstall(h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop == nil || h != s.cur {
		return nil
	}
	close(s.stop)
	s.stop = nil
	hook.End()
	return nil
}

// eventFromHook converts a libuiohook event. KeyHold is the physical press
// and repeats while held; KeyDown is the synthesized "typed" event and is
// dropped so a press is not counted twice.
func eventFromHook(ev hook.Event) (Event, bool) {
	switch ev.Kind {
	case hook.KeyHold:
		return Event{Kind: KeyDown, Code: codeFromVC(ev.Keycode)}, true
	case hook.KeyUp:
		return Event{Kind: KeyUp, Code: codeFromVC(ev.Keycode)}, true
	}
	return Event{}, false
}

func codeFromVC(vc uint16) keys.Code {
	if c, ok := extendedCodes[vc]; ok {
		return c
	}
	return keys.Code(vc)
}
