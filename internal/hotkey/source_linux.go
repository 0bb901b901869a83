//go:build linux

package hotkey

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	evdev "github.com/holoplot/go-evdev"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Danondso/mutecue/internal/keys"
)

// virtualKeyboardName is the name of the uinput clone that re-emits the
// events a grabbed keyboard does not suppress.
const virtualKeyboardName = "mutecue virtual keyboard"

// EvdevSource reads a keyboard through /dev/input. With Grab set it takes
// the device exclusively and forwards every unsuppressed event through a
// uinput clone, which is what lets the hook consume the chord. Without Grab
// events are only observed and Suppress has no effect.
type EvdevSource struct {
	// DevicePath selects a device; empty auto-detects the first keyboard.
	DevicePath string
	Grab       bool
	Logger     zerolog.Logger

	mu   sync.Mutex
	next Handle
	cur  *evdevSession
}

type evdevSession struct {
	handle Handle
	dev    *evdev.InputDevice
	out    *evdev.InputDevice

	mu     sync.Mutex
	closed bool
}

// Install opens the keyboard and starts delivering its key events to cb.
func (s *EvdevSource) Install(cb Callback) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur != nil {
		return 0, errors.New("evdev source already installed")
	}

	dev, err := FindKeyboard(s.DevicePath)
	if err != nil {
		return 0, err
	}
	name, _ := dev.Name()

	sess := &evdevSession{dev: dev}
	if s.Grab {
		if err := dev.Grab(); err != nil {
			_ = dev.Close()
			return 0, errors.Wrapf(err, "grab %s", dev.Path())
		}
		out, err := evdev.CloneDevice(virtualKeyboardName, dev)
		if err != nil {
			_ = dev.Ungrab()
			_ = dev.Close()
			return 0, errors.Wrap(err, "create uinput keyboard (is /dev/uinput writable?)")
		}
		sess.out = out
	}

	s.next++
	sess.handle = s.next
	s.cur = sess

	s.Logger.Info().
		Str("device", dev.Path()).
		Str("name", name).
		Bool("grab", s.Grab).
		Msg("listening on keyboard")

	go s.run(sess, cb)
	return sess.handle, nil
}

func (s *EvdevSource) run(sess *evdevSession, cb Callback) {
	for {
		ev, err := sess.dev.ReadOne()
		if err != nil {
			if sess.isClosed() || os.IsNotExist(err) ||
				strings.Contains(err.Error(), "file already closed") ||
				strings.Contains(err.Error(), "bad file descriptor") {
				return
			}
			s.Logger.Error().Err(err).Msg("read keyboard event")
			return
		}

		verdict := Pass
		if e, ok := eventFromInput(ev); ok {
			verdict = cb(e)
		}
		if sess.out == nil || verdict == Suppress {
			continue
		}
		if err := sess.out.WriteOne(ev); err != nil && !sess.isClosed() {
			s.Logger.Warn().Err(err).Msg("forward keyboard event")
		}
	}
}

// Uninstall releases the grab and closes both devices.
func (s *EvdevSource) Uninstall(h Handle) error {
	s.mu.Lock()
	sess := s.cur
	if sess == nil || sess.handle != h {
		s.mu.Unlock()
		return nil
	}
	s.cur = nil
	s.mu.Unlock()

	sess.mu.Lock()
	sess.closed = true
	sess.mu.Unlock()

	var firstErr error
	if sess.out != nil {
		if err := sess.dev.Ungrab(); err != nil {
			firstErr = errors.Wrap(err, "ungrab keyboard")
		}
	}
	if err := sess.dev.Close(); err != nil && firstErr == nil {
		firstErr = errors.Wrap(err, "close keyboard")
	}
	if sess.out != nil {
		if err := sess.out.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrap(err, "close uinput keyboard")
		}
	}
	return firstErr
}

func (sess *evdevSession) isClosed() bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.closed
}

// eventFromInput converts an EV_KEY input event. Value 1 is a press, 2 an
// auto-repeat and 0 a release.
func eventFromInput(ev *evdev.InputEvent) (Event, bool) {
	if ev.Type != evdev.EV_KEY {
		return Event{}, false
	}
	switch ev.Value {
	case 0:
		return Event{Kind: KeyUp, Code: keys.Code(ev.Code)}, true
	case 1, 2:
		return Event{Kind: KeyDown, Code: keys.Code(ev.Code)}, true
	}
	return Event{}, false
}

// FindKeyboard opens a specific device path, or auto-detects a keyboard
// by scanning /dev/input/event* for devices that support letter keys.
// Our own uinput clone is skipped.
func FindKeyboard(devicePath string) (*evdev.InputDevice, error) {
	if devicePath != "" {
		dev, err := evdev.Open(devicePath)
		if err != nil {
			return nil, errors.Wrapf(err, "open device %s", devicePath)
		}
		return dev, nil
	}

	matches, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return nil, errors.Wrap(err, "glob /dev/input/event*")
	}

	// Sort numerically so event7 comes before event10
	sort.Slice(matches, func(i, j int) bool {
		ni, _ := strconv.Atoi(strings.TrimPrefix(matches[i], "/dev/input/event"))
		nj, _ := strconv.Atoi(strings.TrimPrefix(matches[j], "/dev/input/event"))
		return ni < nj
	})

	for _, path := range matches {
		dev, err := evdev.Open(path)
		if err != nil {
			continue
		}
		if name, _ := dev.Name(); name != virtualKeyboardName && isKeyboard(dev) {
			return dev, nil
		}
		_ = dev.Close()
	}

	return nil, errors.New("no keyboard device found in /dev/input/event* (is the user in the input group?)")
}

// isKeyboard reports whether the device has letter keys and no relative
// axes, which rules out power buttons and mice.
func isKeyboard(dev *evdev.InputDevice) bool {
	for _, evType := range dev.CapableTypes() {
		if evType == evdev.EV_REL {
			return false
		}
	}
	return hasLetterKeys(dev.CapableEvents(evdev.EV_KEY))
}

func hasLetterKeys(codes []evdev.EvCode) bool {
	hasA, hasZ := false, false
	for _, code := range codes {
		switch keys.Code(code) {
		case keys.CodeA:
			hasA = true
		case keys.CodeZ:
			hasZ = true
		}
	}
	return hasA && hasZ
}
