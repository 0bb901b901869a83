//go:build darwin

package mic

import (
	"context"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// restoreVolume is used when unmuting an input that was muted before we
// started.
const restoreVolume = 75

// OSAScript treats an input volume of zero as muted. macOS has no mute
// notification for input devices, so Watch polls.
type OSAScript struct {
	Logger   zerolog.Logger
	Interval time.Duration

	mu   sync.Mutex
	prev int
}

// NewBackend returns the osascript backend.
func NewBackend(logger zerolog.Logger) Backend {
	return &OSAScript{Logger: logger, Interval: 500 * time.Millisecond}
}

func (o *OSAScript) run(ctx context.Context, script string) (string, error) {
	out, err := exec.CommandContext(ctx, "osascript", "-e", script).Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", errors.Wrap(ErrUnavailable, "osascript not found")
		}
		return "", errors.Wrap(err, "osascript")
	}
	return string(out), nil
}

func (o *OSAScript) volume(ctx context.Context) (int, error) {
	out, err := o.run(ctx, "input volume of (get volume settings)")
	if err != nil {
		return 0, err
	}
	return parseInputVolume(out)
}

func (o *OSAScript) Muted(ctx context.Context) (bool, error) {
	v, err := o.volume(ctx)
	if err != nil {
		return false, err
	}
	return v == 0, nil
}

// Toggle sets the input volume to zero, or back to the level it had before
// the last mute.
func (o *OSAScript) Toggle(ctx context.Context) error {
	v, err := o.volume(ctx)
	if err != nil {
		return err
	}

	o.mu.Lock()
	next := 0
	if v == 0 {
		next = o.prev
		if next <= 0 {
			next = restoreVolume
		}
	} else {
		o.prev = v
	}
	o.mu.Unlock()

	_, err = o.run(ctx, "set volume input volume "+strconv.Itoa(next))
	return err
}

func (o *OSAScript) Watch(ctx context.Context, changed func()) error {
	ticker := time.NewTicker(o.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			changed()
		}
	}
}

// DeviceName returns the PortAudio name of the default input device.
func DeviceName() string {
	return portaudioDeviceName()
}
