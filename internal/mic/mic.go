// Package mic reads, toggles and watches the mute state of the default
// input device.
package mic

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ErrUnavailable is returned when the audio system cannot be reached, for
// example when its command-line tool is not installed.
var ErrUnavailable = errors.New("audio system unavailable")

// Backend talks to the platform audio system.
type Backend interface {
	// Muted reports whether the default input device is muted.
	Muted(ctx context.Context) (bool, error)
	// Toggle flips the mute state of the default input device.
	Toggle(ctx context.Context) error
	// Watch blocks until ctx is done, calling changed from a single
	// goroutine whenever the mute state or the default device may have
	// changed. Spurious calls are allowed.
	Watch(ctx context.Context, changed func()) error
}

// Watch reports the mute state to onMuteChanged: once for the first
// successful read, then only when the state actually changes. Failed reads
// are logged and treated as no change. It blocks until ctx is done.
func Watch(ctx context.Context, b Backend, onMuteChanged func(muted bool), logger zerolog.Logger) error {
	t := &tracker{backend: b, report: onMuteChanged, logger: logger}
	t.check(ctx)
	err := b.Watch(ctx, func() { t.check(ctx) })
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return errors.Wrap(err, "watch mute state")
}

// tracker de-duplicates mute reads. check is only called from one goroutine
// at a time.
type tracker struct {
	backend Backend
	report  func(bool)
	logger  zerolog.Logger

	known bool
	last  bool
}

func (t *tracker) check(ctx context.Context) {
	muted, err := t.backend.Muted(ctx)
	if err != nil {
		if ctx.Err() == nil {
			t.logger.Debug().Err(err).Msg("read mute state")
		}
		return
	}
	if t.known && muted == t.last {
		return
	}
	t.known = true
	t.last = muted
	t.logger.Info().Bool("muted", muted).Msg("microphone mute changed")
	t.report(muted)
}
