// Package chime plays short audible cues when the microphone is muted or
// unmuted.
package chime

import (
	"bytes"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// SampleRate is the speaker rate. Every cue is converted to it.
const SampleRate = 44100

// Player manages audio chime playback.
type Player struct {
	mutedData   []byte
	unmutedData []byte
	enabled     atomic.Bool
	logger      zerolog.Logger
	initOnce    sync.Once
	initErr     error
}

// New creates a Player. If mutePath/unmutePath are empty, generated tones
// are used. Custom files must be 16-bit WAV; they are mixed down to mono and
// resampled to SampleRate. If enabled is false, playback is a no-op.
func New(mutePath, unmutePath string, enabled bool, logger zerolog.Logger) (*Player, error) {
	p := &Player{logger: logger}
	p.enabled.Store(enabled)

	var err error
	if p.mutedData, err = load(mutePath, mutedTone); err != nil {
		return nil, errors.Wrap(err, "mute chime")
	}
	if p.unmutedData, err = load(unmutePath, unmutedTone); err != nil {
		return nil, errors.Wrap(err, "unmute chime")
	}
	return p, nil
}

func load(path string, fallback func(int) ([]byte, error)) ([]byte, error) {
	if path == "" {
		return fallback(SampleRate)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	out, err := normalize(data, SampleRate)
	if err != nil {
		return nil, errors.Wrapf(err, "convert %s", path)
	}
	return out, nil
}

// SetEnabled turns playback on or off.
func (p *Player) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

// Enabled reports whether cues are played.
func (p *Player) Enabled() bool {
	return p.enabled.Load()
}

func (p *Player) initSpeaker(format beep.Format) {
	p.initOnce.Do(func() {
		p.initErr = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
	})
}

func (p *Player) play(data []byte) {
	if !p.enabled.Load() || len(data) == 0 {
		return
	}

	go func() {
		streamer, format, err := wav.Decode(bytes.NewReader(data))
		if err != nil {
			p.logger.Warn().Err(err).Msg("chime wav decode")
			return
		}
		defer streamer.Close()

		p.initSpeaker(format)
		if p.initErr != nil {
			p.logger.Warn().Err(p.initErr).Msg("chime speaker init")
			return
		}

		done := make(chan struct{})
		speaker.Play(beep.Seq(streamer, beep.Callback(func() {
			close(done)
		})))
		<-done
	}()
}

// PlayMuted plays the falling "muted" cue (non-blocking).
func (p *Player) PlayMuted() {
	p.play(p.mutedData)
}

// PlayUnmuted plays the rising "unmuted" cue (non-blocking).
func (p *Player) PlayUnmuted() {
	p.play(p.unmutedData)
}

// Play plays the cue for the given mute state.
func (p *Player) Play(muted bool) {
	if muted {
		p.PlayMuted()
		return
	}
	p.PlayUnmuted()
}
