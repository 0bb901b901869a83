//go:build linux

package mic

import (
	"bufio"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const defaultSource = "@DEFAULT_SOURCE@"

// Pactl controls the default source through pactl, which works with both
// PulseAudio and PipeWire.
type Pactl struct {
	Logger zerolog.Logger
	// RetryDelay is the pause before restarting a failed subscription.
	RetryDelay time.Duration
}

// NewBackend returns the pactl backend.
func NewBackend(logger zerolog.Logger) Backend {
	return &Pactl{Logger: logger, RetryDelay: 2 * time.Second}
}

func (p *Pactl) output(ctx context.Context, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, "pactl", args...).Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", errors.Wrap(ErrUnavailable, "pactl not found")
		}
		return "", errors.Wrapf(err, "pactl %s", strings.Join(args, " "))
	}
	return string(out), nil
}

func (p *Pactl) Muted(ctx context.Context) (bool, error) {
	out, err := p.output(ctx, "get-source-mute", defaultSource)
	if err != nil {
		return false, err
	}
	return parseMuteOutput(out)
}

func (p *Pactl) Toggle(ctx context.Context) error {
	_, err := p.output(ctx, "set-source-mute", defaultSource, "toggle")
	return err
}

// Watch runs `pactl subscribe` and restarts it if the audio server goes
// away. After a restart changed is called once, since events may have been
// missed.
func (p *Pactl) Watch(ctx context.Context, changed func()) error {
	for {
		err := p.subscribe(ctx, changed)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, ErrUnavailable) {
			return err
		}
		p.Logger.Warn().Err(err).Dur("retry", p.RetryDelay).Msg("pactl subscribe stopped")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.RetryDelay):
		}
		changed()
	}
}

func (p *Pactl) subscribe(ctx context.Context, changed func()) error {
	cmd := exec.CommandContext(ctx, "pactl", "subscribe")
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, "pactl subscribe pipe")
	}
	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return errors.Wrap(ErrUnavailable, "pactl not found")
		}
		return errors.Wrap(err, "start pactl subscribe")
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		if isSourceEvent(scanner.Text()) {
			changed()
		}
	}
	if err := cmd.Wait(); err != nil {
		return errors.Wrap(err, "pactl subscribe")
	}
	return errors.New("pactl subscribe exited")
}

// sourceDescription returns the description of the default source, such as
// "Blue Yeti Analog Stereo", or "" when pactl cannot tell.
func sourceDescription() string {
	out, err := exec.Command("pactl", "get-default-source").Output()
	if err != nil {
		return ""
	}
	name := strings.TrimSpace(string(out))
	if name == "" {
		return ""
	}
	out, err = exec.Command("pactl", "list", "sources").Output()
	if err != nil {
		return ""
	}
	return parseSourceDescription(string(out), name)
}

// DeviceName returns a human-readable name for the default input device.
// pactl descriptions are preferred over the PortAudio device name.
func DeviceName() string {
	if name := sourceDescription(); name != "" {
		return name
	}
	return portaudioDeviceName()
}
