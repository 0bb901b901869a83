//go:build linux

package main

import (
	"os"

	"github.com/gordonklaus/portaudio"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"github.com/Danondso/mutecue/internal/config"
	"github.com/Danondso/mutecue/internal/hotkey"
)

func newSource(cfg *config.Config, logger zerolog.Logger) hotkey.Source {
	return &hotkey.EvdevSource{
		DevicePath: cfg.Hotkey.Device,
		Grab:       cfg.Hotkey.Grab,
		Logger:     logger,
	}
}

// initPortAudio suppresses ALSA/JACK noise during PortAudio initialization
// by temporarily redirecting stderr to /dev/null.
func initPortAudio() error {
	stderrFd := int(os.Stderr.Fd()) //nolint:gosec // fd fits in int on all supported platforms
	saved, err := unix.Dup(stderrFd)
	if err != nil {
		return portaudio.Initialize()
	}
	defer func() { _ = unix.Close(saved) }()

	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return portaudio.Initialize()
	}
	_ = unix.Dup3(int(devNull.Fd()), stderrFd, 0) //nolint:gosec // fd fits in int
	_ = devNull.Close()

	initErr := portaudio.Initialize()

	_ = unix.Dup3(saved, stderrFd, 0)
	return initErr
}
