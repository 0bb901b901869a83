//go:build darwin

package main

import (
	"github.com/gordonklaus/portaudio"
	"github.com/rs/zerolog"

	"github.com/Danondso/mutecue/internal/config"
	"github.com/Danondso/mutecue/internal/hotkey"
)

// newSource returns the global key stream. Device and grab settings only
// apply to Linux.
func newSource(_ *config.Config, logger zerolog.Logger) hotkey.Source {
	return &hotkey.GohookSource{Logger: logger}
}

// initPortAudio initializes PortAudio. CoreAudio does not print ALSA/JACK
// noise, so stderr is left alone.
func initPortAudio() error {
	return portaudio.Initialize()
}
