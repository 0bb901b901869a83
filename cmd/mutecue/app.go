package main

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Danondso/mutecue/internal/chime"
	"github.com/Danondso/mutecue/internal/config"
	"github.com/Danondso/mutecue/internal/hotkey"
	"github.com/Danondso/mutecue/internal/logging"
	"github.com/Danondso/mutecue/internal/mic"
	"github.com/Danondso/mutecue/internal/overlay"
	"github.com/Danondso/mutecue/internal/tui"
)

// app holds the running components that react to mute and config changes.
// indicator and program are nil in headless mode.
type app struct {
	hook      *hotkey.Hook
	overlay   *overlay.Controller
	chime     *chime.Player
	indicator *tui.Indicator
	program   *tea.Program
	logger    zerolog.Logger
}

// start launches the mute and config watchers.
func (a *app) start(ctx context.Context, g *errgroup.Group, backend mic.Backend, cfgPath string) {
	micLog := logging.Component(a.logger, "mic")
	g.Go(func() error {
		first := true
		err := mic.Watch(ctx, backend, func(muted bool) {
			a.onMuteChanged(muted, first)
			first = false
		}, micLog)
		return ignoreCanceled(err)
	})

	cfgLog := logging.Component(a.logger, "config")
	g.Go(func() error {
		if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
			cfgLog.Warn().Err(err).Msg("config dir, reload disabled")
			return nil
		}
		err := config.Watch(ctx, cfgPath, a.applyConfig, cfgLog)
		if ignoreCanceled(err) != nil {
			cfgLog.Warn().Err(err).Msg("config watch stopped")
		}
		return nil
	})
}

// onMuteChanged drives the indicator. The chime is skipped for the
// initial state read at startup.
func (a *app) onMuteChanged(muted, initial bool) {
	a.logger.Info().Bool("muted", muted).Msg("microphone state")
	a.overlay.RequestVisibility(muted)
	if !initial {
		a.chime.Play(muted)
	}
	if a.program != nil {
		a.program.Send(tui.MuteChangedMsg{Muted: muted})
	}
}

// applyConfig hot-swaps settings from a reloaded config file.
func (a *app) applyConfig(cfg *config.Config) {
	combo, err := cfg.HotkeyCombination()
	switch {
	case err != nil:
		a.logger.Warn().Err(err).Msg("reloaded hotkey is invalid, keeping current")
	case !combo.Equal(a.hook.Combination()):
		if err := a.hook.UpdateCombination(combo); err != nil {
			a.logger.Warn().Err(err).Msg("update hotkey")
		} else {
			a.logger.Info().Str("hotkey", combo.String()).Msg("hotkey changed")
		}
	}

	a.chime.SetEnabled(cfg.Audio.ChimeEnabled)
	if a.indicator != nil {
		a.indicator.Apply(cfg.Overlay)
	}
	if a.program != nil {
		a.program.Send(tui.ConfigReloadedMsg{Config: cfg})
	}
}

// shutdown stops the workers, then the overlay, then the hook.
func (a *app) shutdown(cancel context.CancelFunc, g *errgroup.Group) error {
	cancel()
	a.overlay.Dispose()
	err := g.Wait()
	if cerr := a.hook.Close(); err == nil {
		err = cerr
	}
	return err
}
