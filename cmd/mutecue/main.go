package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"github.com/gordonklaus/portaudio"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Danondso/mutecue/internal/autostart"
	"github.com/Danondso/mutecue/internal/chime"
	"github.com/Danondso/mutecue/internal/config"
	"github.com/Danondso/mutecue/internal/hotkey"
	"github.com/Danondso/mutecue/internal/logging"
	"github.com/Danondso/mutecue/internal/mic"
	"github.com/Danondso/mutecue/internal/overlay"
	"github.com/Danondso/mutecue/internal/tui"
)

const appName = "mutecue"

// micCheckerAdapter adapts the package-level mic device functions to the
// tui.MicChecker interface.
type micCheckerAdapter struct{}

func (micCheckerAdapter) MicAvailable() bool {
	return mic.DeviceAvailable()
}

func (micCheckerAdapter) MicName() string {
	return mic.DeviceName()
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) > 0 && args[0] == "autostart" {
		return handleAutostart(args[1:])
	}

	fs := flag.NewFlagSet(appName, flag.ExitOnError)
	debug := fs.Bool("debug", false, "enable debug logging")
	headless := fs.Bool("headless", false, "run without the terminal panel")
	cfgPath := fs.String("config", config.DefaultPath(), "config file path")
	_ = fs.Parse(args)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return errors.Wrap(err, "load config")
	}

	level := cfg.LogLevel
	if *debug {
		level = "debug"
	}
	var out io.Writer
	var logWriter *tui.LogWriter
	if *headless {
		out = logging.Console(os.Stderr)
	} else {
		logWriter = tui.NewLogWriter()
		out = logWriter
	}
	logger, err := logging.New(out, level)
	if err != nil {
		return errors.Wrap(err, "log_level")
	}

	// PortAudio is only used for the device name and availability check.
	if err := initPortAudio(); err != nil {
		logger.Warn().Err(err).Msg("portaudio init")
	} else {
		defer func() { _ = portaudio.Terminate() }()
	}

	store := config.Store{Path: *cfgPath}
	combo, err := store.LoadHotkeyCombination()
	if err != nil {
		logger.Warn().Err(err).Str("hotkey", combo.String()).Msg("invalid hotkey in config, using default")
	}

	player, err := chime.New(cfg.Audio.ChimeMute, cfg.Audio.ChimeUnmute, cfg.Audio.ChimeEnabled, logging.Component(logger, "chime"))
	if err != nil {
		logger.Warn().Err(err).Msg("custom chime, using generated tones")
		if player, err = chime.New("", "", cfg.Audio.ChimeEnabled, logging.Component(logger, "chime")); err != nil {
			return errors.Wrap(err, "create chime player")
		}
	}

	backend := mic.NewBackend(logging.Component(logger, "mic"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	// The hook callback must not block, so toggles are handed to a worker.
	// A toggle requested while one is queued is dropped.
	toggles := make(chan struct{}, 1)
	requestToggle := func() {
		select {
		case toggles <- struct{}{}:
		default:
		}
	}
	g.Go(func() error {
		toggleWorker(gctx, backend, toggles, logging.Component(logger, "mic"))
		return nil
	})

	hk, err := hotkey.Install(newSource(cfg, logging.Component(logger, "hotkey")), combo, requestToggle, logging.Component(logger, "hotkey"))
	if err != nil {
		_ = beeep.Notify(appName, "Could not install the global hotkey: "+err.Error(), "")
		cancel()
		_ = g.Wait()
		return errors.Wrap(err, "install hotkey")
	}
	defer func() { _ = hk.Close() }()
	logger.Info().Str("hotkey", hk.Combination().String()).Msg("hotkey installed")

	as := autostart.New(appName, "-headless")
	if err := autostart.Set(as, cfg.RunAtStartup); err != nil {
		logger.Warn().Err(err).Msg("run at startup")
	}

	a := &app{
		hook:   hk,
		chime:  player,
		logger: logger,
	}

	if *headless {
		loop := overlay.NewLoop(64)
		a.overlay = overlay.NewController(overlay.NewLogSurface(logging.Component(logger, "overlay")), loop, nil, nil, logging.Component(logger, "overlay"))
		g.Go(func() error { return ignoreCanceled(loop.Run(gctx)) })
		a.start(gctx, g, backend, *cfgPath)

		sigCtx, stop := signal.NotifyContext(gctx, os.Interrupt, syscall.SIGTERM)
		<-sigCtx.Done()
		stop()
		logger.Info().Msg("shutting down")
		return a.shutdown(cancel, g)
	}

	tui.RegisterCustomThemes(cfg.CustomThemes)
	ind := tui.NewIndicator(cfg.Overlay)
	model := tui.NewModel(cfg, store, ind, hk, requestToggle, as, micCheckerAdapter{}, logging.Component(logger, "tui"), *debug)
	p := tea.NewProgram(model, tea.WithAltScreen())
	logWriter.Attach(p)

	a.indicator = ind
	a.program = p
	a.overlay = overlay.NewController(ind, tui.NewDispatcher(p), nil, nil, logging.Component(logger, "overlay"))
	a.start(gctx, g, backend, *cfgPath)

	if _, err := p.Run(); err != nil {
		_ = a.shutdown(cancel, g)
		return errors.Wrap(err, "TUI")
	}
	return a.shutdown(cancel, g)
}

func toggleWorker(ctx context.Context, b mic.Backend, toggles <-chan struct{}, logger zerolog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-toggles:
			if err := b.Toggle(ctx); err != nil && ctx.Err() == nil {
				logger.Warn().Err(err).Msg("toggle mute")
			}
		}
	}
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// handleAutostart implements "mutecue autostart on|off|status".
func handleAutostart(args []string) error {
	fs := flag.NewFlagSet(appName+" autostart", flag.ExitOnError)
	cfgPath := fs.String("config", config.DefaultPath(), "config file path")
	_ = fs.Parse(args)

	as := autostart.New(appName, "-headless")
	store := config.Store{Path: *cfgPath}

	var enabled bool
	switch fs.Arg(0) {
	case "on":
		enabled = true
	case "off":
		enabled = false
	case "status", "":
		state := "off"
		if as.IsEnabled() {
			state = "on"
		}
		fmt.Println("run at startup:", state)
		return nil
	default:
		return errors.Errorf("usage: %s autostart on|off|status", appName)
	}

	if err := autostart.Set(as, enabled); err != nil {
		return err
	}
	return errors.Wrap(store.Update(func(cfg *config.Config) { cfg.RunAtStartup = enabled }), "save run_at_startup")
}
