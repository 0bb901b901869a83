package main

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/Danondso/mutecue/internal/chime"
	"github.com/Danondso/mutecue/internal/config"
	"github.com/Danondso/mutecue/internal/hotkey"
	"github.com/Danondso/mutecue/internal/overlay"
	"github.com/Danondso/mutecue/internal/tui"
)

type nopSource struct{ installs int }

func (s *nopSource) Install(hotkey.Callback) (hotkey.Handle, error) {
	s.installs++
	return hotkey.Handle(s.installs), nil
}

func (s *nopSource) Uninstall(hotkey.Handle) error { return nil }

type inlineDispatcher struct{}

func (inlineDispatcher) Post(fn func()) { fn() }

func newTestApp(t *testing.T) *app {
	t.Helper()
	hk, err := hotkey.Install(&nopSource{}, hotkey.DefaultCombination(), func() {}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = hk.Close() })

	player, err := chime.New("", "", false, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	ind := tui.NewIndicator(config.Default().Overlay)
	ctrl := overlay.NewController(ind, inlineDispatcher{}, nil, nil, zerolog.Nop())
	t.Cleanup(ctrl.Dispose)

	return &app{
		hook:      hk,
		overlay:   ctrl,
		chime:     player,
		indicator: ind,
		logger:    zerolog.Nop(),
	}
}

func TestApplyConfigSwapsHotkey(t *testing.T) {
	a := newTestApp(t)
	cfg := config.Default()
	cfg.Hotkey.Modifiers = []string{"ctrl", "alt"}
	cfg.Hotkey.Key = "KEY_M"
	cfg.Audio.ChimeEnabled = true
	cfg.Overlay.Position = "bottom-left"

	a.applyConfig(cfg)

	if got := a.hook.Combination().String(); got != "Ctrl+Alt+M" {
		t.Errorf("hotkey = %s, want Ctrl+Alt+M", got)
	}
	if !a.chime.Enabled() {
		t.Error("expected chime enabled")
	}
	if a.indicator.Anchor() != "bottom-left" {
		t.Errorf("anchor = %q, want bottom-left", a.indicator.Anchor())
	}
}

func TestApplyConfigKeepsHotkeyOnError(t *testing.T) {
	a := newTestApp(t)
	cfg := config.Default()
	cfg.Hotkey.Modifiers = []string{"KEY_M"}

	a.applyConfig(cfg)

	if !a.hook.Combination().Equal(hotkey.DefaultCombination()) {
		t.Errorf("hotkey = %s, want default kept", a.hook.Combination())
	}
}

func TestOnMuteChangedRequestsVisibility(t *testing.T) {
	a := newTestApp(t)
	a.onMuteChanged(true, true)
	if !a.overlay.Target() {
		t.Error("expected indicator requested visible")
	}
	if a.overlay.State() != overlay.Pending {
		t.Errorf("state = %v, want pending", a.overlay.State())
	}
	a.onMuteChanged(false, false)
	if a.overlay.Target() {
		t.Error("expected indicator requested hidden")
	}
}
