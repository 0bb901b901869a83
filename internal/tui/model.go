// Package tui is the terminal status panel. Its update loop also owns the
// mute indicator that the overlay controller fades in and out.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Danondso/mutecue/internal/autostart"
	"github.com/Danondso/mutecue/internal/config"
	"github.com/Danondso/mutecue/internal/hotkey"
)

// MicChecker can report whether a microphone input device is available.
type MicChecker interface {
	MicAvailable() bool
	MicName() string
}

// HotkeyUpdater is the part of the global hook the panel edits.
type HotkeyUpdater interface {
	Combination() hotkey.Combination
	UpdateCombination(c hotkey.Combination) error
}

// Messages sent through the Bubble Tea update loop.

// MuteChangedMsg reports a new microphone mute state.
type MuteChangedMsg struct {
	Muted bool
}

// ConfigReloadedMsg carries a config file that changed on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// ErrorMsg shows an error in the panel for a few seconds.
type ErrorMsg struct {
	Err error
}

type errorTimeoutMsg struct{}

type hotkeySavedMsg struct {
	combo hotkey.Combination
	err   error
}

type autostartMsg struct {
	enabled bool
	err     error
}

// StatusCheckMsg carries the result of a microphone availability check.
type StatusCheckMsg struct {
	MicDetected   bool
	MicDeviceName string
}

type statusCheckTickMsg struct{}

// DebugEntry is a structured debug log entry.
type DebugEntry struct {
	Time     string // e.g. "11:27:53"
	Category string // component name, e.g. "hotkey", "mic"
	Message  string
}

// DebugLogMsg carries a structured debug log entry into the TUI.
type DebugLogMsg struct {
	Entry DebugEntry
}

const maxDebugLines = 50

// Model is the Bubble Tea model for the mutecue panel.
type Model struct {
	Config        *config.Config
	Store         config.Store
	Indicator     *Indicator
	Hook          HotkeyUpdater
	Toggle        func()
	Autostart     autostart.Autostart
	MicChecker    MicChecker
	Logger        zerolog.Logger
	DebugMode     bool
	DebugEntries  []DebugEntry
	Muted         bool
	MuteKnown     bool
	MicDetected   bool
	MicDeviceName string
	LastError     string
	Editing       bool
	statusChecked bool
	input         textinput.Model
	keys          keyMap
	theme         Theme
}

// NewModel creates the panel model. toggle is called when the user asks
// for a manual mute toggle.
func NewModel(cfg *config.Config, store config.Store, ind *Indicator, hook HotkeyUpdater, toggle func(), as autostart.Autostart, mc MicChecker, logger zerolog.Logger, debug bool) Model {
	ti := textinput.New()
	ti.Placeholder = "Super+Shift+M"
	ti.Prompt = "> "
	ti.CharLimit = 64

	theme := LoadTheme(cfg.Theme)
	applyTheme(theme)

	return Model{
		Config:     cfg,
		Store:      store,
		Indicator:  ind,
		Hook:       hook,
		Toggle:     toggle,
		Autostart:  as,
		MicChecker: mc,
		Logger:     logger,
		DebugMode:  debug,
		input:      ti,
		keys:       defaultKeyMap(),
		theme:      theme,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return m.statusCheckCmd()
}

// Update handles messages and transitions state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Editing {
			return m.updateEditing(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			if m.Toggle != nil {
				m.Toggle()
			}
		case key.Matches(msg, m.keys.Edit):
			if m.Hook == nil {
				return m, nil
			}
			m.Editing = true
			m.LastError = ""
			m.input.SetValue(m.Hook.Combination().String())
			m.input.CursorEnd()
			return m, m.input.Focus()
		case key.Matches(msg, m.keys.Autostart):
			return m, m.autostartCmd()
		case key.Matches(msg, m.keys.Theme):
			m.theme = NextTheme(m.theme.Name)
			applyTheme(m.theme)
			return m, m.saveThemeCmd(m.theme.Name)
		}

	case dispatchMsg:
		msg.fn()

	case MuteChangedMsg:
		m.Muted = msg.Muted
		m.MuteKnown = true

	case ConfigReloadedMsg:
		m.Config = msg.Config
		if t := LoadTheme(msg.Config.Theme); t.Name != m.theme.Name {
			m.theme = t
			applyTheme(t)
		}

	case hotkeySavedMsg:
		if msg.err != nil {
			return m.showError(fmt.Errorf("save hotkey: %w", msg.err))
		}
		m.Logger.Info().Str("hotkey", msg.combo.String()).Msg("hotkey saved")

	case autostartMsg:
		if msg.err != nil {
			return m.showError(msg.err)
		}
		m.Config.RunAtStartup = msg.enabled

	case ErrorMsg:
		return m.showError(msg.Err)

	case errorTimeoutMsg:
		m.LastError = ""

	case StatusCheckMsg:
		m.MicDetected = msg.MicDetected
		m.MicDeviceName = msg.MicDeviceName
		m.statusChecked = true
		return m, scheduleStatusRecheck()

	case statusCheckTickMsg:
		return m, m.statusCheckCmd()

	case DebugLogMsg:
		m.DebugEntries = append(m.DebugEntries, msg.Entry)
		if len(m.DebugEntries) > maxDebugLines {
			m.DebugEntries = m.DebugEntries[len(m.DebugEntries)-maxDebugLines:]
		}
	}

	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.Editing = false
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		combo, err := hotkey.ParseCombination(m.input.Value())
		if err != nil {
			m.LastError = err.Error()
			return m, nil
		}
		if err := m.Hook.UpdateCombination(combo); err != nil {
			m.LastError = err.Error()
			return m, nil
		}
		m.Editing = false
		m.LastError = ""
		m.input.Blur()
		return m, m.saveHotkeyCmd(combo)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) showError(err error) (tea.Model, tea.Cmd) {
	m.LastError = err.Error()
	m.Logger.Warn().Err(err).Msg("panel error")
	return m, scheduleErrorTimeout()
}

func (m Model) saveHotkeyCmd(combo hotkey.Combination) tea.Cmd {
	store := m.Store
	return func() tea.Msg {
		return hotkeySavedMsg{combo: combo, err: store.SaveHotkeyCombination(combo)}
	}
}

func (m Model) saveThemeCmd(name string) tea.Cmd {
	store := m.Store
	return func() tea.Msg {
		if err := store.Update(func(cfg *config.Config) { cfg.Theme = name }); err != nil {
			return ErrorMsg{Err: fmt.Errorf("save theme: %w", err)}
		}
		return nil
	}
}

func (m Model) autostartCmd() tea.Cmd {
	as := m.Autostart
	store := m.Store
	return func() tea.Msg {
		if as == nil {
			return autostartMsg{err: fmt.Errorf("run at startup is not supported here")}
		}
		enabled := !as.IsEnabled()
		if err := autostart.Set(as, enabled); err != nil {
			return autostartMsg{err: err}
		}
		if err := store.Update(func(cfg *config.Config) { cfg.RunAtStartup = enabled }); err != nil {
			return autostartMsg{err: fmt.Errorf("save run_at_startup: %w", err)}
		}
		return autostartMsg{enabled: enabled}
	}
}

func scheduleErrorTimeout() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return errorTimeoutMsg{}
	})
}

const statusRecheckInterval = 30 * time.Second

func (m Model) statusCheckCmd() tea.Cmd {
	mc := m.MicChecker
	return func() tea.Msg {
		if mc == nil {
			return StatusCheckMsg{}
		}
		return StatusCheckMsg{MicDetected: mc.MicAvailable(), MicDeviceName: mc.MicName()}
	}
}

func scheduleStatusRecheck() tea.Cmd {
	return tea.Tick(statusRecheckInterval, func(time.Time) tea.Msg {
		return statusCheckTickMsg{}
	})
}
