package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// HotkeyConfig holds the global chord and the keyboard it is read from.
// Modifiers are names such as "super", "ctrl", "alt", "shift"; Key is one
// or more main keys joined by "+" (e.g. "KEY_M"), or empty for a
// modifier-only chord.
type HotkeyConfig struct {
	Modifiers []string `toml:"modifiers"`
	Key       string   `toml:"key"`
	Device    string   `toml:"device"`
	Grab      bool     `toml:"grab"`
}

// OverlayConfig holds the indicator's appearance.
type OverlayConfig struct {
	Color    string  `toml:"color"`
	Position string  `toml:"position"`
	Opacity  float64 `toml:"opacity"`
}

// AudioConfig holds audible cue settings.
type AudioConfig struct {
	ChimeEnabled bool   `toml:"chime_enabled"`
	ChimeMute    string `toml:"chime_mute"`
	ChimeUnmute  string `toml:"chime_unmute"`
}

// CustomTheme defines a user-provided color theme in the config file.
type CustomTheme struct {
	Name       string `toml:"name"`
	Primary    string `toml:"primary"`
	Secondary  string `toml:"secondary"`
	Accent     string `toml:"accent"`
	Error      string `toml:"error"`
	Success    string `toml:"success"`
	Warning    string `toml:"warning"`
	Background string `toml:"background"`
	Text       string `toml:"text"`
	Dimmed     string `toml:"dimmed"`
	Separator  string `toml:"separator"`
}

// Config is the top-level configuration.
type Config struct {
	LogLevel     string        `toml:"log_level"`
	RunAtStartup bool          `toml:"run_at_startup"`
	Theme        string        `toml:"theme"`
	Hotkey       HotkeyConfig  `toml:"hotkey"`
	Overlay      OverlayConfig `toml:"overlay"`
	Audio        AudioConfig   `toml:"audio"`
	CustomThemes []CustomTheme `toml:"custom_theme"`
}

// Default returns a Config populated with all default values.
func Default() *Config {
	return &Config{
		LogLevel:     "info",
		RunAtStartup: false,
		Theme:        "synthwave",
		Hotkey: HotkeyConfig{
			Modifiers: []string{"super", "shift"},
			Key:       "KEY_A",
			Device:    "",
			Grab:      true,
		},
		Overlay: OverlayConfig{
			Color:    "red",
			Position: "top-right",
			Opacity:  0.8,
		},
		Audio: AudioConfig{
			ChimeEnabled: true,
			ChimeMute:    "",
			ChimeUnmute:  "",
		},
	}
}

// DefaultPath returns the default config file path (~/.config/mutecue/config.toml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mutecue", "config.toml")
}

// Save writes the config as TOML to the given path, creating parent
// directories if needed. The write is atomic: data is written to a
// temporary file and renamed into place so a crash mid-write cannot
// corrupt the existing config.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".mutecue-config-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

// Load reads the TOML config from path. If the file does not exist,
// it returns the default config without error.
func Load(path string) (*Config, error) {
	cfg := Default()

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.Overlay.Opacity = ClampOpacity(cfg.Overlay.Opacity)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	return cfg, nil
}
