//go:build linux

package autostart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// xdgAutostart writes a desktop entry to $XDG_CONFIG_HOME/autostart.
type xdgAutostart struct {
	name string
	exe  string
	args []string
}

// New returns the XDG autostart entry for name, launching the running
// binary with args.
func New(name string, args ...string) Autostart {
	return &xdgAutostart{name: name, exe: executable(), args: args}
}

func (a *xdgAutostart) dir() string {
	config := os.Getenv("XDG_CONFIG_HOME")
	if config == "" {
		home, _ := os.UserHomeDir()
		config = filepath.Join(home, ".config")
	}
	return filepath.Join(config, "autostart")
}

func (a *xdgAutostart) path() string {
	return filepath.Join(a.dir(), a.name+".desktop")
}

func (a *xdgAutostart) IsEnabled() bool {
	_, err := os.Stat(a.path())
	return err == nil
}

func (a *xdgAutostart) entry() string {
	exec := append([]string{a.exe}, a.args...)
	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Comment=Toggle microphone mute with a global hotkey
Exec=%s
Icon=audio-input-microphone
Terminal=false
Categories=Utility;Audio;
X-GNOME-Autostart-enabled=true
`, a.name, strings.Join(exec, " "))
}

func (a *xdgAutostart) Enable() error {
	if err := os.MkdirAll(a.dir(), 0o755); err != nil {
		return errors.Wrap(err, "create autostart dir")
	}
	return os.WriteFile(a.path(), []byte(a.entry()), 0o644)
}

func (a *xdgAutostart) Disable() error {
	err := os.Remove(a.path())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
