//go:build darwin

package autostart

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// launchAgent writes a LaunchAgent plist to ~/Library/LaunchAgents.
type launchAgent struct {
	name string
	exe  string
	args []string
	home string
}

// New returns the LaunchAgent for name, launching the running binary with
// args.
func New(name string, args ...string) Autostart {
	home, _ := os.UserHomeDir()
	return &launchAgent{name: name, exe: executable(), args: args, home: home}
}

func (a *launchAgent) label() string {
	return "com." + a.name + ".agent"
}

func (a *launchAgent) path() string {
	return filepath.Join(a.home, "Library", "LaunchAgents", a.label()+".plist")
}

func (a *launchAgent) IsEnabled() bool {
	_, err := os.Stat(a.path())
	return err == nil
}

// program returns the argv for launchd. Binaries inside an .app bundle are
// started through open(1) so the bundle keeps its permissions.
func (a *launchAgent) program() []string {
	if idx := strings.Index(a.exe, ".app/"); idx != -1 {
		argv := []string{"/usr/bin/open", "-a", a.exe[:idx+4]}
		if len(a.args) > 0 {
			argv = append(argv, "--args")
			argv = append(argv, a.args...)
		}
		return argv
	}
	return append([]string{a.exe}, a.args...)
}

func (a *launchAgent) plist() string {
	var args strings.Builder
	for _, arg := range a.program() {
		args.WriteString("        <string>")
		_ = xml.EscapeText(&args, []byte(arg))
		args.WriteString("</string>\n")
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>%s</string>
    <key>ProgramArguments</key>
    <array>
%s    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <false/>
</dict>
</plist>
`, a.label(), args.String())
}

func (a *launchAgent) Enable() error {
	if err := os.MkdirAll(filepath.Dir(a.path()), 0o755); err != nil {
		return errors.Wrap(err, "create LaunchAgents dir")
	}
	return os.WriteFile(a.path(), []byte(a.plist()), 0o644)
}

func (a *launchAgent) Disable() error {
	err := os.Remove(a.path())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
