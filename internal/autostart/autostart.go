// Package autostart registers the program to run at login.
package autostart

import (
	"os"

	"github.com/pkg/errors"
)

// Autostart manages the login entry for one program.
type Autostart interface {
	IsEnabled() bool
	Enable() error
	Disable() error
}

// Set enables or disables a, doing nothing if it is already in that state.
func Set(a Autostart, enabled bool) error {
	if a.IsEnabled() == enabled {
		return nil
	}
	if enabled {
		return errors.Wrap(a.Enable(), "enable autostart")
	}
	return errors.Wrap(a.Disable(), "disable autostart")
}

// executable returns the path of the running binary.
func executable() string {
	exe, err := os.Executable()
	if err != nil {
		return os.Args[0]
	}
	return exe
}
