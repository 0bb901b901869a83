//go:build linux

package hotkey

import (
	"testing"

	evdev "github.com/holoplot/go-evdev"

	"github.com/Danondso/mutecue/internal/keys"
)

func TestEventFromInput(t *testing.T) {
	tests := []struct {
		name   string
		ev     evdev.InputEvent
		want   Event
		wantOK bool
	}{
		{"press", evdev.InputEvent{Type: evdev.EV_KEY, Code: 50, Value: 1}, Event{Kind: KeyDown, Code: keys.CodeM}, true},
		{"repeat is down", evdev.InputEvent{Type: evdev.EV_KEY, Code: 50, Value: 2}, Event{Kind: KeyDown, Code: keys.CodeM}, true},
		{"release", evdev.InputEvent{Type: evdev.EV_KEY, Code: 97, Value: 0}, Event{Kind: KeyUp, Code: keys.CodeRightCtrl}, true},
		{"sync ignored", evdev.InputEvent{Type: evdev.EV_SYN, Code: 0, Value: 0}, Event{}, false},
		{"msc ignored", evdev.InputEvent{Type: evdev.EV_MSC, Code: 4, Value: 458792}, Event{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := tt.ev
			got, ok := eventFromInput(&ev)
			if ok != tt.wantOK {
				t.Fatalf("eventFromInput ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("eventFromInput = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHasLetterKeys(t *testing.T) {
	tests := []struct {
		name  string
		codes []evdev.EvCode
		want  bool
	}{
		{"full keyboard", []evdev.EvCode{1, 30, 44, 57}, true},
		{"power button", []evdev.EvCode{116}, false},
		{"only a", []evdev.EvCode{30}, false},
		{"none", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasLetterKeys(tt.codes); got != tt.want {
				t.Errorf("hasLetterKeys(%v) = %v, want %v", tt.codes, got, tt.want)
			}
		})
	}
}

func TestUninstallUnknownHandleIsNoop(t *testing.T) {
	s := &EvdevSource{}
	if err := s.Uninstall(42); err != nil {
		t.Errorf("Uninstall of unknown handle = %v, want nil", err)
	}
}
