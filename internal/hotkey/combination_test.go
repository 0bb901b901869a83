package hotkey

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/Danondso/mutecue/internal/keys"
)

var keyM = keys.Normalize(keys.CodeM)

func TestNewCombinationRejectsEmpty(t *testing.T) {
	_, err := NewCombination()
	if !errors.Is(err, ErrEmptyCombination) {
		t.Errorf("NewCombination() err = %v, want ErrEmptyCombination", err)
	}
}

func TestModifierOnlyCombinationAllowed(t *testing.T) {
	c, err := NewCombination(keys.Ctrl, keys.Shift)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Main()) != 0 {
		t.Errorf("Main() = %v, want none", c.Main())
	}
	if !c.Matches(keys.NewSet(keys.Shift, keys.Ctrl)) {
		t.Error("modifier-only combination should match its modifiers")
	}
}

func TestMatchesIsExactSet(t *testing.T) {
	combo, err := NewCombination(keys.Ctrl, keys.Shift, keyM)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		held keys.Set
		want bool
	}{
		{"exact", keys.NewSet(keys.Ctrl, keys.Shift, keyM), true},
		{"different order", keys.NewSet(keyM, keys.Shift, keys.Ctrl), true},
		{"right hand modifiers", keys.NewSet(keys.Normalize(keys.CodeRightCtrl), keys.Normalize(keys.CodeRightShift), keyM), true},
		{"extra key", keys.NewSet(keys.Ctrl, keys.Shift, keyM, keys.Normalize(keys.CodeA)), false},
		{"extra modifier", keys.NewSet(keys.Ctrl, keys.Shift, keys.Alt, keyM), false},
		{"subset", keys.NewSet(keys.Ctrl, keyM), false},
		{"empty", keys.NewSet(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := combo.Matches(tt.held); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.held.Sorted(), got, tt.want)
			}
		})
	}
}

func TestDuplicateKeysCollapse(t *testing.T) {
	c, err := NewCombination(keys.Shift, keys.Normalize(keys.CodeRightShift), keyM, keyM)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Keys()) != 2 {
		t.Errorf("Keys() = %v, want 2 keys", c.Keys())
	}
}

func TestParseCombination(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"default", "Super+Shift+A", "Super+Shift+A", false},
		{"spaces and case", " ctrl + alt + f12 ", "Ctrl+Alt+F12", false},
		{"evdev names", "KEY_RIGHTCTRL+KEY_M", "Ctrl+M", false},
		{"mac names", "Cmd+Option+Space", "Super+Alt+Space", false},
		{"single key", "KEY_F12", "F12", false},
		{"empty", "", "", true},
		{"dangling plus", "Ctrl+", "", true},
		{"unknown", "Ctrl+Banana", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseCombination(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for input %q, got %v", tt.input, c)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for input %q: %v", tt.input, err)
			}
			if got := c.String(); got != tt.want {
				t.Errorf("ParseCombination(%q).String() = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStringRoundTrips(t *testing.T) {
	c := DefaultCombination()
	back, err := ParseCombination(c.String())
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(c) {
		t.Errorf("ParseCombination(%q) = %v, want %v", c.String(), back, c)
	}
}
