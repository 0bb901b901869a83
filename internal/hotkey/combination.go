// Package hotkey detects a global key chord and fires an action when it is
// pressed. Matching runs against a platform Source that delivers raw key
// events and can optionally suppress them.
package hotkey

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/Danondso/mutecue/internal/keys"
)

// ErrEmptyCombination is returned when a combination would hold no keys.
var ErrEmptyCombination = errors.New("hotkey combination must contain at least one key")

// Combination is an immutable, non-empty set of canonical keys that must be
// held together, and nothing else, to trigger the bound action.
type Combination struct {
	set     keys.Set
	display []keys.Key
}

// NewCombination builds a combination from ks. Duplicates collapse. A
// combination made only of modifiers is allowed.
func NewCombination(ks ...keys.Key) (Combination, error) {
	if len(ks) == 0 {
		return Combination{}, ErrEmptyCombination
	}
	set := keys.NewSet(ks...)
	return Combination{set: set, display: set.Sorted()}, nil
}

// DefaultCombination is Super+Shift+A.
func DefaultCombination() Combination {
	c, _ := NewCombination(keys.Super, keys.Shift, keys.Normalize(keys.CodeA))
	return c
}

// Matches reports whether held is exactly the combination's key set. Any
// extra held key breaks the match.
func (c Combination) Matches(held keys.Set) bool {
	if c.IsZero() {
		return false
	}
	return c.set.Equal(held)
}

// IsZero reports whether c is the zero Combination.
func (c Combination) IsZero() bool {
	return len(c.set) == 0
}

// Keys returns the combination's keys in display order.
func (c Combination) Keys() []keys.Key {
	out := make([]keys.Key, len(c.display))
	copy(out, c.display)
	return out
}

// Modifiers returns the modifier keys of c in display order.
func (c Combination) Modifiers() []keys.Key {
	var out []keys.Key
	for _, k := range c.display {
		if k.IsModifier() {
			out = append(out, k)
		}
	}
	return out
}

// Main returns the non-modifier keys of c in display order.
func (c Combination) Main() []keys.Key {
	var out []keys.Key
	for _, k := range c.display {
		if !k.IsModifier() {
			out = append(out, k)
		}
	}
	return out
}

// Equal reports whether c and o hold the same keys.
func (c Combination) Equal(o Combination) bool {
	return c.set.Equal(o.set)
}

// String renders c as "Super+Shift+A".
func (c Combination) String() string {
	if c.IsZero() {
		return "(none)"
	}
	parts := make([]string, len(c.display))
	for i, k := range c.display {
		parts[i] = k.String()
	}
	return strings.Join(parts, "+")
}

// ParseCombination parses a chord such as "Super+Shift+M", "ctrl + alt + F12"
// or "KEY_LEFTMETA+KEY_M". Each part goes through keys.Parse.
func ParseCombination(s string) (Combination, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Combination{}, ErrEmptyCombination
	}
	var ks []keys.Key
	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			return Combination{}, errors.Errorf("empty key in combination %q", s)
		}
		code, err := keys.Parse(part)
		if err != nil {
			return Combination{}, errors.Wrapf(err, "parse combination %q", s)
		}
		ks = append(ks, keys.Normalize(code))
	}
	return NewCombination(ks...)
}
