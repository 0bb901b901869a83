package config

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/Danondso/mutecue/internal/hotkey"
	"github.com/Danondso/mutecue/internal/keys"
)

// modifierNames are the names written back for canonical modifiers.
var modifierNames = map[keys.Key]string{
	keys.Super: "super",
	keys.Ctrl:  "ctrl",
	keys.Alt:   "alt",
	keys.Shift: "shift",
}

// HotkeyCombination builds the chord from the modifiers + main key
// settings.
func (c *Config) HotkeyCombination() (hotkey.Combination, error) {
	var ks []keys.Key
	for _, name := range c.Hotkey.Modifiers {
		code, err := keys.Parse(name)
		if err != nil {
			return hotkey.Combination{}, errors.Wrap(err, "hotkey modifier")
		}
		k := keys.Normalize(code)
		if !k.IsModifier() {
			return hotkey.Combination{}, errors.Errorf("hotkey modifier %q is not a modifier key", name)
		}
		ks = append(ks, k)
	}
	if main := strings.TrimSpace(c.Hotkey.Key); main != "" {
		for _, part := range strings.Split(main, "+") {
			code, err := keys.Parse(part)
			if err != nil {
				return hotkey.Combination{}, errors.Wrap(err, "hotkey key")
			}
			ks = append(ks, keys.Normalize(code))
		}
	}
	combo, err := hotkey.NewCombination(ks...)
	if err != nil {
		return hotkey.Combination{}, errors.Wrap(err, "hotkey")
	}
	return combo, nil
}

// SetHotkeyCombination stores combo as modifiers + main key.
func (c *Config) SetHotkeyCombination(combo hotkey.Combination) {
	mods := []string{}
	for _, k := range combo.Modifiers() {
		mods = append(mods, modifierNames[k])
	}
	var main []string
	for _, k := range combo.Main() {
		name := k.Code().Name()
		if name == "" {
			name = k.String()
		}
		main = append(main, name)
	}
	c.Hotkey.Modifiers = mods
	c.Hotkey.Key = strings.Join(main, "+")
}

// Store persists settings in a config file.
type Store struct {
	Path string
}

// LoadHotkeyCombination reads the chord from the file. On error it returns
// the default chord together with the error, so callers can warn and carry
// on.
func (s Store) LoadHotkeyCombination() (hotkey.Combination, error) {
	cfg, err := Load(s.Path)
	if err != nil {
		return hotkey.DefaultCombination(), errors.Wrapf(err, "load %s", s.Path)
	}
	combo, err := cfg.HotkeyCombination()
	if err != nil {
		return hotkey.DefaultCombination(), err
	}
	return combo, nil
}

// SaveHotkeyCombination writes combo, keeping every other setting.
func (s Store) SaveHotkeyCombination(combo hotkey.Combination) error {
	if combo.IsZero() {
		return hotkey.ErrEmptyCombination
	}
	return s.Update(func(cfg *Config) { cfg.SetHotkeyCombination(combo) })
}

// Update loads the file, applies fn and saves the result.
func (s Store) Update(fn func(*Config)) error {
	cfg, err := Load(s.Path)
	if err != nil {
		return errors.Wrapf(err, "load %s", s.Path)
	}
	fn(cfg)
	return errors.Wrapf(Save(s.Path, cfg), "save %s", s.Path)
}
