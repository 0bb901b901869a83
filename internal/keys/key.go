package keys

// Key is a canonical key: left and right variants of Shift, Ctrl, Alt and
// the OS modifier collapse into one Key each. The zero value is not a valid
// key; Keys are only obtained through Normalize.
type Key struct {
	code Code
}

// Canonical modifier keys.
var (
	Ctrl  = Key{code: CodeLeftCtrl}
	Shift = Key{code: CodeLeftShift}
	Alt   = Key{code: CodeLeftAlt}
	Super = Key{code: CodeLeftMeta}
)

// Normalize maps a raw code onto its canonical key. Codes that are not a
// left/right modifier variant map to themselves, including unknown codes.
func Normalize(c Code) Key {
	switch c {
	case CodeLeftShift, CodeRightShift:
		return Shift
	case CodeLeftCtrl, CodeRightCtrl:
		return Ctrl
	case CodeLeftAlt, CodeRightAlt:
		return Alt
	case CodeLeftMeta, CodeRightMeta:
		return Super
	}
	return Key{code: c}
}

// IsModifier reports whether k is one of the canonical modifiers.
func (k Key) IsModifier() bool {
	return k == Ctrl || k == Shift || k == Alt || k == Super
}

// Code returns the raw code that identifies k. For modifiers this is the
// left variant's code.
func (k Key) Code() Code {
	return k.code
}

// modifierRank orders modifiers for display.
func (k Key) modifierRank() int {
	switch k {
	case Super:
		return 0
	case Ctrl:
		return 1
	case Alt:
		return 2
	case Shift:
		return 3
	}
	return 4
}

// Less orders keys for display: modifiers first (Super, Ctrl, Alt, Shift),
// then the rest by code.
func (k Key) Less(o Key) bool {
	rk, ro := k.modifierRank(), o.modifierRank()
	if rk != ro {
		return rk < ro
	}
	return k.code < o.code
}

func (k Key) String() string {
	switch k {
	case Ctrl:
		return "Ctrl"
	case Shift:
		return "Shift"
	case Alt:
		return "Alt"
	case Super:
		return "Super"
	}
	return k.code.String()
}
