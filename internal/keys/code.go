// Package keys maps raw key codes from the platform input sources onto
// canonical keys used for chord matching.
//
// Raw codes use the Linux input-event numbering (KEY_* in
// linux/input-event-codes.h). Sources on other platforms translate their
// native codes into this space before handing events over.
package keys

import (
	"fmt"
	"sort"
	"strings"
)

// Code is a raw key code as reported by an input source. Left and right
// modifier variants have distinct codes.
type Code uint16

// Modifier and commonly referenced key codes.
const (
	CodeEsc        Code = 1
	CodeTab        Code = 15
	CodeEnter      Code = 28
	CodeLeftCtrl   Code = 29
	CodeA          Code = 30
	CodeLeftShift  Code = 42
	CodeZ          Code = 44
	CodeM          Code = 50
	CodeRightShift Code = 54
	CodeLeftAlt    Code = 56
	CodeSpace      Code = 57
	CodeF12        Code = 88
	CodeRightCtrl  Code = 97
	CodeRightAlt   Code = 100
	CodeLeftMeta   Code = 125
	CodeRightMeta  Code = 126
)

// nameTable maps KEY_* names to their raw codes.
var nameTable = map[string]Code{
	"KEY_ESC":        1,
	"KEY_1":          2,
	"KEY_2":          3,
	"KEY_3":          4,
	"KEY_4":          5,
	"KEY_5":          6,
	"KEY_6":          7,
	"KEY_7":          8,
	"KEY_8":          9,
	"KEY_9":          10,
	"KEY_0":          11,
	"KEY_MINUS":      12,
	"KEY_EQUAL":      13,
	"KEY_BACKSPACE":  14,
	"KEY_TAB":        15,
	"KEY_Q":          16,
	"KEY_W":          17,
	"KEY_E":          18,
	"KEY_R":          19,
	"KEY_T":          20,
	"KEY_Y":          21,
	"KEY_U":          22,
	"KEY_I":          23,
	"KEY_O":          24,
	"KEY_P":          25,
	"KEY_LEFTBRACE":  26,
	"KEY_RIGHTBRACE": 27,
	"KEY_ENTER":      28,
	"KEY_LEFTCTRL":   29,
	"KEY_A":          30,
	"KEY_S":          31,
	"KEY_D":          32,
	"KEY_F":          33,
	"KEY_G":          34,
	"KEY_H":          35,
	"KEY_J":          36,
	"KEY_K":          37,
	"KEY_L":          38,
	"KEY_SEMICOLON":  39,
	"KEY_APOSTROPHE": 40,
	"KEY_GRAVE":      41,
	"KEY_LEFTSHIFT":  42,
	"KEY_BACKSLASH":  43,
	"KEY_Z":          44,
	"KEY_X":          45,
	"KEY_C":          46,
	"KEY_V":          47,
	"KEY_B":          48,
	"KEY_N":          49,
	"KEY_M":          50,
	"KEY_COMMA":      51,
	"KEY_DOT":        52,
	"KEY_SLASH":      53,
	"KEY_RIGHTSHIFT": 54,
	"KEY_KPASTERISK": 55,
	"KEY_LEFTALT":    56,
	"KEY_SPACE":      57,
	"KEY_CAPSLOCK":   58,
	"KEY_F1":         59,
	"KEY_F2":         60,
	"KEY_F3":         61,
	"KEY_F4":         62,
	"KEY_F5":         63,
	"KEY_F6":         64,
	"KEY_F7":         65,
	"KEY_F8":         66,
	"KEY_F9":         67,
	"KEY_F10":        68,
	"KEY_NUMLOCK":    69,
	"KEY_SCROLLLOCK": 70,
	"KEY_F11":        87,
	"KEY_F12":        88,
	"KEY_KPENTER":    96,
	"KEY_RIGHTCTRL":  97,
	"KEY_SYSRQ":      99,
	"KEY_RIGHTALT":   100,
	"KEY_HOME":       102,
	"KEY_UP":         103,
	"KEY_PAGEUP":     104,
	"KEY_LEFT":       105,
	"KEY_RIGHT":      106,
	"KEY_END":        107,
	"KEY_DOWN":       108,
	"KEY_PAGEDOWN":   109,
	"KEY_INSERT":     110,
	"KEY_DELETE":     111,
	"KEY_MUTE":       113,
	"KEY_PAUSE":      119,
	"KEY_LEFTMETA":   125,
	"KEY_RIGHTMETA":  126,
	"KEY_F13":        183,
	"KEY_F14":        184,
	"KEY_F15":        185,
	"KEY_F16":        186,
	"KEY_F17":        187,
	"KEY_F18":        188,
	"KEY_F19":        189,
	"KEY_F20":        190,
	"KEY_F21":        191,
	"KEY_F22":        192,
	"KEY_F23":        193,
	"KEY_F24":        194,
	"KEY_MICMUTE":    248,
}

// codeNames is the reverse of nameTable.
var codeNames = func() map[Code]string {
	m := make(map[Code]string, len(nameTable))
	for name, code := range nameTable {
		m[code] = name
	}
	return m
}()

// Name returns the KEY_* name of a raw code, or "" if the code has no name.
func (c Code) Name() string {
	return codeNames[c]
}

// String returns a short human-readable label such as "M", "F12" or "Space".
func (c Code) String() string {
	name, ok := codeNames[c]
	if !ok {
		return fmt.Sprintf("Key(%d)", uint16(c))
	}
	name = strings.TrimPrefix(name, "KEY_")
	if len(name) <= 3 {
		return name
	}
	return name[:1] + strings.ToLower(name[1:])
}

// Names returns all known KEY_* names in sorted order.
func Names() []string {
	out := make([]string, 0, len(nameTable))
	for name := range nameTable {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
