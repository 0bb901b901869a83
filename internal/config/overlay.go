package config

import "strings"

// Colors are the indicator colors that can be named in [overlay] color.
var Colors = map[string]string{
	"white":  "#ffffff",
	"grey":   "#bdc3c8",
	"black":  "#222f3d",
	"purple": "#7e40fd",
	"blue":   "#2980b9",
	"yellow": "#f39c19",
	"green":  "#2ecc70",
	"red":    "#e84b3c",
}

// Positions are the screen anchors accepted by [overlay] position.
var Positions = []string{
	"top-left", "top", "top-right",
	"left", "center", "right",
	"bottom-left", "bottom", "bottom-right",
}

// Opacity bounds for the indicator.
const (
	MinOpacity = 0.1
	MaxOpacity = 1.0
)

// ClampOpacity limits v to [MinOpacity, MaxOpacity]. Zero, the TOML default
// for a missing key, is raised to the minimum.
func ClampOpacity(v float64) float64 {
	switch {
	case v < MinOpacity:
		return MinOpacity
	case v > MaxOpacity:
		return MaxOpacity
	}
	return v
}

// ColorHex returns the hex value of the configured color. A value that is
// already a "#rrggbb" string is returned as is; unknown names fall back to
// red.
func (o OverlayConfig) ColorHex() string {
	c := strings.ToLower(strings.TrimSpace(o.Color))
	if hex, ok := Colors[c]; ok {
		return hex
	}
	if len(c) == 7 && c[0] == '#' {
		return c
	}
	return Colors["red"]
}

// Anchor returns the configured position, or "top-right" if it is not one
// of Positions.
func (o OverlayConfig) Anchor() string {
	p := strings.ToLower(strings.TrimSpace(o.Position))
	for _, valid := range Positions {
		if p == valid {
			return p
		}
	}
	return "top-right"
}
