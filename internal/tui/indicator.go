package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Danondso/mutecue/internal/config"
)

const indicatorText = " ● MIC MUTED "

// Indicator is the in-panel mute overlay. It implements overlay.Surface;
// the controller drives it through a Dispatcher, while settings can be
// applied from any goroutine.
type Indicator struct {
	mu      sync.Mutex
	opacity float64
	visible bool
	color   string
	anchor  string
	base    float64
}

// NewIndicator returns a hidden indicator with the given appearance.
func NewIndicator(o config.OverlayConfig) *Indicator {
	i := &Indicator{}
	i.Apply(o)
	return i
}

// Apply updates color, position and base opacity.
func (i *Indicator) Apply(o config.OverlayConfig) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.color = o.ColorHex()
	i.anchor = o.Anchor()
	i.base = config.ClampOpacity(o.Opacity)
}

func (i *Indicator) SetOpacity(v float64) {
	i.mu.Lock()
	defer i.mu.Unlock()
	switch {
	case v < 0:
		v = 0
	case v > 1:
		v = 1
	}
	i.opacity = v
}

func (i *Indicator) SetVisible() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.visible = true
}

func (i *Indicator) SetHidden() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.visible = false
}

func (i *Indicator) Opacity() float64 {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.opacity
}

func (i *Indicator) Visible() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.visible
}

// Anchor returns the configured position name.
func (i *Indicator) Anchor() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.anchor
}

// Color returns the indicator color blended toward bg by the effective
// opacity (base opacity times animation opacity).
func (i *Indicator) Color(bg lipgloss.Color) lipgloss.Color {
	i.mu.Lock()
	alpha := i.base * i.opacity
	fgHex := i.color
	i.mu.Unlock()

	fg, err := colorful.Hex(fgHex)
	if err != nil {
		return lipgloss.Color(fgHex)
	}
	back, err := colorful.Hex(string(bg))
	if err != nil {
		return lipgloss.Color(fgHex)
	}
	return lipgloss.Color(back.BlendRgb(fg, alpha).Clamped().Hex())
}

// Render draws the badge aligned within width, or an empty line when hidden.
func (i *Indicator) Render(width int, bg lipgloss.Color) string {
	if !i.Visible() {
		return bodyStyle.Render(strings.Repeat(" ", width))
	}
	badge := lipgloss.NewStyle().
		Bold(true).
		Foreground(bg).
		Background(i.Color(bg)).
		Render(indicatorText)
	_, h := placement(i.Anchor())
	return lipgloss.PlaceHorizontal(width, h, badge, lipgloss.WithWhitespaceBackground(bg))
}

// placement maps an anchor name to vertical and horizontal alignment.
func placement(anchor string) (v, h lipgloss.Position) {
	switch {
	case strings.HasPrefix(anchor, "bottom"):
		v = lipgloss.Bottom
	case strings.HasPrefix(anchor, "top"):
		v = lipgloss.Top
	default:
		v = lipgloss.Center
	}
	switch {
	case strings.HasSuffix(anchor, "left"):
		h = lipgloss.Left
	case strings.HasSuffix(anchor, "right"):
		h = lipgloss.Right
	default:
		h = lipgloss.Center
	}
	return v, h
}
