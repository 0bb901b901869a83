package overlay

import (
	"github.com/rs/zerolog"
)

// LogSurface is a Surface with no window. It keeps opacity and visibility
// and logs when the indicator appears or disappears, for headless runs.
type LogSurface struct {
	logger  zerolog.Logger
	opacity float64
	visible bool
}

func NewLogSurface(logger zerolog.Logger) *LogSurface {
	return &LogSurface{logger: logger}
}

func (s *LogSurface) SetOpacity(v float64) {
	s.opacity = clamp01(v)
}

func (s *LogSurface) SetVisible() {
	if !s.visible {
		s.logger.Info().Msg("microphone muted indicator shown")
	}
	s.visible = true
}

func (s *LogSurface) SetHidden() {
	if s.visible {
		s.logger.Info().Msg("microphone muted indicator hidden")
	}
	s.visible = false
}

func (s *LogSurface) Opacity() float64 { return s.opacity }
func (s *LogSurface) Visible() bool    { return s.visible }

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
