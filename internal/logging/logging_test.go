package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{" warn ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestParseLevelUnknown(t *testing.T) {
	_, err := ParseLevel("loud")
	if !errors.Is(err, ErrUnknownLevel) {
		t.Fatalf("err = %v, want ErrUnknownLevel", err)
	}
	if !strings.Contains(err.Error(), `"loud"`) {
		t.Errorf("error should name the level: %v", err)
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "warn")
	if err != nil {
		t.Fatal(err)
	}
	l.Info().Msg("dropped")
	l.Warn().Msg("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatal(err)
	}
	if entry["message"] != "kept" {
		t.Errorf("message = %v, want kept", entry["message"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("expected a time field")
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "debug")
	if err != nil {
		t.Fatal(err)
	}
	Component(l, "hotkey").Debug().Msg("installed")
	if !strings.Contains(buf.String(), `"component":"hotkey"`) {
		t.Errorf("missing component field: %s", buf.String())
	}
}
