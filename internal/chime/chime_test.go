package chime

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithDefaults(t *testing.T) {
	p, err := New("", "", true, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.mutedData) <= 44 {
		t.Errorf("expected generated muted tone, got %d bytes", len(p.mutedData))
	}
	if len(p.unmutedData) <= 44 {
		t.Errorf("expected generated unmuted tone, got %d bytes", len(p.unmutedData))
	}
	if !p.Enabled() {
		t.Error("expected enabled")
	}
}

func TestNewDisabled(t *testing.T) {
	p, err := New("", "", false, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Enabled() {
		t.Error("expected disabled")
	}
	// Playback is a no-op when disabled
	p.Play(true)
	p.Play(false)
}

func TestGeneratedTonesDecode(t *testing.T) {
	data, err := mutedTone(SampleRate)
	if err != nil {
		t.Fatal(err)
	}
	samples, rate, err := decodeWAV(data)
	if err != nil {
		t.Fatalf("decodeWAV: %v", err)
	}
	if rate != SampleRate {
		t.Errorf("rate = %d, want %d", rate, SampleRate)
	}
	if want := int(float64(SampleRate) * toneDuration); len(samples) != want {
		t.Errorf("samples = %d, want %d", len(samples), want)
	}
	if samples[0] != 0 {
		t.Errorf("tone should start silent, got %d", samples[0])
	}
}

func TestNewWithCustomPathsResamples(t *testing.T) {
	dir := t.TempDir()
	mutePath := filepath.Join(dir, "mute.wav")
	unmutePath := filepath.Join(dir, "unmute.wav")

	custom, err := encodeWAV(sweep(16000, 0.1, 440, 880), 16000)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(mutePath, custom, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(unmutePath, custom, 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := New(mutePath, unmutePath, true, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	samples, rate, err := decodeWAV(p.mutedData)
	if err != nil {
		t.Fatal(err)
	}
	if rate != SampleRate {
		t.Errorf("custom chime rate = %d, want %d", rate, SampleRate)
	}
	// 0.1s at 44.1kHz, give or take filter edges.
	if n := len(samples); n < 4000 || n > 4800 {
		t.Errorf("resampled length = %d, want about 4410", n)
	}
}

func TestNewWithBadPath(t *testing.T) {
	if _, err := New("/nonexistent/path/mute.wav", "", true, zerolog.Nop()); err == nil {
		t.Error("expected error for nonexistent mute path")
	}
	if _, err := New("", "/nonexistent/path/unmute.wav", true, zerolog.Nop()); err == nil {
		t.Error("expected error for nonexistent unmute path")
	}
}

func TestNewWithInvalidWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	if err := os.WriteFile(path, []byte("not a wav file at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(path, "", true, zerolog.Nop()); err == nil {
		t.Error("expected error for invalid WAV")
	}
}

func TestResampleSameRate(t *testing.T) {
	in := []int16{1, 2, 3}
	out, err := resample(in, 44100, 44100)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 || out[2] != 3 {
		t.Errorf("same-rate resample changed samples: %v", out)
	}
}

func TestSetEnabled(t *testing.T) {
	p, err := New("", "", true, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	p.SetEnabled(false)
	if p.Enabled() {
		t.Error("expected disabled after SetEnabled(false)")
	}
}
