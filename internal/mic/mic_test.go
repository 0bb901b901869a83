package mic

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// scriptedBackend returns queued read results and replays a fixed number of
// change notifications from Watch.
type scriptedBackend struct {
	reads   []readResult
	watches int
	toggled int
}

type readResult struct {
	muted bool
	err   error
}

func (b *scriptedBackend) Muted(ctx context.Context) (bool, error) {
	if len(b.reads) == 0 {
		return false, errors.New("no more reads")
	}
	r := b.reads[0]
	b.reads = b.reads[1:]
	return r.muted, r.err
}

func (b *scriptedBackend) Toggle(ctx context.Context) error {
	b.toggled++
	return nil
}

func (b *scriptedBackend) Watch(ctx context.Context, changed func()) error {
	for i := 0; i < b.watches; i++ {
		changed()
	}
	return nil
}

func TestWatchReportsOnlyChanges(t *testing.T) {
	transient := errors.New("device busy")
	b := &scriptedBackend{
		reads: []readResult{
			{muted: false},
			{muted: false},
			{err: transient},
			{muted: true},
			{muted: true},
			{err: transient},
			{muted: false},
		},
		watches: 6,
	}

	var got []bool
	err := Watch(context.Background(), b, func(m bool) { got = append(got, m) }, zerolog.Nop())
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	want := []bool{false, true, false}
	if len(got) != len(want) {
		t.Fatalf("reported %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("report[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWatchFirstReadAfterFailure(t *testing.T) {
	b := &scriptedBackend{
		reads: []readResult{
			{err: ErrUnavailable},
			{muted: true},
		},
		watches: 1,
	}
	var got []bool
	if err := Watch(context.Background(), b, func(m bool) { got = append(got, m) }, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || !got[0] {
		t.Errorf("reported %v, want [true]", got)
	}
}

func TestWatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := &scriptedBackend{reads: []readResult{{muted: true}}}
	if err := Watch(ctx, b, func(bool) {}, zerolog.Nop()); !errors.Is(err, context.Canceled) {
		t.Errorf("Watch = %v, want context.Canceled", err)
	}
}

func TestParseMuteOutput(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    bool
		wantErr bool
	}{
		{"muted", "Mute: yes\n", true, false},
		{"unmuted", "Mute: no\n", false, false},
		{"extra whitespace", "  Mute:   yes  ", true, false},
		{"garbage", "Connection failure: Connection refused\n", false, true},
		{"empty", "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMuteOutput(tt.out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseMuteOutput(%q) err = %v, wantErr %v", tt.out, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseMuteOutput(%q) = %v, want %v", tt.out, got, tt.want)
			}
		})
	}
}

func TestIsSourceEvent(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Event 'change' on source #53", true},
		{"Event 'new' on source #60", true},
		{"Event 'change' on server #-1", true},
		{"Event 'change' on source-output #12", false},
		{"Event 'change' on sink #44", false},
		{"Event 'new' on client #301", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isSourceEvent(tt.line); got != tt.want {
			t.Errorf("isSourceEvent(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestParseInputVolume(t *testing.T) {
	tests := []struct {
		out     string
		want    int
		wantErr error
	}{
		{"0\n", 0, nil},
		{"75\n", 75, nil},
		{"missing value\n", 0, ErrUnavailable},
	}
	for _, tt := range tests {
		got, err := parseInputVolume(tt.out)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("parseInputVolume(%q) err = %v, want %v", tt.out, err, tt.wantErr)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("parseInputVolume(%q) = %d, %v; want %d", tt.out, got, err, tt.want)
		}
	}
	if _, err := parseInputVolume("loud"); err == nil {
		t.Error("expected error for non-numeric volume")
	}
}

func TestParseSourceDescription(t *testing.T) {
	listing := `Source #52
	State: SUSPENDED
	Name: alsa_output.pci-0000_00_1f.3.analog-stereo.monitor
	Description: Monitor of Built-in Audio Analog Stereo
Source #53
	State: RUNNING
	Name: alsa_input.usb-Blue_Yeti-00.analog-stereo
	Description: Yeti Stereo Microphone Analog Stereo
`
	if got := parseSourceDescription(listing, "alsa_input.usb-Blue_Yeti-00.analog-stereo"); got != "Yeti Stereo Microphone Analog Stereo" {
		t.Errorf("description = %q", got)
	}
	if got := parseSourceDescription(listing, "alsa_output.pci-0000_00_1f.3.analog-stereo.monitor"); got != "" {
		t.Errorf("monitor description = %q, want empty", got)
	}
	if got := parseSourceDescription(listing, "missing"); got != "" {
		t.Errorf("missing description = %q, want empty", got)
	}
}
