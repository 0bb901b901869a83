package mic

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// parseMuteOutput parses `pactl get-source-mute` output ("Mute: yes").
func parseMuteOutput(out string) (bool, error) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "Mute:") {
			continue
		}
		switch strings.TrimSpace(strings.TrimPrefix(line, "Mute:")) {
		case "yes":
			return true, nil
		case "no":
			return false, nil
		}
	}
	return false, errors.Errorf("unexpected pactl output: %q", strings.TrimSpace(out))
}

// isSourceEvent reports whether a `pactl subscribe` line may change the
// default source's mute state. Server events cover a new default source.
// Source-output events (streams recording from a source) do not count.
func isSourceEvent(line string) bool {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "Event ") {
		return false
	}
	return strings.Contains(line, " on source #") || strings.Contains(line, " on server")
}

// parseInputVolume parses `input volume of (get volume settings)`, which is
// 0-100, or "missing value" when there is no input device.
func parseInputVolume(out string) (int, error) {
	s := strings.TrimSpace(out)
	if s == "missing value" || s == "" {
		return 0, errors.Wrap(ErrUnavailable, "no input device")
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(err, "parse input volume %q", s)
	}
	return v, nil
}

// parseSourceDescription finds the Description of source name in
// `pactl list sources` output. Monitor sources yield "".
func parseSourceDescription(listing, name string) string {
	inSource := false
	for _, line := range strings.Split(listing, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "Name: ") {
			inSource = strings.TrimPrefix(trimmed, "Name: ") == name
		}
		if inSource && strings.HasPrefix(trimmed, "Description: ") {
			desc := strings.TrimPrefix(trimmed, "Description: ")
			if strings.HasPrefix(desc, "Monitor of ") {
				return ""
			}
			return desc
		}
	}
	return ""
}
