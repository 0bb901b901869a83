package keys

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pkg/errors"
)

// ErrUnknownKey is returned by Parse for names that match no key.
var ErrUnknownKey = errors.New("unknown key")

// aliases maps friendly lower-case names onto raw codes. Bare modifier
// names resolve to the left variant, which normalizes to the canonical key.
var aliases = map[string]Code{
	"ctrl":      CodeLeftCtrl,
	"control":   CodeLeftCtrl,
	"shift":     CodeLeftShift,
	"alt":       CodeLeftAlt,
	"option":    CodeLeftAlt,
	"opt":       CodeLeftAlt,
	"super":     CodeLeftMeta,
	"win":       CodeLeftMeta,
	"windows":   CodeLeftMeta,
	"cmd":       CodeLeftMeta,
	"command":   CodeLeftMeta,
	"meta":      CodeLeftMeta,
	"space":     CodeSpace,
	"enter":     CodeEnter,
	"return":    CodeEnter,
	"esc":       CodeEsc,
	"escape":    CodeEsc,
	"tab":       CodeTab,
	"del":       nameTable["KEY_DELETE"],
	"delete":    nameTable["KEY_DELETE"],
	"backspace": nameTable["KEY_BACKSPACE"],
	"pgup":      nameTable["KEY_PAGEUP"],
	"pgdn":      nameTable["KEY_PAGEDOWN"],
}

// Parse resolves a key name to a raw code. It accepts KEY_* names
// ("KEY_F12"), bare names ("F12", "m", "space") and modifier aliases
// ("ctrl", "cmd", "option", "super"), case-insensitively.
func Parse(name string) (Code, error) {
	trimmed := strings.TrimSpace(name)
	lower := strings.ToLower(trimmed)
	if lower == "" {
		return 0, errors.Wrap(ErrUnknownKey, "empty key name")
	}
	if code, ok := aliases[lower]; ok {
		return code, nil
	}
	upper := strings.ToUpper(trimmed)
	if code, ok := nameTable[upper]; ok {
		return code, nil
	}
	if code, ok := nameTable["KEY_"+upper]; ok {
		return code, nil
	}
	if s := suggest(lower); s != "" {
		return 0, errors.Wrapf(ErrUnknownKey, "%q (did you mean %s?)", trimmed, s)
	}
	return 0, errors.Wrapf(ErrUnknownKey, "%q", trimmed)
}

// candidates lists the lower-case spellings accepted by Parse.
var candidates = func() []string {
	out := make([]string, 0, len(aliases)+len(nameTable))
	for a := range aliases {
		out = append(out, a)
	}
	for name := range nameTable {
		out = append(out, strings.ToLower(strings.TrimPrefix(name, "KEY_")))
	}
	sort.Strings(out)
	return out
}()

// suggest returns the closest accepted spelling for a misspelled name, or ""
// when nothing is reasonably close.
func suggest(name string) string {
	name = strings.TrimPrefix(name, "key_")
	if len(name) < 2 {
		return ""
	}
	ranks := fuzzy.RankFindNormalizedFold(name, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best, bestDist := "", 3
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
