package detect

import (
	"regexp"
	"strings"
)

var (
	// "ruby-3.3.0", "python-3.11", "rust-1.75.0" -> numeric remainder
	namePrefixRE = regexp.MustCompile(`^[A-Za-z]+-(\d.*)$`)
	// "3.1.4p223" -> "3.1.4" (ruby patch level)
	patchLevelRE = regexp.MustCompile(`^(\d+(?:\.\d+)*)p\d+$`)
)

// Normalize reduces a raw detected string to canonical dotted-numeric form.
//
// It strips technology-name prefixes ("ruby-3.3.0"), a leading "v"
// ("v18.16.0"), constraint operators (">=", "~>", "^", ...), keeps only the
// first clause of a comma- or space-separated range (">=3.9,<4.0"), drops
// trailing ruby patch levels ("3.1.4p223") and ".x" wildcards ("18.x"), and
// truncates version+date composites ("1.75.0-2023-12-21").
//
// This is best-effort cleanup, not a parser: whatever survives the
// transformations is passed through as-is. Normalize is idempotent.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// Leading constraint operators and the whitespace around them.
	s = strings.TrimLeft(s, "><=~^ \t")

	// First clause of a range.
	if i := strings.IndexAny(s, ", \t"); i >= 0 {
		s = s[:i]
	}

	if m := namePrefixRE.FindStringSubmatch(s); m != nil {
		s = m[1]
	}

	if len(s) > 1 && (s[0] == 'v' || s[0] == 'V') && s[1] >= '0' && s[1] <= '9' {
		s = s[1:]
	}

	// Version+date composites and image-tag style suffixes: keep the
	// leading segment when it starts numeric ("1.75.0-2023-12-21").
	if i := strings.IndexByte(s, '-'); i > 0 && s[0] >= '0' && s[0] <= '9' {
		s = s[:i]
	}

	if m := patchLevelRE.FindStringSubmatch(s); m != nil {
		s = m[1]
	}

	s = strings.TrimSuffix(s, ".x")
	s = strings.TrimSuffix(s, ".X")

	return s
}

// nodeCodenames maps Node.js LTS codenames to their major version.
var nodeCodenames = map[string]string{
	"hydrogen": "18",
	"gallium":  "16",
	"fermium":  "14",
}

// nodeAlias resolves an LTS codename ("hydrogen", "lts/hydrogen") to its
// major version. Unrecognized codenames yield ok=false.
func nodeAlias(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "lts/")
	v, ok := nodeCodenames[s]
	return v, ok
}
