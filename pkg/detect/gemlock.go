package detect

import (
	"path/filepath"
	"regexp"
)

const gemfileLock = "Gemfile.lock"

// lockedGemVersion returns the resolved version of a gem from Gemfile.lock.
// Top-level gem entries sit at exactly 4-space indentation in the GEM specs
// section; the parenthetical there is always a concrete pinned version, so
// the capture is returned verbatim with no normalization.
func lockedGemVersion(fs FS, dir, gem string) (string, bool) {
	text, ok := fs.ReadText(filepath.Join(dir, gemfileLock))
	if !ok {
		return "", false
	}
	re := regexp.MustCompile(`(?m)^    ` + regexp.QuoteMeta(gem) + ` \(([^)]+)\)`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// lockMentionsGem reports whether Gemfile.lock pins any of the given gems.
func lockMentionsGem(fs FS, dir string, gems ...string) bool {
	for _, g := range gems {
		if _, ok := lockedGemVersion(fs, dir, g); ok {
			return true
		}
	}
	return false
}

var lockRubyVersionRE = regexp.MustCompile(`RUBY VERSION\s+ruby (\d[\w.]*)`)

// rubyVersionFromLock reads the RUBY VERSION section of Gemfile.lock.
// The raw value may carry a patch level ("3.2.2p53").
func rubyVersionFromLock(fs FS, dir string) (string, bool) {
	text, ok := fs.ReadText(filepath.Join(dir, gemfileLock))
	if !ok {
		return "", false
	}
	m := lockRubyVersionRE.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
