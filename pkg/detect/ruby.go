package detect

import (
	"path/filepath"
	"regexp"
)

var gemfileRubyRE = regexp.MustCompile(`(?m)^\s*ruby\s+['"]([^'"]+)['"]`)

// RubyDetector detects the Ruby version of a project.
//
// Source priority: .ruby-version pin file, then the Gemfile's inline ruby
// declaration, then the RUBY VERSION section of Gemfile.lock.
type RubyDetector struct {
	fs FS
}

func NewRubyDetector(fs FS) *RubyDetector { return &RubyDetector{fs: fs} }

func (d *RubyDetector) Tech() Tech { return Ruby }

func (d *RubyDetector) Present(dir string) bool {
	return existsAny(d.fs,
		filepath.Join(dir, ".ruby-version"),
		filepath.Join(dir, "Gemfile"),
		filepath.Join(dir, gemfileLock),
	)
}

func (d *RubyDetector) Detect(dir string) (string, bool) {
	if text, ok := d.fs.ReadText(filepath.Join(dir, ".ruby-version")); ok {
		if v := Normalize(firstLine(text)); v != "" {
			return v, true
		}
	}
	if text, ok := d.fs.ReadText(filepath.Join(dir, "Gemfile")); ok {
		if m := gemfileRubyRE.FindStringSubmatch(text); m != nil {
			if v := Normalize(m[1]); v != "" {
				return v, true
			}
		}
	}
	if raw, ok := rubyVersionFromLock(d.fs, dir); ok {
		if v := Normalize(raw); v != "" {
			return v, true
		}
	}
	return "", false
}
