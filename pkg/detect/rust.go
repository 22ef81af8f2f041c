package detect

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

var rustcVersionRE = regexp.MustCompile(`rustc (\d[\d.]*)`)

type toolchainFile struct {
	Toolchain struct {
		Channel string `toml:"channel"`
	} `toml:"toolchain"`
}

type cargoManifest struct {
	Package struct {
		RustVersion string `toml:"rust-version"`
	} `toml:"package"`
}

// RustDetector detects the Rust toolchain version of a project.
//
// Source priority: rust-toolchain.toml, legacy plain rust-toolchain file,
// the Cargo.toml rust-version field (MSRV), container manifest, then
// `rustc --version` — the shell probe only runs when a Rust project marker
// exists, so a globally installed toolchain does not tag unrelated checkouts.
type RustDetector struct {
	fs  FS
	run Runner
}

func NewRustDetector(fs FS, run Runner) *RustDetector { return &RustDetector{fs: fs, run: run} }

func (d *RustDetector) Tech() Tech { return Rust }

func (d *RustDetector) Present(dir string) bool {
	return existsAny(d.fs,
		filepath.Join(dir, "rust-toolchain.toml"),
		filepath.Join(dir, "rust-toolchain"),
		filepath.Join(dir, "Cargo.toml"),
	) || composeHasImage(d.fs, dir, "rust")
}

func (d *RustDetector) Detect(dir string) (string, bool) {
	if text, ok := d.fs.ReadText(filepath.Join(dir, "rust-toolchain.toml")); ok {
		if v, ok := channelVersion(parseToolchainChannel(text)); ok {
			return v, true
		}
	}
	if text, ok := d.fs.ReadText(filepath.Join(dir, "rust-toolchain")); ok {
		// The legacy file is either bare TOML or a single channel string.
		channel := parseToolchainChannel(text)
		if channel == "" {
			channel = firstLine(text)
		}
		if v, ok := channelVersion(channel); ok {
			return v, true
		}
	}
	if text, ok := d.fs.ReadText(filepath.Join(dir, "Cargo.toml")); ok {
		var m cargoManifest
		if err := toml.Unmarshal([]byte(text), &m); err == nil {
			if v := Normalize(m.Package.RustVersion); v != "" {
				return v, true
			}
		}
	}
	if v, ok := composeImageVersion(d.fs, dir, "rust"); ok {
		return v, true
	}
	if d.Present(dir) {
		if out, ok := d.run.Run("rustc", "--version"); ok {
			if m := rustcVersionRE.FindStringSubmatch(out); m != nil {
				return m[1], true
			}
		}
	}
	return "", false
}

func parseToolchainChannel(text string) string {
	var f toolchainFile
	if err := toml.Unmarshal([]byte(text), &f); err != nil {
		return ""
	}
	return f.Toolchain.Channel
}

// channelVersion filters toolchain channel strings down to pinned versions.
// Bare channels ("stable", "beta", "nightly", "nightly-2023-12-21") carry no
// version an EOL cycle could match, so they read as absent.
func channelVersion(channel string) (string, bool) {
	c := strings.TrimSpace(channel)
	if c == "" {
		return "", false
	}
	base := c
	if i := strings.IndexByte(base, '-'); i >= 0 {
		base = base[:i]
	}
	switch base {
	case "stable", "beta", "nightly":
		return "", false
	}
	v := Normalize(c)
	if v == "" || v[0] < '0' || v[0] > '9' {
		return "", false
	}
	return v, true
}
