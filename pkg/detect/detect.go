// Package detect finds the versions of language runtimes, frameworks, and
// datastores used by a project directory.
//
// Each technology has a Detector that tries an ordered list of sources
// (version-pin files, manifests, lockfiles, container manifests, shell
// probes) and returns the first hit. Detection is best-effort and never
// fails: a missing file, an unparseable manifest, or a dead subprocess all
// read as "no version from this source" and the detector falls through to
// its next source.
//
// Filesystem access and subprocess execution are injected via the FS and
// Runner interfaces so tests can run against fakes.
package detect

import "strings"

// Tech identifies a supported technology. The set is closed: adding a
// technology means adding a constant here, and the compiler flags every
// switch that needs updating.
type Tech int

const (
	Ruby Tech = iota
	Rails
	Postgres
	MySQL
	Redis
	Mongo
	Python
	NodeJS
	Rust
	Go
)

// Techs lists all supported technologies in display order.
var Techs = [...]Tech{Ruby, Rails, Postgres, MySQL, Redis, Mongo, Python, NodeJS, Rust, Go}

// ID returns the stable identifier used as a component key in stored
// project records and exports.
func (t Tech) ID() string {
	switch t {
	case Ruby:
		return "ruby"
	case Rails:
		return "rails"
	case Postgres:
		return "postgres"
	case MySQL:
		return "mysql"
	case Redis:
		return "redis"
	case Mongo:
		return "mongo"
	case Python:
		return "python"
	case NodeJS:
		return "nodejs"
	case Rust:
		return "rust"
	case Go:
		return "go"
	}
	return "unknown"
}

// String returns the human-readable technology name.
func (t Tech) String() string {
	switch t {
	case Ruby:
		return "Ruby"
	case Rails:
		return "Rails"
	case Postgres:
		return "PostgreSQL"
	case MySQL:
		return "MySQL"
	case Redis:
		return "Redis"
	case Mongo:
		return "MongoDB"
	case Python:
		return "Python"
	case NodeJS:
		return "Node.js"
	case Rust:
		return "Rust"
	case Go:
		return "Go"
	}
	return "unknown"
}

// TechFromID maps a component key back to its Tech.
func TechFromID(id string) (Tech, bool) {
	for _, t := range Techs {
		if t.ID() == id {
			return t, true
		}
	}
	return 0, false
}

// Result is the outcome of one technology's detection pass.
//
// Present means some marker of the technology was found, independent of
// whether a version could be extracted. Version != "" implies Present; the
// converse does not hold, and "present but unversioned" must stay
// distinguishable from "not this kind of project".
type Result struct {
	Version string `json:"version,omitempty"`
	Present bool   `json:"present"`
}

// Detector is the per-technology detection strategy.
type Detector interface {
	// Tech identifies the technology this detector covers.
	Tech() Tech
	// Present reports whether any marker of the technology exists in dir.
	Present(dir string) bool
	// Detect returns the detected version from the highest-priority source
	// that yields one, or ok=false when no source does.
	Detect(dir string) (version string, ok bool)
}

// Detectors builds the full detector set against the given collaborators.
func Detectors(fs FS, run Runner) []Detector {
	return []Detector{
		NewRubyDetector(fs),
		NewRailsDetector(fs),
		NewPostgresDetector(fs, run),
		NewMySQLDetector(fs, run),
		NewRedisDetector(fs, run),
		NewMongoDetector(fs, run),
		NewPythonDetector(fs, run),
		NewNodeDetector(fs, run),
		NewRustDetector(fs, run),
		NewGoDetector(fs, run),
	}
}

// firstLine returns the first non-empty line of s, trimmed.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}
