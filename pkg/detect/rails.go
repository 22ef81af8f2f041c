package detect

// RailsDetector detects the Rails version of a project.
//
// Single source: the rails entry in Gemfile.lock. A resolved lockfile always
// pins a concrete version, so the captured value needs no normalization.
type RailsDetector struct {
	fs FS
}

func NewRailsDetector(fs FS) *RailsDetector { return &RailsDetector{fs: fs} }

func (d *RailsDetector) Tech() Tech { return Rails }

func (d *RailsDetector) Present(dir string) bool {
	_, ok := lockedGemVersion(d.fs, dir, "rails")
	return ok
}

func (d *RailsDetector) Detect(dir string) (string, bool) {
	return lockedGemVersion(d.fs, dir, "rails")
}
