package detect

import (
	"path/filepath"
	"regexp"
)

var (
	goDirectiveRE    = regexp.MustCompile(`(?m)^go +(\d[\d.]*)`)
	goShellVersionRE = regexp.MustCompile(`go version go(\d[\d.]*)`)
)

// GoDetector detects the Go toolchain version of a project.
//
// Source priority: go.mod directive, go.work directive, .go-version pin
// file, container manifest, then `go version` — the shell probe only runs
// when a Go project marker exists, so a globally installed toolchain does
// not tag unrelated checkouts.
type GoDetector struct {
	fs  FS
	run Runner
}

func NewGoDetector(fs FS, run Runner) *GoDetector { return &GoDetector{fs: fs, run: run} }

func (d *GoDetector) Tech() Tech { return Go }

func (d *GoDetector) markers(dir string) bool {
	return existsAny(d.fs,
		filepath.Join(dir, "go.mod"),
		filepath.Join(dir, "go.work"),
		filepath.Join(dir, ".go-version"),
	)
}

func (d *GoDetector) Present(dir string) bool {
	return d.markers(dir) || composeHasImage(d.fs, dir, "golang")
}

func (d *GoDetector) Detect(dir string) (string, bool) {
	for _, manifest := range []string{"go.mod", "go.work"} {
		if text, ok := d.fs.ReadText(filepath.Join(dir, manifest)); ok {
			if m := goDirectiveRE.FindStringSubmatch(text); m != nil {
				return m[1], true
			}
		}
	}
	if text, ok := d.fs.ReadText(filepath.Join(dir, ".go-version")); ok {
		if v := Normalize(firstLine(text)); v != "" {
			return v, true
		}
	}
	if v, ok := composeImageVersion(d.fs, dir, "golang"); ok {
		return v, true
	}
	if d.markers(dir) {
		if out, ok := d.run.Run("go", "version"); ok {
			if m := goShellVersionRE.FindStringSubmatch(out); m != nil {
				return m[1], true
			}
		}
	}
	return "", false
}
