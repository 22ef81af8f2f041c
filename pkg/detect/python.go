package detect

import (
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
)

var (
	pyvenvVersionRE  = regexp.MustCompile(`(?m)^version(?:_info)?\s*=\s*(\d[\d.]*)`)
	pythonShellVerRE = regexp.MustCompile(`Python (\d[\d.]*)`)
)

type pyprojectFile struct {
	Project struct {
		RequiresPython string `toml:"requires-python"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// PythonDetector detects the Python version of a project.
//
// Source priority: pyproject.toml (PEP 621 requires-python, then the poetry
// python constraint), .python-version pin file, pyvenv.cfg, container
// manifest, then a gated shell probe (python3 first, python as fallback).
type PythonDetector struct {
	fs  FS
	run Runner
}

func NewPythonDetector(fs FS, run Runner) *PythonDetector { return &PythonDetector{fs: fs, run: run} }

func (d *PythonDetector) Tech() Tech { return Python }

func (d *PythonDetector) markers(dir string) bool {
	return existsAny(d.fs,
		filepath.Join(dir, "pyproject.toml"),
		filepath.Join(dir, ".python-version"),
		filepath.Join(dir, "requirements.txt"),
		filepath.Join(dir, "setup.py"),
		filepath.Join(dir, "Pipfile"),
	)
}

func (d *PythonDetector) Present(dir string) bool {
	return d.markers(dir) || composeHasImage(d.fs, dir, "python")
}

func (d *PythonDetector) Detect(dir string) (string, bool) {
	if text, ok := d.fs.ReadText(filepath.Join(dir, "pyproject.toml")); ok {
		if v, ok := pyprojectVersion(text); ok {
			return v, true
		}
	}
	if text, ok := d.fs.ReadText(filepath.Join(dir, ".python-version")); ok {
		if v := Normalize(firstLine(text)); v != "" {
			return v, true
		}
	}
	if text, ok := d.fs.ReadText(filepath.Join(dir, "pyvenv.cfg")); ok {
		if m := pyvenvVersionRE.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}
	if v, ok := composeImageVersion(d.fs, dir, "python"); ok {
		return v, true
	}
	if d.markers(dir) {
		for _, bin := range []string{"python3", "python"} {
			if out, ok := d.run.Run(bin, "--version"); ok {
				if m := pythonShellVerRE.FindStringSubmatch(out); m != nil {
					return m[1], true
				}
			}
		}
	}
	return "", false
}

func pyprojectVersion(text string) (string, bool) {
	var f pyprojectFile
	if err := toml.Unmarshal([]byte(text), &f); err != nil {
		return "", false
	}
	if v := Normalize(f.Project.RequiresPython); v != "" {
		return v, true
	}
	if raw, ok := f.Tool.Poetry.Dependencies["python"].(string); ok {
		if v := Normalize(raw); v != "" {
			return v, true
		}
	}
	return "", false
}
