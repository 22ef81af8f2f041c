package detect

import (
	"encoding/json"
	"path/filepath"
	"regexp"
)

var nodeShellVersionRE = regexp.MustCompile(`v?(\d[\d.]*)`)

type packageJSON struct {
	Engines struct {
		Node string `json:"node"`
	} `json:"engines"`
}

// NodeDetector detects the Node.js version of a project.
//
// Source priority: .nvmrc, .node-version, the package.json engines.node
// field, container manifest, then a gated `node --version` probe. Pin files
// may carry an LTS codename ("hydrogen", "lts/gallium"), which maps to its
// major version; an unrecognized codename yields no version.
type NodeDetector struct {
	fs  FS
	run Runner
}

func NewNodeDetector(fs FS, run Runner) *NodeDetector { return &NodeDetector{fs: fs, run: run} }

func (d *NodeDetector) Tech() Tech { return NodeJS }

func (d *NodeDetector) markers(dir string) bool {
	return existsAny(d.fs,
		filepath.Join(dir, "package.json"),
		filepath.Join(dir, ".nvmrc"),
		filepath.Join(dir, ".node-version"),
		filepath.Join(dir, "package-lock.json"),
		filepath.Join(dir, "yarn.lock"),
	)
}

func (d *NodeDetector) Present(dir string) bool {
	return d.markers(dir) || composeHasImage(d.fs, dir, "node")
}

func (d *NodeDetector) Detect(dir string) (string, bool) {
	for _, pin := range []string{".nvmrc", ".node-version"} {
		if text, ok := d.fs.ReadText(filepath.Join(dir, pin)); ok {
			if v, ok := nodePinVersion(firstLine(text)); ok {
				return v, true
			}
		}
	}
	if text, ok := d.fs.ReadText(filepath.Join(dir, "package.json")); ok {
		var pkg packageJSON
		if err := json.Unmarshal([]byte(text), &pkg); err == nil {
			if v := Normalize(pkg.Engines.Node); v != "" {
				return v, true
			}
		}
	}
	if v, ok := composeImageVersion(d.fs, dir, "node"); ok {
		return v, true
	}
	if d.markers(dir) {
		if out, ok := d.run.Run("node", "--version"); ok {
			if m := nodeShellVersionRE.FindStringSubmatch(out); m != nil {
				return m[1], true
			}
		}
	}
	return "", false
}

// nodePinVersion interprets a version-pin file value: numeric pins normalize
// as usual, anything else is tried as an LTS codename.
func nodePinVersion(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	if v := Normalize(raw); v != "" && v[0] >= '0' && v[0] <= '9' {
		return v, true
	}
	return nodeAlias(raw)
}
