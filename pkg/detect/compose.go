package detect

import (
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// composeFiles are the container-manifest names checked in order.
var composeFiles = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

var leadingVersionRE = regexp.MustCompile(`^(\d+(?:\.\d+)*)`)

type composeDoc struct {
	Services map[string]struct {
		Image string `yaml:"image"`
	} `yaml:"services"`
}

func readCompose(fs FS, dir string) (composeDoc, bool) {
	for _, name := range composeFiles {
		text, ok := fs.ReadText(filepath.Join(dir, name))
		if !ok {
			continue
		}
		var doc composeDoc
		if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
			continue
		}
		if len(doc.Services) > 0 {
			return doc, true
		}
	}
	return composeDoc{}, false
}

// composeImageVersion scans the project's compose manifest for a service
// whose image matches one of names and returns the numeric leading part of
// its tag. Suffixes like "-alpine" or "-rc1" are discarded; an untagged or
// non-numerically-tagged image yields no version.
func composeImageVersion(fs FS, dir string, names ...string) (string, bool) {
	doc, ok := readCompose(fs, dir)
	if !ok {
		return "", false
	}
	for _, svc := range doc.Services {
		if v, ok := imageTagVersion(svc.Image, names); ok {
			return v, true
		}
	}
	return "", false
}

// composeHasImage reports whether the compose manifest declares any service
// with a matching image, tagged or not.
func composeHasImage(fs FS, dir string, names ...string) bool {
	doc, ok := readCompose(fs, dir)
	if !ok {
		return false
	}
	for _, svc := range doc.Services {
		if base, _ := splitImage(svc.Image); matchesImage(base, names) {
			return true
		}
	}
	return false
}

func imageTagVersion(image string, names []string) (string, bool) {
	base, tag := splitImage(image)
	if !matchesImage(base, names) || tag == "" {
		return "", false
	}
	m := leadingVersionRE.FindStringSubmatch(tag)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// splitImage separates "registry/name:tag" into the bare image name and tag.
func splitImage(image string) (base, tag string) {
	s := strings.TrimSpace(image)
	if s == "" {
		return "", ""
	}
	name := s
	if i := strings.LastIndex(s, ":"); i >= 0 && !strings.Contains(s[i+1:], "/") {
		name, tag = s[:i], s[i+1:]
	}
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name, tag
}

func matchesImage(base string, names []string) bool {
	for _, n := range names {
		if base == n {
			return true
		}
	}
	return false
}
