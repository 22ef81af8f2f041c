// Package scan runs the full detector set against project directories and
// assembles the flat per-project component record.
package scan

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/eolscan/eolscan/pkg/detect"
	"github.com/eolscan/eolscan/pkg/store"
)

// Scanner runs every technology detector against a directory. Detection is
// stateless: each call reads the filesystem and subprocess state as-is.
type Scanner struct {
	fs        detect.FS
	detectors []detect.Detector
	logger    *log.Logger
}

// New creates a scanner. Nil collaborators fall back to the real
// filesystem, a real subprocess runner, and the default logger.
func New(fs detect.FS, run detect.Runner, logger *log.Logger) *Scanner {
	if fs == nil {
		fs = detect.OSFS()
	}
	if run == nil {
		run = detect.NewRunner(0)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Scanner{
		fs:        fs,
		detectors: detect.Detectors(fs, run),
		logger:    logger,
	}
}

// Scan runs every detector against dir and returns the per-technology
// results.
func (s *Scanner) Scan(dir string) map[detect.Tech]detect.Result {
	results := make(map[detect.Tech]detect.Result, len(s.detectors))
	for _, d := range s.detectors {
		version, ok := d.Detect(dir)
		present := d.Present(dir)
		if ok && version != "" {
			present = true
		} else {
			version = ""
		}
		results[d.Tech()] = detect.Result{Version: version, Present: present}
		if version != "" {
			s.logger.Debug("detected", "tech", d.Tech().ID(), "version", version)
		}
	}
	return results
}

// Components compacts scan results into the stored component map: only
// technologies with an extracted version appear, keyed by Tech.ID.
func Components(results map[detect.Tech]detect.Result) map[string]string {
	components := make(map[string]string)
	for tech, r := range results {
		if r.Version != "" {
			components[tech.ID()] = r.Version
		}
	}
	return components
}

// Project scans dir and builds a full project record.
func (s *Scanner) Project(name, dir string) store.Project {
	return store.Project{
		Name:        name,
		Path:        dir,
		Components:  Components(s.Scan(dir)),
		LastScanned: time.Now().UTC(),
	}
}

// RescanAll rescans every tracked project in name order. A project whose
// directory has gone missing is removed from the store; that is a per-item
// side effect, not a failure, and the loop continues. Store errors are
// real failures and abort the pass.
func (s *Scanner) RescanAll(ctx context.Context, st store.Store) (updated, removed []string, err error) {
	projects, err := st.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	for _, name := range store.Names(projects) {
		p := projects[name]
		if !s.fs.Exists(p.Path) {
			s.logger.Warn("project directory missing, untracking", "project", name, "path", p.Path)
			if err := st.Remove(ctx, name); err != nil {
				return updated, removed, err
			}
			removed = append(removed, name)
			continue
		}
		if err := st.Save(ctx, s.Project(name, p.Path)); err != nil {
			return updated, removed, err
		}
		updated = append(updated, name)
	}
	return updated, removed, nil
}
