// Package store persists tracked project records.
//
// A record is created or overwritten wholesale on each scan-and-save:
// the components map always reflects the latest detection pass, with absent
// components dropped rather than carried over from earlier scans. Backends:
//   - FileStore: one YAML file in the user's config directory (default)
//   - MongoStore: shared store for team deployments
package store

import (
	"context"
	"sort"
	"time"

	"github.com/eolscan/eolscan/pkg/errors"
)

// Project is one tracked project.
type Project struct {
	Name        string            `yaml:"name" json:"name" bson:"_id"`
	Path        string            `yaml:"path" json:"path" bson:"path"`
	Components  map[string]string `yaml:"components" json:"components" bson:"components"`
	LastScanned time.Time         `yaml:"last_scanned" json:"last_scanned" bson:"last_scanned"`
}

// Store is the interface for project persistence backends.
type Store interface {
	// List returns all tracked projects keyed by name.
	List(ctx context.Context) (map[string]Project, error)
	// Save upserts a project by name, replacing the record wholesale.
	Save(ctx context.Context, p Project) error
	// Remove deletes a project by name. Removing an unknown name returns
	// an ErrCodeProjectNotFound error.
	Remove(ctx context.Context, name string) error
	// Close releases backend resources.
	Close() error
}

// NotFound builds the error every backend returns for an unknown project.
func NotFound(name string) error {
	return errors.New(errors.ErrCodeProjectNotFound, "project %q is not tracked", name)
}

// Names returns the project names from a List result in sorted order, so
// rendering and bulk rescans are deterministic.
func Names(projects map[string]Project) []string {
	names := make([]string, 0, len(projects))
	for name := range projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
