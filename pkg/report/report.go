// Package report turns stored project records into displayable and
// exportable EOL status views.
package report

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/eolscan/eolscan/pkg/detect"
	"github.com/eolscan/eolscan/pkg/eol"
	"github.com/eolscan/eolscan/pkg/store"
)

// DefaultWarningWindow is how far ahead of a published EOL date a component
// counts as expiring.
const DefaultWarningWindow = 90 * 24 * time.Hour

// State classifies a component's support position.
type State int

const (
	// StateUnknown means no EOL data resolved for the detected version.
	StateUnknown State = iota
	// StateSupported means the registry marks the cycle supported with no
	// published sunset date.
	StateSupported
	// StateOK means the published EOL date is comfortably in the future.
	StateOK
	// StateExpiring means the published EOL date is inside the warning window.
	StateExpiring
	// StateExpired means the cycle is past EOL.
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateSupported:
		return "supported"
	case StateOK:
		return "ok"
	case StateExpiring:
		return "expiring"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *State) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "supported":
		*s = StateSupported
	case "ok":
		*s = StateOK
	case "expiring":
		*s = StateExpiring
	case "expired":
		*s = StateExpired
	default:
		*s = StateUnknown
	}
	return nil
}

// Component is one resolved technology within a project.
type Component struct {
	Tech    string `json:"tech"`
	Version string `json:"version"`
	EOLDate string `json:"eol_date,omitempty"`
	// DaysLeft is days until the published EOL date, negative once past it.
	// Nil when no date is published.
	DaysLeft *int  `json:"days_left,omitempty"`
	State    State `json:"state"`
}

// ProjectStatus is the full resolved view of one tracked project.
type ProjectStatus struct {
	Name        string      `json:"name"`
	Path        string      `json:"path"`
	Ecosystem   string      `json:"ecosystem,omitempty"`
	LastScanned time.Time   `json:"last_scanned"`
	Components  []Component `json:"components"`
}

// WorstState is the most urgent state across the project's components,
// unknown counting as least urgent.
func (p ProjectStatus) WorstState() State {
	worst := StateUnknown
	for _, c := range p.Components {
		if rank(c.State) > rank(worst) {
			worst = c.State
		}
	}
	return worst
}

func rank(s State) int {
	switch s {
	case StateExpired:
		return 4
	case StateExpiring:
		return 3
	case StateOK:
		return 2
	case StateSupported:
		return 1
	default:
		return 0
	}
}

// Builder resolves components against the EOL registry.
type Builder struct {
	registry *eol.Registry
	window   time.Duration
	now      func() time.Time
}

// NewBuilder creates a builder. A window of 0 uses the default.
func NewBuilder(registry *eol.Registry, window time.Duration) *Builder {
	if window <= 0 {
		window = DefaultWarningWindow
	}
	return &Builder{registry: registry, window: window, now: time.Now}
}

// Project resolves every component of a stored project. Components appear
// in a fixed technology order regardless of map iteration.
func (b *Builder) Project(ctx context.Context, p store.Project) ProjectStatus {
	status := ProjectStatus{
		Name:        p.Name,
		Path:        p.Path,
		LastScanned: p.LastScanned,
	}
	if eco, ok := detect.PrimaryEcosystem(p.Components); ok {
		status.Ecosystem = eco.ID()
	}

	for _, tech := range detect.Techs {
		version, ok := p.Components[tech.ID()]
		if !ok || version == "" {
			continue
		}
		status.Components = append(status.Components, b.component(ctx, tech, version))
	}
	return status
}

func (b *Builder) component(ctx context.Context, tech detect.Tech, version string) Component {
	c := Component{Tech: tech.ID(), Version: version, State: StateUnknown}

	value, ok := b.registry.EOLFor(ctx, eol.ProductForTech(tech), version)
	if !ok {
		return c
	}

	switch {
	case value.Known:
		days := daysUntil(b.now().UTC(), value.Date)
		c.EOLDate = value.Date.Format("2006-01-02")
		c.DaysLeft = &days
		switch {
		case days < 0:
			c.State = StateExpired
		case time.Duration(days)*24*time.Hour <= b.window:
			c.State = StateExpiring
		default:
			c.State = StateOK
		}
	case value.Expired:
		c.State = StateExpired
	default:
		c.State = StateSupported
	}
	return c
}

// All resolves every tracked project, ordered by name.
func (b *Builder) All(ctx context.Context, projects map[string]store.Project) []ProjectStatus {
	statuses := make([]ProjectStatus, 0, len(projects))
	for _, name := range store.Names(projects) {
		statuses = append(statuses, b.Project(ctx, projects[name]))
	}
	return statuses
}

// ByEcosystem groups statuses under their primary ecosystem id, with
// ecosystem-less projects under the empty key. Groups keep name order.
func ByEcosystem(statuses []ProjectStatus) map[string][]ProjectStatus {
	groups := make(map[string][]ProjectStatus)
	for _, s := range statuses {
		groups[s.Ecosystem] = append(groups[s.Ecosystem], s)
	}
	return groups
}

// Ecosystems returns the sorted group keys, with the empty "no ecosystem"
// key last when present.
func Ecosystems(groups map[string][]ProjectStatus) []string {
	keys := make([]string, 0, len(groups))
	hasEmpty := false
	for k := range groups {
		if k == "" {
			hasEmpty = true
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if hasEmpty {
		keys = append(keys, "")
	}
	return keys
}

// daysUntil counts whole days from now to the date, flooring toward the
// past so any time on EOL day itself still reads as zero days left.
func daysUntil(now, date time.Time) int {
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	eolDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return int(eolDay.Sub(nowDay) / (24 * time.Hour))
}
