package cli

import (
	"strings"
	"testing"

	"github.com/eolscan/eolscan/pkg/report"
)

func TestRenderDashboardGroupsByEcosystem(t *testing.T) {
	days := 42
	statuses := []report.ProjectStatus{
		{
			Name:      "shop",
			Ecosystem: "ruby",
			Components: []report.Component{
				{Tech: "ruby", Version: "3.2.2", EOLDate: "2027-03-31", DaysLeft: &days, State: report.StateOK},
				{Tech: "postgres", Version: "16.2", State: report.StateUnknown},
			},
		},
		{Name: "cache-only", Components: []report.Component{
			{Tech: "redis", Version: "7.2.4", State: report.StateSupported},
		}},
		{Name: "bare"},
	}

	out := renderDashboard(statuses)

	for _, want := range []string{"ruby", "shop", "3.2.2", "2027-03-31", "42", "postgres"} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard missing %q:\n%s", want, out)
		}
	}

	// Projects without a primary ecosystem are not tabulated, only counted;
	// they remain reachable through export and the API.
	for _, hidden := range []string{"cache-only", "bare", "redis"} {
		if strings.Contains(out, hidden) {
			t.Errorf("dashboard should not tabulate %q:\n%s", hidden, out)
		}
	}
	if !strings.Contains(out, "2 projects without a primary ecosystem") {
		t.Errorf("dashboard missing hidden-project note:\n%s", out)
	}
}

func TestRenderDashboardAllHidden(t *testing.T) {
	out := renderDashboard([]report.ProjectStatus{{Name: "bare"}})
	if strings.Contains(out, "bare") {
		t.Errorf("dashboard should not tabulate ecosystem-less projects:\n%s", out)
	}
	if !strings.Contains(out, "1 projects without a primary ecosystem") {
		t.Errorf("dashboard missing hidden-project note:\n%s", out)
	}
}

func TestStateStyleCoversAllStates(t *testing.T) {
	states := []report.State{
		report.StateUnknown,
		report.StateSupported,
		report.StateOK,
		report.StateExpiring,
		report.StateExpired,
	}
	for _, s := range states {
		if stateStyle(s).Render(s.String()) == "" {
			t.Errorf("state %v rendered empty", s)
		}
	}
}
