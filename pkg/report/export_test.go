package report

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/eolscan/eolscan/pkg/errors"
)

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("json = %v, %v", f, err)
	}
	if f, err := ParseFormat("csv"); err != nil || f != FormatCSV {
		t.Errorf("csv = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("xml err = %v", err)
	}
}

func sampleReport() Report {
	days := -38
	return NewReport([]ProjectStatus{
		{
			Name:      "shop",
			Path:      "/srv/shop",
			Ecosystem: "ruby",
			Components: []Component{
				{Tech: "ruby", Version: "3.0.6", EOLDate: "2024-04-23", DaysLeft: &days, State: StateExpired},
				{Tech: "redis", Version: "7.2.4", State: StateSupported},
			},
		},
		{Name: "bare", Path: "/srv/bare"},
	})
}

func TestReportJSON(t *testing.T) {
	r := sampleReport()
	if _, err := uuid.Parse(r.ID); err != nil {
		t.Fatalf("report id %q: %v", r.ID, err)
	}

	data, err := r.Encode(FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["id"] != r.ID {
		t.Errorf("id = %v", decoded["id"])
	}
	text := string(data)
	if !strings.Contains(text, `"state": "expired"`) || !strings.Contains(text, `"state": "supported"`) {
		t.Errorf("states should encode as strings:\n%s", text)
	}
	if !strings.Contains(text, `"days_left": -38`) {
		t.Errorf("missing days_left:\n%s", text)
	}
}

func TestReportCSV(t *testing.T) {
	data, err := sampleReport().Encode(FormatCSV)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	// Header, two component rows, one componentless placeholder row.
	if len(rows) != 4 {
		t.Fatalf("rows = %d:\n%s", len(rows), data)
	}
	if got := strings.Join(rows[0], ","); got != "project,path,ecosystem,tech,version,eol_date,days_left,state" {
		t.Errorf("header = %q", got)
	}
	if rows[1][3] != "ruby" || rows[1][6] != "-38" || rows[1][7] != "expired" {
		t.Errorf("ruby row = %v", rows[1])
	}
	if rows[2][3] != "redis" || rows[2][6] != "" || rows[2][7] != "supported" {
		t.Errorf("redis row = %v", rows[2])
	}
	if rows[3][0] != "bare" || rows[3][3] != "" {
		t.Errorf("placeholder row = %v", rows[3])
	}
}
