package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/eolscan/eolscan/pkg/errors"
)

// Format is a supported export encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatCSV
)

func (f Format) String() string {
	if f == FormatCSV {
		return "csv"
	}
	return "json"
}

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return FormatJSON, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported export format %q (expected json or csv)", name)
	}
}

// Report is a point-in-time export of every tracked project's status.
type Report struct {
	ID          string          `json:"id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Projects    []ProjectStatus `json:"projects"`
}

// NewReport wraps resolved statuses with an export identity.
func NewReport(statuses []ProjectStatus) Report {
	return Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Projects:    statuses,
	}
}

// Encode renders the report in the requested format.
func (r Report) Encode(f Format) ([]byte, error) {
	if f == FormatCSV {
		return r.csv()
	}
	return r.json()
}

func (r Report) json() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding report")
	}
	return append(data, '\n'), nil
}

var csvHeader = []string{"project", "path", "ecosystem", "tech", "version", "eol_date", "days_left", "state"}

// csv renders one row per component. Projects without components still get
// a row so they stay visible in spreadsheet views.
func (r Report) csv() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding report")
	}
	for _, p := range r.Projects {
		if len(p.Components) == 0 {
			if err := w.Write([]string{p.Name, p.Path, p.Ecosystem, "", "", "", "", ""}); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding report")
			}
			continue
		}
		for _, c := range p.Components {
			days := ""
			if c.DaysLeft != nil {
				days = strconv.Itoa(*c.DaysLeft)
			}
			row := []string{p.Name, p.Path, p.Ecosystem, c.Tech, c.Version, c.EOLDate, days, c.State.String()}
			if err := w.Write(row); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding report")
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding report")
	}
	return buf.Bytes(), nil
}
