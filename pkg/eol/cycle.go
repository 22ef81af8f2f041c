package eol

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Cycle is one release train in a product's EOL table. Cycle identifiers
// are unique within a product; their granularity varies (PostgreSQL cycles
// are major-only, Ruby/Rails/MySQL cycles are major.minor).
type Cycle struct {
	Cycle       cycleName `json:"cycle"`
	EOL         EOLValue  `json:"eol"`
	Latest      string    `json:"latest,omitempty"`
	ReleaseDate string    `json:"releaseDate,omitempty"`
}

// cycleName tolerates the registry serializing cycles as JSON numbers
// (older tables used bare majors like 16).
type cycleName string

func (c *cycleName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = cycleName(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = cycleName(n.String())
	return nil
}

func (c cycleName) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(c))
}

// EOLValue is the registry's eol field, which is a date string or a boolean.
// The boolean false means "actively supported, no sunset date published";
// true means "already end-of-life, date unpublished". Both must stay
// distinguishable from "no data at all", which is the absence of a match.
type EOLValue struct {
	Date    time.Time // valid when Known
	Known   bool      // a concrete date is published
	Expired bool      // boolean-true sentinel: EOL with no published date
}

func (v *EOLValue) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = EOLValue{Expired: b}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Unexpected shape: treat as the no-date sentinel rather than
		// failing the whole table.
		*v = EOLValue{}
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		*v = EOLValue{}
		return nil
	}
	*v = EOLValue{Date: t, Known: true}
	return nil
}

func (v EOLValue) MarshalJSON() ([]byte, error) {
	if v.Known {
		return json.Marshal(v.Date.Format("2006-01-02"))
	}
	return json.Marshal(v.Expired)
}

// MatchCycle maps a normalized version to its cycle table entry.
//
// Matching order:
//  1. exact major.minor match
//  2. exact major match
//  3. the numerically greatest cycle within the version's major train
//
// Step 3 covers the granularity mismatch both ways: a major.minor.patch
// version against a major-only table resolves in step 2, and a version whose
// exact minor has no entry falls back to the train's latest published minor.
// Cycle comparison in step 3 is numeric per component ("7.10" outranks
// "7.9"), not lexicographic. The fallback is a known approximation: it can
// attribute a newer minor's EOL date to an older release when the exact
// minor was never published.
func MatchCycle(cycles []Cycle, version string) (Cycle, bool) {
	if version == "" {
		return Cycle{}, false
	}
	parts := strings.Split(version, ".")
	major := parts[0]

	if len(parts) >= 2 {
		majorMinor := major + "." + parts[1]
		for _, c := range cycles {
			if string(c.Cycle) == majorMinor {
				return c, true
			}
		}
	}
	for _, c := range cycles {
		if string(c.Cycle) == major {
			return c, true
		}
	}

	var (
		best  Cycle
		bestV *semver.Version
	)
	prefix := major + "."
	for _, c := range cycles {
		if !strings.HasPrefix(string(c.Cycle), prefix) {
			continue
		}
		v, err := semver.NewVersion(string(c.Cycle))
		if err != nil {
			continue
		}
		if bestV == nil || v.GreaterThan(bestV) {
			best, bestV = c, v
		}
	}
	return best, bestV != nil
}
