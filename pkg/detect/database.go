package detect

import (
	"fmt"
	"regexp"
	"strings"
)

// DatabaseVariant supplies the per-database capabilities the shared
// DatabaseDetector orchestration composes: the adapter names that mark the
// database as configured, the shell probe, and the lockfile-gem fallback.
type DatabaseVariant interface {
	Tech() Tech
	AdapterNames() []string
	ShellProbe(run Runner) (string, bool)
	GemLockFallback(fs FS, dir string) (string, bool)
}

// DatabaseDetector detects a relational database's server version.
//
// Detection is gated on config/database.yml declaring a matching adapter.
// The shell probe is skipped entirely when the configured host is remote;
// detection then falls through to the lockfile driver-gem version, which is
// labeled with the gem name since it is a client-side proxy for the server
// version.
type DatabaseDetector struct {
	fs      FS
	run     Runner
	variant DatabaseVariant
}

// NewPostgresDetector builds the PostgreSQL detector.
func NewPostgresDetector(fs FS, run Runner) *DatabaseDetector {
	return &DatabaseDetector{fs: fs, run: run, variant: postgresVariant{}}
}

// NewMySQLDetector builds the MySQL/MariaDB detector.
func NewMySQLDetector(fs FS, run Runner) *DatabaseDetector {
	return &DatabaseDetector{fs: fs, run: run, variant: mysqlVariant{}}
}

func (d *DatabaseDetector) Tech() Tech { return d.variant.Tech() }

func (d *DatabaseDetector) Present(dir string) bool {
	_, ok := d.settings(dir)
	return ok
}

func (d *DatabaseDetector) Detect(dir string) (string, bool) {
	s, ok := d.settings(dir)
	if !ok {
		return "", false
	}
	if isLocalHost(s.Host) {
		if v, ok := d.variant.ShellProbe(d.run); ok {
			return v, true
		}
	}
	return d.variant.GemLockFallback(d.fs, dir)
}

func (d *DatabaseDetector) settings(dir string) (dbSettings, bool) {
	s, ok := resolveDatabaseConfig(d.fs, dir)
	if !ok {
		return dbSettings{}, false
	}
	for _, name := range d.variant.AdapterNames() {
		if s.Adapter == name {
			return s, true
		}
	}
	return dbSettings{}, false
}

// gemLabel formats a lockfile-gem fallback version, e.g. "1.5.4 (pg gem)".
// The label survives into display; EOL resolution normalizes it away.
func gemLabel(version, gem string) string {
	return fmt.Sprintf("%s (%s gem)", version, gem)
}

// ---- PostgreSQL ----

var (
	psqlVersionRE  = regexp.MustCompile(`\(PostgreSQL\) (\d[\d.]*)`)
	firstDottedNum = regexp.MustCompile(`\d+(?:\.\d+)+`)
)

type postgresVariant struct{}

func (postgresVariant) Tech() Tech             { return Postgres }
func (postgresVariant) AdapterNames() []string { return []string{"postgresql"} }

// ShellProbe parses `psql --version`. Plain builds report
// "psql (PostgreSQL) 15.3"; distro builds may only expose the version inside
// a vendor suffix like "(Ubuntu 14.9-1.pgdg22.04+1)", where the first dotted
// number is the server version.
func (postgresVariant) ShellProbe(run Runner) (string, bool) {
	out, ok := run.Run("psql", "--version")
	if !ok {
		return "", false
	}
	if m := psqlVersionRE.FindStringSubmatch(out); m != nil {
		return m[1], true
	}
	if m := firstDottedNum.FindString(out); m != "" {
		return m, true
	}
	return "", false
}

func (postgresVariant) GemLockFallback(fs FS, dir string) (string, bool) {
	if v, ok := lockedGemVersion(fs, dir, "pg"); ok {
		return gemLabel(v, "pg"), true
	}
	return "", false
}

// ---- MySQL / MariaDB ----

var (
	mysqlDistribRE = regexp.MustCompile(`Distrib (\d[\d.]*)`)
	mysqlVerRE     = regexp.MustCompile(`Ver (\d[\d.]*)`)
)

type mysqlVariant struct{}

func (mysqlVariant) Tech() Tech             { return MySQL }
func (mysqlVariant) AdapterNames() []string { return []string{"mysql2", "trilogy"} }

// ShellProbe parses `mysql --version`. MariaDB clients report both a client
// "Ver" and a server "Distrib" version; the Distrib one is the real server
// train and wins when present.
func (mysqlVariant) ShellProbe(run Runner) (string, bool) {
	out, ok := run.Run("mysql", "--version")
	if !ok {
		return "", false
	}
	if strings.Contains(out, "Distrib") {
		if m := mysqlDistribRE.FindStringSubmatch(out); m != nil {
			return m[1], true
		}
		return "", false
	}
	if m := mysqlVerRE.FindStringSubmatch(out); m != nil {
		return m[1], true
	}
	return "", false
}

func (mysqlVariant) GemLockFallback(fs FS, dir string) (string, bool) {
	for _, gem := range []string{"mysql2", "trilogy"} {
		if v, ok := lockedGemVersion(fs, dir, gem); ok {
			return gemLabel(v, gem), true
		}
	}
	return "", false
}
