package detect

import (
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

const databaseConfig = "config/database.yml"

// dbSettings is the resolved adapter/host pair from a database config.
type dbSettings struct {
	Adapter string
	Host    string
}

// envPreference orders the environment sections tried when the config is
// nested. Map iteration order is not stable, so remaining sections are
// visited in sorted-key order for determinism.
var envPreference = []string{"development", "production", "test", "staging"}

// resolveDatabaseConfig reads config/database.yml and resolves the adapter
// and host. The config may be a flat map with an adapter key, a map of
// environment sections, or (Rails 6+ multi-database style) an environment
// section of named databases where the adapter lives under "primary" or,
// failing that, the first named entry that declares one.
func resolveDatabaseConfig(fs FS, dir string) (dbSettings, bool) {
	text, ok := fs.ReadText(filepath.Join(dir, databaseConfig))
	if !ok {
		return dbSettings{}, false
	}

	var root map[string]any
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return dbSettings{}, false
	}

	if s, ok := directSettings(root); ok {
		return s, true
	}

	seen := make(map[string]bool)
	for _, env := range envPreference {
		seen[env] = true
		if sub, ok := root[env].(map[string]any); ok {
			if s, ok := sectionSettings(sub); ok {
				return s, true
			}
		}
	}
	for _, key := range sortedKeys(root) {
		if seen[key] {
			continue
		}
		if sub, ok := root[key].(map[string]any); ok {
			if s, ok := sectionSettings(sub); ok {
				return s, true
			}
		}
	}
	return dbSettings{}, false
}

// sectionSettings resolves one environment section: a direct adapter key,
// then the "primary" sub-entry, then the first sub-entry with an adapter.
func sectionSettings(m map[string]any) (dbSettings, bool) {
	if s, ok := directSettings(m); ok {
		return s, true
	}
	if primary, ok := m["primary"].(map[string]any); ok {
		if s, ok := directSettings(primary); ok {
			return s, true
		}
	}
	for _, key := range sortedKeys(m) {
		if sub, ok := m[key].(map[string]any); ok {
			if s, ok := directSettings(sub); ok {
				return s, true
			}
		}
	}
	return dbSettings{}, false
}

func directSettings(m map[string]any) (dbSettings, bool) {
	adapter, ok := m["adapter"].(string)
	if !ok || adapter == "" {
		return dbSettings{}, false
	}
	host, _ := m["host"].(string)
	return dbSettings{Adapter: adapter, Host: host}, true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// localHosts are the tokens treated as "this machine". A configured host
// outside this set means the database is remote, and a local client
// binary's version says nothing about the remote server.
var localHosts = map[string]bool{
	"localhost": true,
	"127.0.0.1": true,
	"::1":       true,
	"0.0.0.0":   true,
}

func isLocalHost(host string) bool {
	return host == "" || localHosts[host]
}
