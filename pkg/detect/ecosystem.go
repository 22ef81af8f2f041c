package detect

// ecosystemPriority orders the languages considered when picking a
// project's primary ecosystem.
var ecosystemPriority = [...]Tech{Ruby, Python, Rust, Go, NodeJS}

// PrimaryEcosystem picks the single language ecosystem governing a project,
// given its component map keyed by Tech.ID. The first priority language with
// a detected version wins. A project with no language component (a
// database-only checkout, say) has no primary ecosystem; that is a valid
// state, not an error.
func PrimaryEcosystem(components map[string]string) (Tech, bool) {
	for _, t := range ecosystemPriority {
		if components[t.ID()] != "" {
			return t, true
		}
	}
	return 0, false
}
