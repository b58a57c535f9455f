package schema

import "strings"

// FirstName returns the first whitespace-separated part of a full name,
// used to keep activity tables compact. Bot accounts (e.g. dependabot[bot])
// are returned unchanged so they stay recognizable.
func FirstName(name string) string {
	trimmed := strings.TrimSpace(name)
	if strings.Contains(trimmed, "[bot]") {
		return trimmed
	}
	parts := strings.Fields(trimmed)
	if len(parts) == 0 {
		return trimmed
	}
	return parts[0]
}

// RepositoryName derives a display name from a repository path, taking the
// last path segment. Trailing separators are ignored.
func RepositoryName(path string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(path), "/\\")
	if trimmed == "" {
		return path
	}
	idx := strings.LastIndexAny(trimmed, "/\\")
	if idx < 0 {
		return trimmed
	}
	return trimmed[idx+1:]
}
