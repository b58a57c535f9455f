// Package schema has configs, models and shared constants for all parts of gitpulse.
package schema

import "time"

// Commit is an immutable fact about one commit pulled from a repository.
// All fields are populated at creation time; a Commit is never mutated
// after construction.
type Commit struct {
	Hash         string    `json:"hash"`
	AuthorName   string    `json:"author"`
	AuthorEmail  string    `json:"email"` // identity key for aggregation
	Timestamp    time.Time `json:"date"`
	Message      string    `json:"message"`
	Repository   string    `json:"repository"` // origin name, assigned by the aggregator
	FilesChanged int       `json:"filesChanged"`
	Insertions   int       `json:"insertions"`
	Deletions    int       `json:"deletions"`
	Branch       string    `json:"branch"`
}

// Lines returns the total lines touched by the commit.
func (c Commit) Lines() int {
	return c.Insertions + c.Deletions
}

// RepositoryRef identifies one locally-checked-out repository to pull from.
// The core treats it as a read-only input.
type RepositoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// TimeWindow is the inclusive [Start, End] instant range a view is filtered to.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window, inclusive on both ends.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// AuthorRollup holds aggregated per-author statistics derived from a commit
// set. Rollups are rebuilt on every aggregation pass and never persisted
// incrementally.
type AuthorRollup struct {
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Commits         []Commit  `json:"commits"`
	TotalCommits    int       `json:"totalCommits"`
	TotalInsertions int       `json:"totalInsertions"`
	TotalDeletions  int       `json:"totalDeletions"`
	LastCommitDate  time.Time `json:"lastCommitDate"`
}

// AggregateOutput is the result of merging commit streams from multiple
// repositories. Errors holds one human-readable diagnostic per repository
// that could not be read; partial success is a first-class outcome.
type AggregateOutput struct {
	Commits []Commit `json:"commits"`
	Errors  []string `json:"errors,omitempty"`
}
