package schema

import "time"

// CommitFilter narrows a store commit query. Zero values mean "no filter".
type CommitFilter struct {
	Start       time.Time
	End         time.Time
	AuthorEmail string
	Repository  string
}

// GeneralStats is the store-wide counter panel for the report view.
type GeneralStats struct {
	TotalCommits      int `json:"total_commits"`
	TotalAuthors      int `json:"total_authors"`
	TotalRepositories int `json:"total_repositories"`
	TotalFilesChanged int `json:"total_files_changed"`
	TotalInsertions   int `json:"total_insertions"`
	TotalDeletions    int `json:"total_deletions"`
}

// AuthorTotals is one row of the top-authors report.
type AuthorTotals struct {
	Name       string `json:"author_name"`
	Email      string `json:"author_email"`
	Commits    int    `json:"commits_count"`
	Files      int    `json:"total_files"`
	Insertions int    `json:"total_insertions"`
	Deletions  int    `json:"total_deletions"`
}

// DayActivity is one row of the commits-by-day report.
type DayActivity struct {
	Day     string `json:"day"` // yyyy-mm-dd
	Commits int    `json:"commits_count"`
	Authors int    `json:"authors_count"`
}

// BranchStats summarizes persisted activity on one branch of one repository.
type BranchStats struct {
	Branch       string    `json:"branch"`
	Repository   string    `json:"repository"`
	TotalCommits int       `json:"totalCommits"`
	TotalAuthors int       `json:"totalAuthors"`
	LastActivity time.Time `json:"lastActivity"`
}

// BranchAuthor is one contributor to a branch.
type BranchAuthor struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Commits    int       `json:"commits"`
	LastCommit time.Time `json:"lastCommit"`
}

// DeveloperActivity is the store-backed last-known-activity view of one
// developer across all repositories.
type DeveloperActivity struct {
	Name              string    `json:"author"`
	Email             string    `json:"email"`
	LastActivity      time.Time `json:"lastActivity"`
	LastCommitMessage string    `json:"lastCommitMessage"`
	LastRepository    string    `json:"lastRepository"`
	LastBranch        string    `json:"lastBranch"`
	CommitsToday      int       `json:"totalCommitsToday"`
	CommitsThisWeek   int       `json:"totalCommitsWeek"`
}

// StoreStatus reports status information about the persistence store.
type StoreStatus struct {
	Backend           string    `json:"backend"`
	Connected         bool      `json:"connected"`
	TotalRepositories int       `json:"total_repositories"`
	TotalCommits      int       `json:"total_commits"`
	LastCommitTime    time.Time `json:"last_commit_time"`
	OldestCommitTime  time.Time `json:"oldest_commit_time"`
}

// DirectoryItem is one entry of a repository scan.
type DirectoryItem struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	IsGitRepo bool   `json:"isGitRepo"`
}

// FetchResult is the outcome of refreshing one repository from its remote.
type FetchResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // success, skipped, error
	Message string `json:"message"`
}
