package schema

import "time"

// MetricsSnapshot is the full dashboard panel derived from one aggregation
// pass. It is a value: fully determined by the commit sets and the active
// window, recomputed wholesale on each request and never partially updated.
type MetricsSnapshot struct {
	// Summary counters over the filtered set.
	TotalCommits      int `json:"totalCommits"`
	TotalAuthors      int `json:"totalAuthors"`
	TotalRepositories int `json:"totalRepositories"`
	CommitsToday      int `json:"commitsToday"`

	// Advanced panel over the filtered set.
	AvgCommitsPerDay  float64 `json:"avgCommitsPerDay"`
	AvgLinesPerCommit int     `json:"avgLinesPerCommit"`
	MostActiveHour    string  `json:"mostActiveHour"` // "14h" or "N/A"
	ProductivityScore int     `json:"productivityScore"`
	CodeChurn         int     `json:"codeChurn"`
	CommitFrequency   float64 `json:"commitFrequency"`
	TopRepository     string  `json:"topRepository"`

	// WeeklyTrend is computed over the all-time set relative to today and is
	// intentionally independent of the active window.
	WeeklyTrend int `json:"weeklyTrend"`

	Authors            []AuthorRollup       `json:"authors"`
	TimelineData       []TimelinePoint      `json:"timelineData"`
	AuthorActivityData []AuthorActivity     `json:"authorActivityData"`
	ProductivityData   []ProductivityBucket `json:"productivityData"`
	HourlyData         []HourBucket         `json:"hourlyData"`
	TeamStatus         []TeamMemberStatus   `json:"teamStatus"`
}

// TimelinePoint is one calendar-day bucket of the commit timeline.
type TimelinePoint struct {
	Date    string `json:"date"` // dd/mm display key
	Commits int    `json:"commits"`
	Authors int    `json:"authors"` // distinct author count that day
}

// AuthorActivity is the chart projection of one top author.
type AuthorActivity struct {
	Name       string `json:"name"` // first name only
	Email      string `json:"email"`
	Commits    int    `json:"commits"`
	Insertions int    `json:"insertions"`
	Deletions  int    `json:"deletions"`
}

// ProductivityBucket counts authors falling into one productivity band.
type ProductivityBucket struct {
	Name  string `json:"name"` // High, Medium, Low
	Count int    `json:"count"`
}

// HourBucket is one hour-of-day histogram entry.
type HourBucket struct {
	Hour    string `json:"hour"` // "00".."23"
	Commits int    `json:"commits"`
}

// TeamMemberStatus is the all-time last-known-activity entry for one author.
// The team status list is sorted ascending by LastCommitDate so the most
// overdue author comes first.
type TeamMemberStatus struct {
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	LastCommitDate time.Time `json:"lastCommitDate"`
}
