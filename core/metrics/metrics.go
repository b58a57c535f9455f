package metrics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/gitpulse/gitpulse/schema"
)

// Thresholds for the productivity buckets, in commits per author.
const (
	highProductivityMin   = 10
	mediumProductivityMin = 5
)

// topAuthorLimit caps the author activity chart projection.
const topAuthorLimit = 10

// timelineLimit caps the commit timeline at the most recent day buckets.
const timelineLimit = 14

// Compute derives a full MetricsSnapshot from the all-time commit set.
//
// Two commit sets matter and must not be conflated: the all-time set drives
// the team status panel and the week-over-week trend, both defined relative
// to now regardless of the active window; every other statistic is computed
// on the subset falling inside the window. allTime is expected in the
// aggregator's order, newest first.
//
// Compute is pure: same inputs, same snapshot. Empty inputs yield zero
// values and "N/A" placeholders, never an error.
func Compute(allTime []schema.Commit, window schema.TimeWindow, repositoryCount int, now time.Time) schema.MetricsSnapshot {
	filtered := make([]schema.Commit, 0, len(allTime))
	for _, c := range allTime {
		if window.Contains(c.Timestamp) {
			filtered = append(filtered, c)
		}
	}

	rollups := Rollups(filtered)

	snap := schema.MetricsSnapshot{
		TotalCommits:      len(filtered),
		TotalAuthors:      len(rollups),
		TotalRepositories: repositoryCount,
		CommitsToday:      countToday(allTime, now),
		WeeklyTrend:       weeklyTrend(allTime, now),
		Authors:           rollups,
		TeamStatus:        teamStatus(allTime),
	}

	// Calendar bucketing happens in now's location. Author timestamps keep
	// their recorded offsets, so day and hour boundaries would otherwise
	// shift per commit.
	loc := now.Location()

	snap.AvgCommitsPerDay = avgCommitsPerDay(filtered, loc)
	snap.AvgLinesPerCommit = avgLinesPerCommit(filtered)
	snap.MostActiveHour = mostActiveHour(filtered, loc)
	snap.CodeChurn = codeChurn(filtered)
	snap.CommitFrequency = commitFrequency(filtered, len(rollups))
	snap.TopRepository = topRepository(filtered)

	// Heuristic, not a calibrated score: rewards commit cadence, commit size
	// and overall volume, capped at 100.
	score := snap.AvgCommitsPerDay*10 + float64(snap.AvgLinesPerCommit)/10 + float64(len(filtered))/10
	snap.ProductivityScore = int(math.Min(100, math.Round(score)))

	snap.TimelineData = timeline(filtered, loc)
	snap.AuthorActivityData = authorActivity(rollups)
	snap.ProductivityData = productivityBuckets(rollups)
	snap.HourlyData = hourly(filtered, loc)

	return snap
}

// Rollups groups commits by author email, the identity key. The first-seen
// commit in iteration order seeds the display name. The result is sorted
// descending by commit count; ties keep first-seen order.
func Rollups(commits []schema.Commit) []schema.AuthorRollup {
	index := make(map[string]int)
	var rollups []schema.AuthorRollup

	for _, c := range commits {
		i, ok := index[c.AuthorEmail]
		if !ok {
			i = len(rollups)
			index[c.AuthorEmail] = i
			rollups = append(rollups, schema.AuthorRollup{
				Name:  c.AuthorName,
				Email: c.AuthorEmail,
			})
		}
		r := &rollups[i]
		r.Commits = append(r.Commits, c)
		r.TotalCommits++
		r.TotalInsertions += c.Insertions
		r.TotalDeletions += c.Deletions
		if c.Timestamp.After(r.LastCommitDate) {
			r.LastCommitDate = c.Timestamp
		}
	}

	sort.SliceStable(rollups, func(i, j int) bool {
		return rollups[i].TotalCommits > rollups[j].TotalCommits
	})
	return rollups
}

// countToday counts commits on the current local calendar day, independent
// of the active window.
func countToday(commits []schema.Commit, now time.Time) int {
	n := 0
	for _, c := range commits {
		if sameDay(c.Timestamp, now) {
			n++
		}
	}
	return n
}

// avgCommitsPerDay divides the commit count by the number of distinct
// calendar days that saw at least one commit, rounded to one decimal.
func avgCommitsPerDay(commits []schema.Commit, loc *time.Location) float64 {
	if len(commits) == 0 {
		return 0
	}
	days := make(map[string]struct{})
	for _, c := range commits {
		days[c.Timestamp.In(loc).Format("2006-01-02")] = struct{}{}
	}
	return round1(float64(len(commits)) / float64(len(days)))
}

func avgLinesPerCommit(commits []schema.Commit) int {
	if len(commits) == 0 {
		return 0
	}
	total := 0
	for _, c := range commits {
		total += c.Lines()
	}
	return int(math.Round(float64(total) / float64(len(commits))))
}

// mostActiveHour finds the local hour of day with the most commits. Ties go
// to the hour encountered first iterating oldest to newest, matching the
// chronological reading of "when did activity start clustering".
func mostActiveHour(commits []schema.Commit, loc *time.Location) string {
	if len(commits) == 0 {
		return "N/A"
	}

	counts := make(map[int]int)
	firstSeen := make(map[int]int)
	order := 0
	for i := len(commits) - 1; i >= 0; i-- { // oldest first
		hour := commits[i].Timestamp.In(loc).Hour()
		if _, ok := firstSeen[hour]; !ok {
			firstSeen[hour] = order
		}
		counts[hour]++
		order++
	}

	best, bestCount, bestSeen := 0, -1, 0
	for hour, count := range counts {
		if count > bestCount || (count == bestCount && firstSeen[hour] < bestSeen) {
			best, bestCount, bestSeen = hour, count, firstSeen[hour]
		}
	}
	return fmt.Sprintf("%dh", best)
}

// codeChurn is the percentage of deleted to inserted lines, a proxy for
// rework. Zero when nothing was inserted.
func codeChurn(commits []schema.Commit) int {
	ins, del := 0, 0
	for _, c := range commits {
		ins += c.Insertions
		del += c.Deletions
	}
	if ins == 0 {
		return 0
	}
	return int(math.Round(float64(del) / float64(ins) * 100))
}

func commitFrequency(commits []schema.Commit, authorCount int) float64 {
	if authorCount == 0 {
		return 0
	}
	return round1(float64(len(commits)) / float64(authorCount))
}

// topRepository picks the repository with the most commits in the filtered
// set. Ties keep the repository encountered first.
func topRepository(commits []schema.Commit) string {
	if len(commits) == 0 {
		return "N/A"
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, c := range commits {
		if _, ok := firstSeen[c.Repository]; !ok {
			firstSeen[c.Repository] = i
		}
		counts[c.Repository]++
	}

	best, bestCount, bestSeen := "", -1, 0
	for repo, count := range counts {
		if count > bestCount || (count == bestCount && firstSeen[repo] < bestSeen) {
			best, bestCount, bestSeen = repo, count, firstSeen[repo]
		}
	}
	return best
}

// weeklyTrend compares the last 7 days against the 7 days before, on the
// all-time set. Intentionally window-independent.
func weeklyTrend(allTime []schema.Commit, now time.Time) int {
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	recent, previous := 0, 0
	for _, c := range allTime {
		switch {
		case !c.Timestamp.Before(weekAgo) && !c.Timestamp.After(now):
			recent++
		case !c.Timestamp.Before(twoWeeksAgo) && c.Timestamp.Before(weekAgo):
			previous++
		}
	}

	if previous > 0 {
		return int(math.Round(float64(recent-previous) / float64(previous) * 100))
	}
	if recent > 0 {
		return 100
	}
	return 0
}

// timeline buckets commits by calendar day in iteration order, keeping the
// most recent 14 day buckets. Days without commits are absent, not
// zero-filled.
func timeline(commits []schema.Commit, loc *time.Location) []schema.TimelinePoint {
	index := make(map[string]int)
	authors := make(map[string]map[string]struct{})
	var points []schema.TimelinePoint

	for _, c := range commits {
		key := c.Timestamp.In(loc).Format("02/01")
		i, ok := index[key]
		if !ok {
			if len(points) >= timelineLimit {
				continue
			}
			i = len(points)
			index[key] = i
			authors[key] = make(map[string]struct{})
			points = append(points, schema.TimelinePoint{Date: key})
		}
		points[i].Commits++
		if _, ok := authors[key][c.AuthorEmail]; !ok {
			authors[key][c.AuthorEmail] = struct{}{}
			points[i].Authors++
		}
	}
	return points
}

// authorActivity projects the top rollups into the chart shape, shortening
// names to their first part.
func authorActivity(rollups []schema.AuthorRollup) []schema.AuthorActivity {
	limit := min(topAuthorLimit, len(rollups))
	activity := make([]schema.AuthorActivity, 0, limit)
	for _, r := range rollups[:limit] {
		activity = append(activity, schema.AuthorActivity{
			Name:       schema.FirstName(r.Name),
			Email:      r.Email,
			Commits:    r.TotalCommits,
			Insertions: r.TotalInsertions,
			Deletions:  r.TotalDeletions,
		})
	}
	return activity
}

func productivityBuckets(rollups []schema.AuthorRollup) []schema.ProductivityBucket {
	buckets := []schema.ProductivityBucket{
		{Name: "High"},
		{Name: "Medium"},
		{Name: "Low"},
	}
	for _, r := range rollups {
		switch {
		case r.TotalCommits >= highProductivityMin:
			buckets[0].Count++
		case r.TotalCommits >= mediumProductivityMin:
			buckets[1].Count++
		default:
			buckets[2].Count++
		}
	}
	return buckets
}

// hourly always yields 24 buckets, hours "00" through "23", zero-filled.
func hourly(commits []schema.Commit, loc *time.Location) []schema.HourBucket {
	buckets := make([]schema.HourBucket, 24)
	for i := range buckets {
		buckets[i].Hour = fmt.Sprintf("%02d", i)
	}
	for _, c := range commits {
		buckets[c.Timestamp.In(loc).Hour()].Commits++
	}
	return buckets
}

// teamStatus lists every author's last known activity across the all-time
// set, sorted ascending by last commit so the most overdue author comes
// first.
func teamStatus(allTime []schema.Commit) []schema.TeamMemberStatus {
	index := make(map[string]int)
	var members []schema.TeamMemberStatus

	for _, c := range allTime {
		i, ok := index[c.AuthorEmail]
		if !ok {
			i = len(members)
			index[c.AuthorEmail] = i
			members = append(members, schema.TeamMemberStatus{
				Name:  c.AuthorName,
				Email: c.AuthorEmail,
			})
		}
		if c.Timestamp.After(members[i].LastCommitDate) {
			members[i].LastCommitDate = c.Timestamp
		}
	}

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].LastCommitDate.Before(members[j].LastCommitDate)
	})
	return members
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
