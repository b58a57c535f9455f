package metrics

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpulse/gitpulse/schema"
)

// commitAt builds a commit with just enough fields for metric derivation.
func commitAt(email string, ts time.Time, ins, del int) schema.Commit {
	return schema.Commit{
		Hash:        fmt.Sprintf("%s-%d", email, ts.UnixNano()),
		AuthorName:  email,
		AuthorEmail: email,
		Timestamp:   ts,
		Repository:  "repo-a",
		Insertions:  ins,
		Deletions:   del,
	}
}

// sortDesc mirrors the aggregator's output ordering contract.
func sortDesc(commits []schema.Commit) []schema.Commit {
	sort.SliceStable(commits, func(i, j int) bool {
		return commits[i].Timestamp.After(commits[j].Timestamp)
	})
	return commits
}

func wholeMonth(year int, month time.Month) schema.TimeWindow {
	return schema.TimeWindow{
		Start: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Millisecond),
	}
}

func TestComputeSingleDayScenario(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	commits := sortDesc([]schema.Commit{
		commitAt("x@x", day.Add(10*time.Hour), 10, 2),
		commitAt("x@x", day.Add(14*time.Hour), 5, 1),
	})
	window := schema.TimeWindow{Start: day, End: day.Add(24*time.Hour - time.Millisecond)}
	now := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)

	snap := Compute(commits, window, 1, now)

	assert.Equal(t, 2, snap.TotalCommits)
	assert.Equal(t, 1, snap.TotalAuthors)
	assert.Equal(t, 1, snap.TotalRepositories)
	assert.Equal(t, 2.0, snap.AvgCommitsPerDay)
	assert.Equal(t, 9, snap.AvgLinesPerCommit)
	assert.Equal(t, "10h", snap.MostActiveHour, "hour ties resolve to the earliest encountered")
	assert.Equal(t, "repo-a", snap.TopRepository)
	assert.Equal(t, 2.0, snap.CommitFrequency)
	assert.Equal(t, 20, snap.CodeChurn, "3 deletions over 15 insertions")
}

func TestComputeNormalizesRecordedOffsets(t *testing.T) {
	// Authored at 23:30 on Jan 1 in UTC-5, which is 04:30 on Jan 2 in UTC.
	// Day and hour bucketing must follow now's clock, not the recorded one.
	est := time.FixedZone("EST", -5*60*60)
	commit := commitAt("x@x", time.Date(2024, 1, 1, 23, 30, 0, 0, est), 10, 2)
	now := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

	snap := Compute([]schema.Commit{commit}, wholeMonth(2024, 1), 1, now)

	assert.Equal(t, 1, snap.CommitsToday, "commit happened 5.5h ago on today's local calendar day")
	assert.Equal(t, "4h", snap.MostActiveHour)
	assert.Equal(t, 1, snap.HourlyData[4].Commits)
	assert.Equal(t, 0, snap.HourlyData[23].Commits)
	require.Len(t, snap.TimelineData, 1)
	assert.Equal(t, "02/01", snap.TimelineData[0].Date)
}

func TestComputeEmptySet(t *testing.T) {
	now := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
	snap := Compute(nil, wholeMonth(2024, 3), 0, now)

	assert.Equal(t, 0, snap.TotalCommits)
	assert.Equal(t, 0, snap.TotalAuthors)
	assert.Equal(t, 0.0, snap.AvgCommitsPerDay)
	assert.Equal(t, 0, snap.AvgLinesPerCommit)
	assert.Equal(t, 0.0, snap.CommitFrequency)
	assert.Equal(t, 0, snap.CodeChurn)
	assert.Equal(t, 0, snap.ProductivityScore)
	assert.Equal(t, 0, snap.WeeklyTrend)
	assert.Equal(t, "N/A", snap.MostActiveHour)
	assert.Equal(t, "N/A", snap.TopRepository)
	assert.Empty(t, snap.TimelineData)
	assert.Empty(t, snap.TeamStatus)

	// The hourly histogram stays fully shaped even with no commits.
	require.Len(t, snap.HourlyData, 24)
	assert.Equal(t, "00", snap.HourlyData[0].Hour)
	assert.Equal(t, "23", snap.HourlyData[23].Hour)
}

func TestRollupsConservation(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	var commits []schema.Commit
	for i := 0; i < 17; i++ {
		email := fmt.Sprintf("dev%d@x", i%3)
		commits = append(commits, commitAt(email, base.Add(time.Duration(i)*time.Hour), i, i/2))
	}
	commits = sortDesc(commits)

	rollups := Rollups(commits)

	total := 0
	for _, r := range rollups {
		total += r.TotalCommits
		assert.Len(t, r.Commits, r.TotalCommits)

		var maxTS time.Time
		for _, c := range r.Commits {
			if c.Timestamp.After(maxTS) {
				maxTS = c.Timestamp
			}
		}
		assert.Equal(t, maxTS, r.LastCommitDate)
	}
	assert.Equal(t, len(commits), total, "rollup commit counts must conserve the input")

	// Sorted descending by commit count.
	for i := 1; i < len(rollups); i++ {
		assert.GreaterOrEqual(t, rollups[i-1].TotalCommits, rollups[i].TotalCommits)
	}
}

func TestRollupsFirstSeenNameWins(t *testing.T) {
	// Same email, different display names across repositories. The name on
	// the newest commit wins because iteration order is newest first.
	older := commitAt("dev@x", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), 1, 0)
	older.AuthorName = "D. Older"
	newer := commitAt("dev@x", time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC), 1, 0)
	newer.AuthorName = "Dana Newer"

	rollups := Rollups(sortDesc([]schema.Commit{older, newer}))
	require.Len(t, rollups, 1)
	assert.Equal(t, "Dana Newer", rollups[0].Name)
	assert.Equal(t, 2, rollups[0].TotalCommits)
}

func TestWeeklyTrend(t *testing.T) {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

	t.Run("previous zero and recent positive is exactly 100", func(t *testing.T) {
		commits := []schema.Commit{
			commitAt("a@x", now.AddDate(0, 0, -1), 1, 0),
			commitAt("a@x", now.AddDate(0, 0, -2), 1, 0),
		}
		assert.Equal(t, 100, weeklyTrend(commits, now))
	})

	t.Run("both buckets empty is zero", func(t *testing.T) {
		assert.Equal(t, 0, weeklyTrend(nil, now))
	})

	t.Run("doubled activity is plus one hundred", func(t *testing.T) {
		commits := []schema.Commit{
			commitAt("a@x", now.AddDate(0, 0, -1), 1, 0),
			commitAt("a@x", now.AddDate(0, 0, -2), 1, 0),
			commitAt("a@x", now.AddDate(0, 0, -9), 1, 0),
		}
		assert.Equal(t, 100, weeklyTrend(commits, now))
	})

	t.Run("halved activity is minus fifty", func(t *testing.T) {
		commits := []schema.Commit{
			commitAt("a@x", now.AddDate(0, 0, -1), 1, 0),
			commitAt("a@x", now.AddDate(0, 0, -8), 1, 0),
			commitAt("a@x", now.AddDate(0, 0, -9), 1, 0),
		}
		assert.Equal(t, -50, weeklyTrend(commits, now))
	})

	t.Run("ignores the active window", func(t *testing.T) {
		commits := []schema.Commit{commitAt("a@x", now.AddDate(0, 0, -1), 1, 0)}
		// A window far in the past filters everything out, yet the trend
		// still sees the all-time set.
		snap := Compute(commits, wholeMonth(2020, 1), 1, now)
		assert.Equal(t, 0, snap.TotalCommits)
		assert.Equal(t, 100, snap.WeeklyTrend)
	})
}

func TestHourlyHistogramShape(t *testing.T) {
	base := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	var commits []schema.Commit
	for i := 0; i < 30; i++ {
		commits = append(commits, commitAt("a@x", base.Add(time.Duration(i%5)*time.Hour), 1, 0))
	}

	buckets := hourly(commits, time.UTC)
	require.Len(t, buckets, 24)

	sum := 0
	for i, b := range buckets {
		assert.Equal(t, fmt.Sprintf("%02d", i), b.Hour)
		sum += b.Commits
	}
	assert.Equal(t, len(commits), sum, "hourly buckets must sum to the commit count")
}

func TestTimelineCap(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var commits []schema.Commit
	for day := 0; day < 20; day++ {
		commits = append(commits, commitAt("a@x", base.AddDate(0, 0, day), 1, 0))
	}
	commits = sortDesc(commits)

	points := timeline(commits, time.UTC)
	assert.Len(t, points, 14, "timeline is capped at 14 day buckets")
	assert.Equal(t, "20/03", points[0].Date, "most recent day comes first")

	few := timeline(commits[:3], time.UTC)
	assert.Len(t, few, 3)
}

func TestTimelineSkipsMissingDays(t *testing.T) {
	commits := sortDesc([]schema.Commit{
		commitAt("a@x", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), 1, 0),
		commitAt("b@x", time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC), 1, 0),
		commitAt("a@x", time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), 1, 0),
	})

	points := timeline(commits, time.UTC)
	require.Len(t, points, 2, "days without commits are absent, not zero-filled")
	assert.Equal(t, "05/03", points[0].Date)
	assert.Equal(t, 1, points[0].Commits)
	assert.Equal(t, "01/03", points[1].Date)
	assert.Equal(t, 2, points[1].Commits)
	assert.Equal(t, 2, points[1].Authors, "distinct authors per day bucket")
}

func TestProductivityBuckets(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	var commits []schema.Commit
	addCommits := func(email string, n int) {
		for i := 0; i < n; i++ {
			commits = append(commits, commitAt(email, base.Add(time.Duration(i)*time.Minute), 1, 0))
		}
	}
	addCommits("high@x", 12)
	addCommits("medium@x", 7)
	addCommits("low@x", 2)

	buckets := productivityBuckets(Rollups(sortDesc(commits)))
	require.Len(t, buckets, 3)
	assert.Equal(t, schema.ProductivityBucket{Name: "High", Count: 1}, buckets[0])
	assert.Equal(t, schema.ProductivityBucket{Name: "Medium", Count: 1}, buckets[1])
	assert.Equal(t, schema.ProductivityBucket{Name: "Low", Count: 1}, buckets[2])
}

func TestProductivityScoreCap(t *testing.T) {
	base := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	var commits []schema.Commit
	for i := 0; i < 500; i++ {
		commits = append(commits, commitAt("busy@x", base.Add(time.Duration(i)*time.Minute), 200, 100))
	}
	snap := Compute(sortDesc(commits), wholeMonth(2024, 3), 1, base)
	assert.Equal(t, 100, snap.ProductivityScore, "score is capped at 100")
}

func TestTopRepositoryTieBreak(t *testing.T) {
	base := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	a := commitAt("x@x", base.Add(2*time.Hour), 1, 0)
	a.Repository = "alpha"
	b := commitAt("x@x", base.Add(1*time.Hour), 1, 0)
	b.Repository = "beta"

	// One commit each; alpha is encountered first in iteration order.
	assert.Equal(t, "alpha", topRepository(sortDesc([]schema.Commit{a, b})))
}

func TestTeamStatusOrdering(t *testing.T) {
	commits := sortDesc([]schema.Commit{
		commitAt("recent@x", time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC), 1, 0),
		commitAt("overdue@x", time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC), 1, 0),
		commitAt("middle@x", time.Date(2024, 2, 20, 10, 0, 0, 0, time.UTC), 1, 0),
	})

	status := teamStatus(commits)
	require.Len(t, status, 3)
	assert.Equal(t, "overdue@x", status[0].Email, "most overdue author first")
	assert.Equal(t, "middle@x", status[1].Email)
	assert.Equal(t, "recent@x", status[2].Email)
}

func TestComputeDeterministic(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	var commits []schema.Commit
	for i := 0; i < 40; i++ {
		email := fmt.Sprintf("dev%d@x", i%4)
		commits = append(commits, commitAt(email, base.Add(time.Duration(i*7)*time.Hour), i, i/3))
	}
	commits = sortDesc(commits)
	window := wholeMonth(2024, 3)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	first := Compute(commits, window, 4, now)
	second := Compute(commits, window, 4, now)
	assert.Equal(t, first, second, "identical inputs must yield identical snapshots")
}
