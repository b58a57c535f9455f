package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/internal/parquet"
	"github.com/gitpulse/gitpulse/schema"
)

// WriteDashboardResults outputs the dashboard snapshot, dispatching based on
// the output format configured.
func WriteDashboardResults(snap schema.MetricsSnapshot, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, snap)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDashboardCSV(w, snap)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if err := requireOutputFile(cfg, "parquet"); err != nil {
			return err
		}
		return parquet.WriteAuthorsParquet(parquet.AuthorRecords(snap.Authors), cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDashboardTable(snap, cfg, duration, w)
		}, "Wrote table")
	}
}

// writeDashboardTable renders the human-readable dashboard panels.
func writeDashboardTable(snap schema.MetricsSnapshot, cfg *contract.Config, duration time.Duration, w io.Writer) error {
	if _, err := contract.TitleColor.Fprintln(w, "Summary"); err != nil {
		return err
	}
	summary := tablewriter.NewWriter(w)
	summary.Header([]string{"Commits", "Authors", "Repositories", "Today", "Weekly Trend"})
	summary.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := summary.Append([]string{
		strconv.Itoa(snap.TotalCommits),
		strconv.Itoa(snap.TotalAuthors),
		strconv.Itoa(snap.TotalRepositories),
		strconv.Itoa(snap.CommitsToday),
		fmt.Sprintf("%d%%", snap.WeeklyTrend),
	}); err != nil {
		return err
	}
	if err := summary.Render(); err != nil {
		return err
	}

	if _, err := contract.TitleColor.Fprintln(w, "Activity"); err != nil {
		return err
	}
	activity := tablewriter.NewWriter(w)
	activity.Header([]string{"Avg/Day", "Avg Lines", "Peak Hour", "Score", "Churn", "Frequency", "Top Repository"})
	activity.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := activity.Append([]string{
		fmt.Sprintf("%.1f", snap.AvgCommitsPerDay),
		strconv.Itoa(snap.AvgLinesPerCommit),
		snap.MostActiveHour,
		strconv.Itoa(snap.ProductivityScore),
		fmt.Sprintf("%d%%", snap.CodeChurn),
		fmt.Sprintf("%.1f", snap.CommitFrequency),
		snap.TopRepository,
	}); err != nil {
		return err
	}
	if err := activity.Render(); err != nil {
		return err
	}

	if len(snap.TimelineData) > 0 {
		if _, err := contract.TitleColor.Fprintln(w, "Timeline"); err != nil {
			return err
		}
		timeline := tablewriter.NewWriter(w)
		timeline.Header([]string{"Date", "Commits", "Authors"})
		timeline.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})
		var rows [][]string
		for _, p := range snap.TimelineData {
			rows = append(rows, []string{p.Date, strconv.Itoa(p.Commits), strconv.Itoa(p.Authors)})
		}
		if err := timeline.Bulk(rows); err != nil {
			return err
		}
		if err := timeline.Render(); err != nil {
			return err
		}
	}

	if len(snap.AuthorActivityData) > 0 {
		if _, err := contract.TitleColor.Fprintln(w, "Top Authors"); err != nil {
			return err
		}
		authors := tablewriter.NewWriter(w)
		authors.Header([]string{"Rank", "Name", "Email", "Commits", "Insertions", "Deletions"})
		authors.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})
		var rows [][]string
		for i, a := range snap.AuthorActivityData {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				a.Name,
				a.Email,
				strconv.Itoa(a.Commits),
				strconv.Itoa(a.Insertions),
				strconv.Itoa(a.Deletions),
			})
		}
		if err := authors.Bulk(rows); err != nil {
			return err
		}
		if err := authors.Render(); err != nil {
			return err
		}
	}

	if len(snap.TeamStatus) > 0 {
		if _, err := contract.TitleColor.Fprintln(w, "Team Status"); err != nil {
			return err
		}
		for _, m := range snap.TeamStatus {
			line := fmt.Sprintf("%s <%s> last commit %s", m.Name, m.Email, m.LastCommitDate.Format("2006-01-02 15:04"))
			if _, err := contract.ColorForActivity(m.LastCommitDate).Fprintln(w, line); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "Dashboard computed in %v with %d workers\n", duration, cfg.Workers)
	return err
}

// writeDashboardCSV flattens the snapshot's summary counters into one CSV row.
func writeDashboardCSV(w io.Writer, snap schema.MetricsSnapshot) error {
	header := []string{
		"total_commits",
		"total_authors",
		"total_repositories",
		"commits_today",
		"avg_commits_per_day",
		"avg_lines_per_commit",
		"most_active_hour",
		"productivity_score",
		"code_churn",
		"commit_frequency",
		"top_repository",
		"weekly_trend",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		return cw.Write([]string{
			strconv.Itoa(snap.TotalCommits),
			strconv.Itoa(snap.TotalAuthors),
			strconv.Itoa(snap.TotalRepositories),
			strconv.Itoa(snap.CommitsToday),
			fmt.Sprintf("%.2f", snap.AvgCommitsPerDay),
			strconv.Itoa(snap.AvgLinesPerCommit),
			snap.MostActiveHour,
			strconv.Itoa(snap.ProductivityScore),
			strconv.Itoa(snap.CodeChurn),
			fmt.Sprintf("%.2f", snap.CommitFrequency),
			snap.TopRepository,
			strconv.Itoa(snap.WeeklyTrend),
		})
	})
}
