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
	"github.com/gitpulse/gitpulse/schema"
)

// WriteTeamStatusResults outputs the store-backed developer activity view,
// dispatching based on the output format configured.
func WriteTeamStatusResults(activities []schema.DeveloperActivity, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, activities)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTeamStatusCSV(w, activities)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTeamStatusTable(activities, cfg, w)
		}, "Wrote table")
	}
}

func writeTeamStatusTable(activities []schema.DeveloperActivity, cfg *contract.Config, w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Developer", "Last Activity", "Repository", "Branch", "Message", "Today", "Week"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxMsg := getMaxMessageWidth(cfg)
	var data [][]string
	for _, a := range activities {
		name := contract.ColorForActivity(a.LastActivity).Sprint(a.Name)
		data = append(data, []string{
			name,
			a.LastActivity.Format("2006-01-02 15:04"),
			a.LastRepository,
			a.LastBranch,
			contract.TruncatePath(a.LastCommitMessage, maxMsg),
			strconv.Itoa(a.CommitsToday),
			strconv.Itoa(a.CommitsThisWeek),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d developers\n", len(activities))
	return err
}

func writeTeamStatusCSV(w io.Writer, activities []schema.DeveloperActivity) error {
	header := []string{
		"name",
		"email",
		"last_activity",
		"last_repository",
		"last_branch",
		"last_message",
		"commits_today",
		"commits_this_week",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, a := range activities {
			row := []string{
				a.Name,
				a.Email,
				a.LastActivity.Format(time.RFC3339),
				a.LastRepository,
				a.LastBranch,
				a.LastCommitMessage,
				strconv.Itoa(a.CommitsToday),
				strconv.Itoa(a.CommitsThisWeek),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteFetchOutcomes outputs per-repository fetch results. Table output
// colors by status so failures stand out in a long list.
func WriteFetchOutcomes(results []schema.FetchResult, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		for _, r := range results {
			c := contract.ActiveColor
			switch r.Status {
			case "skipped":
				c = contract.IdleColor
			case "error":
				c = contract.StaleColor
			}
			if _, err := c.Fprintf(w, "%-10s %s %s\n", r.Status, r.Name, r.Message); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "Fetched %d repositories\n", len(results))
		return err
	}, "Wrote results")
}

// WriteStoreStatusResults outputs persistence store status.
func WriteStoreStatusResults(status schema.StoreStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if _, err := contract.TitleColor.Fprintln(w, "Store Status"); err != nil {
			return err
		}
		fmt.Fprintf(w, "Backend:      %s\n", status.Backend)
		fmt.Fprintf(w, "Connected:    %t\n", status.Connected)
		fmt.Fprintf(w, "Repositories: %d\n", status.TotalRepositories)
		fmt.Fprintf(w, "Commits:      %d\n", status.TotalCommits)
		if !status.LastCommitTime.IsZero() {
			fmt.Fprintf(w, "Newest:       %s\n", status.LastCommitTime.Format("2006-01-02 15:04"))
			fmt.Fprintf(w, "Oldest:       %s\n", status.OldestCommitTime.Format("2006-01-02 15:04"))
		}
		return nil
	}, "Wrote status")
}
