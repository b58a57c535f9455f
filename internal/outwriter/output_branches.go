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

// WriteBranchResults outputs persisted branch summaries, dispatching based
// on the output format configured.
func WriteBranchResults(stats []schema.BranchStats, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, stats)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"branch", "repository", "commits", "authors", "last_activity"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, b := range stats {
					row := []string{
						b.Branch,
						b.Repository,
						strconv.Itoa(b.TotalCommits),
						strconv.Itoa(b.TotalAuthors),
						b.LastActivity.Format(time.RFC3339),
					}
					if err := cw.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBranchTable(stats, w)
		}, "Wrote table")
	}
}

func writeBranchTable(stats []schema.BranchStats, w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Branch", "Repository", "Commits", "Authors", "Last Activity"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, b := range stats {
		data = append(data, []string{
			b.Branch,
			b.Repository,
			strconv.Itoa(b.TotalCommits),
			strconv.Itoa(b.TotalAuthors),
			b.LastActivity.Format("2006-01-02 15:04"),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d branches\n", len(stats))
	return err
}

// WriteBranchAuthorResults outputs the contributors to one branch of one
// repository, followed by the branch's most recent commits when available.
func WriteBranchAuthorResults(repository, branch string, authors []schema.BranchAuthor, recent []schema.Commit, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			payload := struct {
				Repository    string                `json:"repository"`
				Branch        string                `json:"branch"`
				Authors       []schema.BranchAuthor `json:"authors"`
				RecentCommits []schema.Commit       `json:"recentCommits,omitempty"`
			}{repository, branch, authors, recent}
			return writeJSON(w, payload)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"name", "email", "commits", "last_commit"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, a := range authors {
					row := []string{
						a.Name,
						a.Email,
						strconv.Itoa(a.Commits),
						a.LastCommit.Format(time.RFC3339),
					}
					if err := cw.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeBranchAuthorTable(repository, branch, authors, w); err != nil {
				return err
			}
			return writeRecentCommits(recent, cfg, w)
		}, "Wrote table")
	}
}

func writeBranchAuthorTable(repository, branch string, authors []schema.BranchAuthor, w io.Writer) error {
	if _, err := contract.TitleColor.Fprintf(w, "Contributors to %s@%s\n", repository, branch); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Name", "Email", "Commits", "Last Commit"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, a := range authors {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			a.Name,
			a.Email,
			strconv.Itoa(a.Commits),
			a.LastCommit.Format("2006-01-02 15:04"),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeRecentCommits lists the latest live commits of the branch under the
// contributor table.
func writeRecentCommits(recent []schema.Commit, cfg *contract.Config, w io.Writer) error {
	if len(recent) == 0 {
		return nil
	}
	if _, err := contract.TitleColor.Fprintln(w, "Recent commits"); err != nil {
		return err
	}
	maxWidth := getMaxMessageWidth(cfg)
	for _, c := range recent {
		short := c.Hash
		if len(short) > 8 {
			short = short[:8]
		}
		message := contract.TruncatePath(c.Message, maxWidth)
		if _, err := fmt.Fprintf(w, "  %s  %s  %s (%s)\n",
			short, c.Timestamp.Format("2006-01-02 15:04"), message, c.AuthorName); err != nil {
			return err
		}
	}
	return nil
}
