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

// WriteAuthorResults outputs per-author rollups, dispatching based on the
// output format configured.
func WriteAuthorResults(rollups []schema.AuthorRollup, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rollups)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAuthorCSV(w, rollups)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if err := requireOutputFile(cfg, "parquet"); err != nil {
			return err
		}
		return parquet.WriteAuthorsParquet(parquet.AuthorRecords(rollups), cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAuthorTable(rollups, cfg, duration, w)
		}, "Wrote table")
	}
}

// writeAuthorTable generates and writes the human-readable author table.
func writeAuthorTable(rollups []schema.AuthorRollup, cfg *contract.Config, duration time.Duration, w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Name", "Email", "Commits", "Insertions", "Deletions", "Last Commit"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	totalCommits := 0
	for i, r := range rollups {
		totalCommits += r.TotalCommits
		data = append(data, []string{
			strconv.Itoa(i + 1),
			r.Name,
			r.Email,
			strconv.Itoa(r.TotalCommits),
			strconv.Itoa(r.TotalInsertions),
			strconv.Itoa(r.TotalDeletions),
			r.LastCommitDate.Format("2006-01-02 15:04"),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Showing %d authors (total commits: %d)\n", len(rollups), totalCommits); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Aggregation completed in %v with %d workers\n", duration, cfg.Workers)
	return err
}

// writeAuthorCSV writes per-author rollups in CSV format.
func writeAuthorCSV(w io.Writer, rollups []schema.AuthorRollup) error {
	header := []string{
		"rank",
		"name",
		"email",
		"commits",
		"insertions",
		"deletions",
		"last_commit",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, r := range rollups {
			row := []string{
				strconv.Itoa(i + 1),
				r.Name,
				r.Email,
				strconv.Itoa(r.TotalCommits),
				strconv.Itoa(r.TotalInsertions),
				strconv.Itoa(r.TotalDeletions),
				r.LastCommitDate.Format(time.RFC3339),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
