package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/internal/parquet"
	"github.com/gitpulse/gitpulse/schema"
)

// ReportData bundles the store-backed report sections.
type ReportData struct {
	General    schema.GeneralStats   `json:"general"`
	TopAuthors []schema.AuthorTotals `json:"topAuthors"`
	Days       []schema.DayActivity  `json:"commitsByDay"`
	Commits    []schema.Commit       `json:"-"` // raw rows for parquet export only
}

// WriteReportResults outputs the store-wide report, dispatching based on the
// output format configured. Parquet mode exports the raw commit rows instead
// of the derived sections.
func WriteReportResults(report ReportData, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, report)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if err := requireOutputFile(cfg, "parquet"); err != nil {
			return err
		}
		return parquet.WriteCommitsParquet(parquet.CommitRecords(report.Commits), cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportTable(report, w)
		}, "Wrote table")
	}
}

func writeReportTable(report ReportData, w io.Writer) error {
	if _, err := contract.TitleColor.Fprintln(w, "General"); err != nil {
		return err
	}
	general := tablewriter.NewWriter(w)
	general.Header([]string{"Commits", "Authors", "Repositories", "Files", "Insertions", "Deletions"})
	general.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	g := report.General
	if err := general.Append([]string{
		strconv.Itoa(g.TotalCommits),
		strconv.Itoa(g.TotalAuthors),
		strconv.Itoa(g.TotalRepositories),
		strconv.Itoa(g.TotalFilesChanged),
		strconv.Itoa(g.TotalInsertions),
		strconv.Itoa(g.TotalDeletions),
	}); err != nil {
		return err
	}
	if err := general.Render(); err != nil {
		return err
	}

	if len(report.TopAuthors) > 0 {
		if _, err := contract.TitleColor.Fprintln(w, "Top Authors"); err != nil {
			return err
		}
		authors := tablewriter.NewWriter(w)
		authors.Header([]string{"Rank", "Name", "Email", "Commits", "Files", "Insertions", "Deletions"})
		authors.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})
		var rows [][]string
		for i, a := range report.TopAuthors {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				a.Name,
				a.Email,
				strconv.Itoa(a.Commits),
				strconv.Itoa(a.Files),
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

	if len(report.Days) > 0 {
		if _, err := contract.TitleColor.Fprintln(w, "Commits By Day"); err != nil {
			return err
		}
		days := tablewriter.NewWriter(w)
		days.Header([]string{"Day", "Commits", "Authors"})
		days.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})
		var rows [][]string
		for _, d := range report.Days {
			rows = append(rows, []string{d.Day, strconv.Itoa(d.Commits), strconv.Itoa(d.Authors)})
		}
		if err := days.Bulk(rows); err != nil {
			return err
		}
		if err := days.Render(); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Report over %d stored commits\n", report.General.TotalCommits)
	return err
}

// writeReportCSV emits the top-authors section, the machine-friendly core of
// the report.
func writeReportCSV(w io.Writer, report ReportData) error {
	header := []string{
		"rank",
		"name",
		"email",
		"commits",
		"files",
		"insertions",
		"deletions",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, a := range report.TopAuthors {
			row := []string{
				strconv.Itoa(i + 1),
				a.Name,
				a.Email,
				strconv.Itoa(a.Commits),
				strconv.Itoa(a.Files),
				strconv.Itoa(a.Insertions),
				strconv.Itoa(a.Deletions),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
