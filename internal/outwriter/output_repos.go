package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// WriteRepositoryResults outputs the tracked repository list.
func WriteRepositoryResults(repos []schema.RepositoryRef, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, repos)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"name", "path"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, r := range repos {
					if err := cw.Write([]string{r.Name, r.Path}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRepositoryTable(repos, cfg, w)
		}, "Wrote table")
	}
}

func writeRepositoryTable(repos []schema.RepositoryRef, cfg *contract.Config, w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Name", "Path"})

	maxPath := getMaxMessageWidth(cfg)
	var data [][]string
	for _, r := range repos {
		data = append(data, []string{r.Name, contract.TruncatePath(r.Path, maxPath)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Tracking %d repositories\n", len(repos))
	return err
}

// WriteScanResults outputs the outcome of a directory scan.
func WriteScanResults(items []schema.DirectoryItem, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, items)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Name", "Path", "Git"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignLeft
		})

		found := 0
		maxPath := getMaxMessageWidth(cfg)
		var data [][]string
		for _, item := range items {
			if item.IsGitRepo {
				found++
			}
			data = append(data, []string{
				item.Name,
				contract.TruncatePath(item.Path, maxPath),
				strconv.FormatBool(item.IsGitRepo),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "Found %d git repositories in %d directories\n", found, len(items))
		return err
	}, "Wrote table")
}
