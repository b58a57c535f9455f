// Package outwriter has output and writer logic.
package outwriter

import (
	"errors"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for
// the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteDashboard prints the dashboard snapshot using the configured output format.
func (ow *OutWriter) WriteDashboard(snap schema.MetricsSnapshot, cfg *contract.Config, duration time.Duration) error {
	return WriteDashboardResults(snap, cfg, duration)
}

// WriteAuthors prints per-author rollups using the configured output format.
func (ow *OutWriter) WriteAuthors(rollups []schema.AuthorRollup, cfg *contract.Config, duration time.Duration) error {
	return WriteAuthorResults(rollups, cfg, duration)
}

// WriteBranches prints persisted branch summaries using the configured output format.
func (ow *OutWriter) WriteBranches(stats []schema.BranchStats, cfg *contract.Config) error {
	return WriteBranchResults(stats, cfg)
}

// WriteBranchAuthors prints the contributors to one branch of one repository
// plus the branch's most recent live commits.
func (ow *OutWriter) WriteBranchAuthors(repository, branch string, authors []schema.BranchAuthor, recent []schema.Commit, cfg *contract.Config) error {
	return WriteBranchAuthorResults(repository, branch, authors, recent, cfg)
}

// WriteTeamStatus prints the store-backed developer activity view.
func (ow *OutWriter) WriteTeamStatus(activities []schema.DeveloperActivity, cfg *contract.Config) error {
	return WriteTeamStatusResults(activities, cfg)
}

// WriteReport prints the store-wide report using the configured output format.
func (ow *OutWriter) WriteReport(report ReportData, cfg *contract.Config) error {
	return WriteReportResults(report, cfg)
}

// WriteRepositories prints the tracked repository list.
func (ow *OutWriter) WriteRepositories(repos []schema.RepositoryRef, cfg *contract.Config) error {
	return WriteRepositoryResults(repos, cfg)
}

// WriteScan prints the outcome of a directory scan for git repositories.
func (ow *OutWriter) WriteScan(items []schema.DirectoryItem, cfg *contract.Config) error {
	return WriteScanResults(items, cfg)
}

// WriteFetchResults prints per-repository fetch outcomes.
func (ow *OutWriter) WriteFetchResults(results []schema.FetchResult, cfg *contract.Config) error {
	return WriteFetchOutcomes(results, cfg)
}

// WriteStoreStatus prints persistence store status.
func (ow *OutWriter) WriteStoreStatus(status schema.StoreStatus, cfg *contract.Config) error {
	return WriteStoreStatusResults(status, cfg)
}

// WriteDiagnostics warns about repositories that could not be read. Partial
// results still render, so diagnostics go to stderr only.
func (ow *OutWriter) WriteDiagnostics(diagnostics []string) {
	for _, d := range diagnostics {
		contract.LogWarn("repository skipped", errors.New(d))
	}
}

// getTerminalWidth resolves the render width: explicit override first, then
// the detected terminal size, then a conservative default for CI and pipes.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80
	}
	return detectedWidth
}

// getMaxMessageWidth calculates the space left for commit messages after the
// fixed columns of activity tables.
func getMaxMessageWidth(cfg *contract.Config) int {
	available := getTerminalWidth(cfg) - 60
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
