// Package gitsrc reads commit history by executing the local 'git' binary.
package gitsrc

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// DefaultCommandTimeout bounds every git invocation. A repository on a slow
// network mount should degrade into one diagnostic, not hang a whole pass.
const DefaultCommandTimeout = 30 * time.Second

// logFormat produces one header line per commit followed by its numstat
// block. The leading marker keeps headers distinguishable from numstat rows.
const logFormat = "--%H|%an|%ae|%aI|%s"

// LocalGitSource implements the CommitSource interface by executing the
// local 'git' binary installed on the machine.
type LocalGitSource struct {
	timeout time.Duration
}

var _ contract.CommitSource = &LocalGitSource{} // Compile-time check

// NewLocalGitSource creates a new instance of the local git source.
func NewLocalGitSource() *LocalGitSource {
	return &LocalGitSource{timeout: DefaultCommandTimeout}
}

// run executes a git command and returns its stdout output.
func (s *LocalGitSource) run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// IsValidRepository implements the CommitSource interface.
func (s *LocalGitSource) IsValidRepository(ctx context.Context, repoPath string) bool {
	out, err := s.run(ctx, repoPath, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(out)) == "true"
}

// ListCommits implements the CommitSource interface.
func (s *LocalGitSource) ListCommits(ctx context.Context, repoPath string, start, end time.Time) ([]schema.Commit, error) {
	out, err := s.run(ctx, repoPath, logArgs("", start, end)...)
	if err != nil {
		return nil, err
	}
	commits := parseLog(out)
	branch := s.CurrentBranch(ctx, repoPath)
	for i := range commits {
		commits[i].Branch = branch
	}
	return commits, nil
}

// ListBranchCommits implements the CommitSource interface.
func (s *LocalGitSource) ListBranchCommits(ctx context.Context, repoPath, branch string, start, end time.Time) ([]schema.Commit, error) {
	ref, err := s.resolveBranchRef(ctx, repoPath, branch)
	if err != nil {
		return nil, err
	}
	out, err := s.run(ctx, repoPath, logArgs(ref, start, end)...)
	if err != nil {
		return nil, err
	}
	commits := parseLog(out)
	for i := range commits {
		commits[i].Branch = branch
	}
	return commits, nil
}

// ListBranches implements the CommitSource interface.
func (s *LocalGitSource) ListBranches(ctx context.Context, repoPath string) ([]string, error) {
	out, err := s.run(ctx, repoPath, "for-each-ref", "refs/heads", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}
	branches := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(branches) == 1 && branches[0] == "" {
		return []string{}, nil
	}
	return branches, nil
}

// CurrentBranch implements the CommitSource interface.
func (s *LocalGitSource) CurrentBranch(ctx context.Context, repoPath string) string {
	out, err := s.run(ctx, repoPath, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return schema.DefaultBranch
	}
	name := strings.TrimSpace(string(out))
	if name == "" || name == "HEAD" { // detached HEAD
		return schema.DefaultBranch
	}
	return name
}

// Fetch implements the CommitSource interface.
func (s *LocalGitSource) Fetch(ctx context.Context, repoPath string) error {
	_, err := s.run(ctx, repoPath, "fetch", "--prune")
	return err
}

// resolveBranchRef prefers the local branch name and falls back to its
// origin/ counterpart for branches that only exist on the remote.
func (s *LocalGitSource) resolveBranchRef(ctx context.Context, repoPath, branch string) (string, error) {
	if _, err := s.run(ctx, repoPath, "rev-parse", "--verify", "--quiet", "refs/heads/"+branch); err == nil {
		return branch, nil
	}
	remote := "origin/" + branch
	if _, err := s.run(ctx, repoPath, "rev-parse", "--verify", "--quiet", "refs/remotes/"+remote); err == nil {
		return remote, nil
	}
	return "", fmt.Errorf("branch %q not found in %q", branch, repoPath)
}

// logArgs builds the git log invocation for one history read. An empty ref
// reads the checked-out branch.
func logArgs(ref string, start, end time.Time) []string {
	args := []string{
		"log",
		fmt.Sprintf("--max-count=%d", schema.MaxCommitsPerRepository),
		"--date=iso-strict",
		"--pretty=format:" + logFormat,
		"--numstat",
	}
	if !start.IsZero() {
		args = append(args, "--since="+start.Format(time.RFC3339))
	}
	if !end.IsZero() {
		args = append(args, "--until="+end.Format(time.RFC3339))
	}
	if ref != "" {
		args = append(args, ref)
	}
	return args
}
