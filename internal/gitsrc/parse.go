package gitsrc

import (
	"strconv"
	"strings"
	"time"

	"github.com/gitpulse/gitpulse/schema"
)

// commitMarker prefixes each header line emitted by logFormat.
const commitMarker = "--"

// parseLog converts raw 'git log --numstat' output into commits, newest
// first as git emits them. Malformed header lines are skipped; numstat rows
// with binary placeholders count the file but contribute zero lines.
func parseLog(out []byte) []schema.Commit {
	var commits []schema.Commit
	var current *schema.Commit

	for line := range strings.SplitSeq(string(out), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, commitMarker) && strings.Contains(line, "|") {
			if current != nil {
				commits = append(commits, *current)
			}
			current = parseHeader(strings.TrimPrefix(line, commitMarker))
			continue
		}

		if current == nil {
			continue
		}
		files, ins, del, ok := parseNumstat(line)
		if !ok {
			continue
		}
		current.FilesChanged += files
		current.Insertions += ins
		current.Deletions += del
	}

	if current != nil {
		commits = append(commits, *current)
	}
	return commits
}

// parseHeader parses "hash|name|email|iso-date|subject". The subject may
// itself contain pipes, so only the first four separators split fields.
func parseHeader(line string) *schema.Commit {
	parts := strings.SplitN(line, "|", 5)
	if len(parts) != 5 {
		return nil
	}
	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(parts[3]))
	if err != nil {
		return nil
	}
	return &schema.Commit{
		Hash:        strings.TrimSpace(parts[0]),
		AuthorName:  strings.TrimSpace(parts[1]),
		AuthorEmail: strings.ToLower(strings.TrimSpace(parts[2])),
		Timestamp:   ts,
		Message:     parts[4],
	}
}

// parseNumstat parses one "insertions<TAB>deletions<TAB>path" row.
func parseNumstat(line string) (files, ins, del int, ok bool) {
	parts := strings.Split(line, "\t")
	if len(parts) < 3 {
		return 0, 0, 0, false
	}
	return 1, parseCount(parts[0]), parseCount(parts[1]), true
}

// parseCount handles the "-" placeholder git emits for binary files.
func parseCount(s string) int {
	if s == "-" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
