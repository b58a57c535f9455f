// Package parquet exports commit activity data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/gitpulse/gitpulse/schema"
)

// CommitRecord is one commit row of a Parquet export.
type CommitRecord struct {
	Repository   string    `parquet:"repository,snappy"`
	Hash         string    `parquet:"hash,snappy"`
	AuthorName   string    `parquet:"author_name,snappy"`
	AuthorEmail  string    `parquet:"author_email,snappy"`
	CommitTime   time.Time `parquet:"commit_time,snappy"`
	Message      string    `parquet:"message,snappy"`
	Branch       string    `parquet:"branch,snappy"`
	FilesChanged int32     `parquet:"files_changed,snappy"`
	Insertions   int32     `parquet:"insertions,snappy"`
	Deletions    int32     `parquet:"deletions,snappy"`
}

// AuthorRecord is one per-author summary row of a Parquet export.
type AuthorRecord struct {
	Name            string    `parquet:"name,snappy"`
	Email           string    `parquet:"email,snappy"`
	TotalCommits    int32     `parquet:"total_commits,snappy"`
	TotalInsertions int32     `parquet:"total_insertions,snappy"`
	TotalDeletions  int32     `parquet:"total_deletions,snappy"`
	LastCommitTime  time.Time `parquet:"last_commit_time,snappy"`
}

// CommitRecords converts a commit slice into export rows.
func CommitRecords(commits []schema.Commit) []CommitRecord {
	records := make([]CommitRecord, 0, len(commits))
	for _, c := range commits {
		records = append(records, CommitRecord{
			Repository:   c.Repository,
			Hash:         c.Hash,
			AuthorName:   c.AuthorName,
			AuthorEmail:  c.AuthorEmail,
			CommitTime:   c.Timestamp,
			Message:      c.Message,
			Branch:       c.Branch,
			FilesChanged: int32(c.FilesChanged),
			Insertions:   int32(c.Insertions),
			Deletions:    int32(c.Deletions),
		})
	}
	return records
}

// AuthorRecords converts per-author rollups into export rows.
func AuthorRecords(rollups []schema.AuthorRollup) []AuthorRecord {
	records := make([]AuthorRecord, 0, len(rollups))
	for _, r := range rollups {
		records = append(records, AuthorRecord{
			Name:            r.Name,
			Email:           r.Email,
			TotalCommits:    int32(r.TotalCommits),
			TotalInsertions: int32(r.TotalInsertions),
			TotalDeletions:  int32(r.TotalDeletions),
			LastCommitTime:  r.LastCommitDate,
		})
	}
	return records
}

// WriteCommitsParquet writes commit rows to a Parquet file. The schema is
// inferred from the CommitRecord struct tags.
func WriteCommitsParquet(records []CommitRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[CommitRecord](file)
	if _, err := writer.Write(records); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteAuthorsParquet writes per-author summary rows to a Parquet file.
func WriteAuthorsParquet(records []AuthorRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[AuthorRecord](file)
	if _, err := writer.Write(records); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
