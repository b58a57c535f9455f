package contract

import (
	"errors"
	"fmt"
)

// ErrMissingDateRange is returned when the custom date filter is selected
// without both boundary dates.
var ErrMissingDateRange = errors.New("custom filter requires both start and end dates")

// ErrNoRepositories is returned when an operation needs at least one
// configured repository and none exist.
var ErrNoRepositories = errors.New("no repositories configured")

// SourceUnavailableError reports that one repository could not be read.
// Aggregation collects these as diagnostics instead of aborting the pass.
type SourceUnavailableError struct {
	Repository string
	Reason     string
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("repository %s unavailable: %s", e.Repository, e.Reason)
}

// PersistenceError wraps a store failure with the operation that caused it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
