package schema

// Custom string types for type safety.
type (
	// DateFilter represents a named date-window filter.
	DateFilter string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string
)

// All date filters supported.
const (
	TodayFilter       DateFilter = "today" // default
	YesterdayFilter   DateFilter = "yesterday"
	Last3DaysFilter   DateFilter = "last3days"
	LastWeekFilter    DateFilter = "lastweek"
	LastMonthFilter   DateFilter = "lastmonth"
	Last2MonthsFilter DateFilter = "last2months"
	Last3MonthsFilter DateFilter = "last3months"
	CustomFilter      DateFilter = "custom"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// DefaultBranch is the sentinel branch name used when a commit's branch
// cannot be determined.
const DefaultBranch = "main"

// MaxCommitsPerRepository caps how many commits one ListCommits call may
// return. A deliberate scope boundary, not a tunable.
const MaxCommitsPerRepository = 1000

// ValidDateFilters lists all valid date filters.
var ValidDateFilters = map[DateFilter]struct{}{
	TodayFilter:       {},
	YesterdayFilter:   {},
	Last3DaysFilter:   {},
	LastWeekFilter:    {},
	LastMonthFilter:   {},
	Last2MonthsFilter: {},
	Last3MonthsFilter: {},
	CustomFilter:      {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
