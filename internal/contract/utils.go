package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Color variables for console output.
var (
	ActiveColor = color.New(color.FgGreen, color.Bold) // recent activity, healthy signal.
	IdleColor   = color.New(color.FgYellow)            // no activity for a few days.
	StaleColor  = color.New(color.FgRed)               // inactive for over a week.
	TitleColor  = color.New(color.FgCyan, color.Bold)  // section headers.
)

// Activity thresholds for status coloring.
const (
	activeThreshold = 48 * time.Hour
	idleThreshold   = 7 * 24 * time.Hour
)

// ColorForActivity maps a last-commit timestamp to a status color: green
// within two days, yellow within a week, red beyond that.
func ColorForActivity(last time.Time) *color.Color {
	age := time.Since(last)
	switch {
	case age <= activeThreshold:
		return ActiveColor
	case age <= idleThreshold:
		return IdleColor
	default:
		return StaleColor
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path selects stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetDBFilePath returns the path to the SQLite DB file for commit storage.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gitpulse.db"
	}
	return filepath.Join(homeDir, ".gitpulse.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and
// at least one character of content.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
