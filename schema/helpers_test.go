package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		// Basic cases
		{"Samuel", "Samuel"},            // single-part name
		{"Samuel Huang", "Samuel"},      // standard two-part name
		{"First Second Third", "First"}, // three parts, keeps first

		// Spaces
		{"  Alice  ", "Alice"},  // leading/trailing spaces
		{"John   Doe", "John"},  // multiple spaces
		{"", ""},                // empty input
		{"   ", ""},             // whitespace only
		{"Anne-Marie S", "Anne-Marie"}, // hyphenated first name kept whole

		// Bot accounts
		{"dependabot[bot]", "dependabot[bot]"},   // bot account, unchanged
		{"renovate [bot]", "renovate [bot]"},     // bot account with space, unchanged

		// Unicode
		{"José María", "José"},
		{"张三", "张三"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FirstName(tt.name)
			assert.Equal(t, tt.want, got, "FirstName(%q) should match expected result", tt.name)
		})
	}
}

func TestRepositoryName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/home/sam/work/payments-api", "payments-api"},
		{"/home/sam/work/payments-api/", "payments-api"}, // trailing separator ignored
		{"payments-api", "payments-api"},                 // bare name
		{"C:\\work\\payments-api", "payments-api"},       // Windows separators
		{"/", "/"},                                       // degenerate path
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := RepositoryName(tt.path)
			assert.Equal(t, tt.want, got, "RepositoryName(%q) should match expected result", tt.path)
		})
	}
}
