package trace

import (
	"strings"
	"testing"

	"dirsize/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenerateReport verifies the summary lines and the verbose hierarchy.
func TestGenerateReport(t *testing.T) {
	result := analyzeSample(t, DefaultOptions())

	short := GenerateReport(result, false)
	assert.Contains(t, short, "Total of directories <= 100000: 95437")
	assert.Contains(t, short, "Smallest directory to delete: /d (24933642)")
	assert.Contains(t, short, "also large enough:          / (48381165)")
	assert.NotContains(t, short, "Hierarchy:")

	long := GenerateReport(result, true)
	assert.Contains(t, long, "Hierarchy:")
	assert.Contains(t, long, model.IconCandidate+"   "+model.IconDir+" d - 24933642")
	assert.Contains(t, long, model.IconFile+" i - 584")
}

// TestGenerateErrorReport verifies the error is shown with its trace context.
func TestGenerateErrorReport(t *testing.T) {
	lines := []string{"$ cd /", "$ ls", "oops", "$ cd a"}
	_, err := NewParser(nil).ParseLines(lines)
	require.Error(t, err)

	report := GenerateErrorReport(err, lines)
	assert.True(t, strings.HasPrefix(report, "Error: parse error at line 3"))
	assert.Contains(t, report, ">    3 | oops")
	assert.Contains(t, report, "     4 | $ cd a")
}
