package model

import "strings"

// maxIndentDepth caps the indentation of nested listings.
const maxIndentDepth = 24

// File is one file listed inside a directory.
type File struct {
	Name string
	Size int64
}

// DirSummary is a flattened, read-only view of one directory after aggregation.
type DirSummary struct {
	ID         int    // Arena index of the directory
	Parent     int    // Index of the parent in AnalysisResult.Directories, -1 for the root
	Name       string // Directory name ("/" for the root)
	Depth      int    // 0 for the root
	Size       int64  // Aggregate size (own files + all descendants)
	OwnSize    int64  // Sum of files listed directly in this directory
	FileCount  int    // Files in the whole subtree
	ChildCount int
	Files      []File
	AtMost     bool // Size <= Threshold
	Candidate  bool // Chosen by MinToDelete
}

// Candidate is the directory selected for deletion.
type Candidate struct {
	ID   int
	Path string
	Size int64
}

// AnalysisResult contains the processed data from a trace.
type AnalysisResult struct {
	RunID string `json:",omitempty"`

	// Inputs
	Threshold    int64
	Capacity     int64
	RequiredFree int64

	// Answers
	TotalAtMost int64
	MinToDelete int64

	// Space accounting
	Used      int64 // size of the root
	Unused    int64 // Capacity - Used
	Deficit   int64 // max(0, RequiredFree - Unused)
	Candidate Candidate
	Runners   []Candidate `json:",omitempty"` // next smallest directories that also cover the deficit

	// Directories in pre-order (parents before children, siblings in arrival order).
	Directories []DirSummary
	Lines       int // trace lines consumed
	Diagnostics []string
}

// DirPath returns the absolute path of Directories[i], or "" when i is out of
// range. Paths are built on demand by following Parent.
func (r AnalysisResult) DirPath(i int) string {
	if i < 0 || i >= len(r.Directories) {
		return ""
	}
	var parts []string
	for j := i; r.Directories[j].Parent >= 0; j = r.Directories[j].Parent {
		parts = append(parts, r.Directories[j].Name)
	}
	if len(parts) == 0 {
		return "/"
	}
	var b strings.Builder
	for k := len(parts) - 1; k >= 0; k-- {
		b.WriteString("/")
		b.WriteString(parts[k])
	}
	return b.String()
}

// Indent returns the leading space for a row at depth. Rows deeper than
// maxIndentDepth share the same indentation.
func Indent(depth int) string {
	return strings.Repeat("  ", min(depth, maxIndentDepth))
}
