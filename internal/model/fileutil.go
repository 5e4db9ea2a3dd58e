package model

import (
	"fmt"
	"strings"
)

// LineContext represents a trace line with surrounding context
type LineContext struct {
	Before2    string // Two lines before the target
	Before1    string // Line before the target
	Target     string // The actual target line
	After1     string // Line after the target
	After2     string // Two lines after the target
	LineNumber int    // Line number of the target
	HasBefore2 bool
	HasBefore1 bool
	HasAfter1  bool
	HasAfter2  bool
	ErrorMsg   string // Set when the line is out of range
}

// GetLineContext returns lines[lineNumber-1] with up to two lines on either side.
func GetLineContext(lines []string, lineNumber int) LineContext {
	result := LineContext{
		LineNumber: lineNumber,
	}

	if lineNumber < 1 || lineNumber > len(lines) {
		result.ErrorMsg = fmt.Sprintf("Line %d out of range (trace has %d lines)", lineNumber, len(lines))
		return result
	}

	result.Target = lines[lineNumber-1]

	if lineNumber > 2 {
		result.Before2 = lines[lineNumber-3]
		result.HasBefore2 = true
	}
	if lineNumber > 1 {
		result.Before1 = lines[lineNumber-2]
		result.HasBefore1 = true
	}

	if lineNumber < len(lines) {
		result.After1 = lines[lineNumber]
		result.HasAfter1 = true
	}
	if lineNumber+1 < len(lines) {
		result.After2 = lines[lineNumber+1]
		result.HasAfter2 = true
	}

	return result
}

// String renders the context with line numbers, marking the target with '>'.
func (c LineContext) String() string {
	if c.ErrorMsg != "" {
		return c.ErrorMsg
	}
	var b strings.Builder
	row := func(n int, text string, mark string) {
		fmt.Fprintf(&b, "%s %4d | %s\n", mark, n, text)
	}
	if c.HasBefore2 {
		row(c.LineNumber-2, c.Before2, " ")
	}
	if c.HasBefore1 {
		row(c.LineNumber-1, c.Before1, " ")
	}
	row(c.LineNumber, c.Target, ">")
	if c.HasAfter1 {
		row(c.LineNumber+1, c.After1, " ")
	}
	if c.HasAfter2 {
		row(c.LineNumber+2, c.After2, " ")
	}
	return b.String()
}
