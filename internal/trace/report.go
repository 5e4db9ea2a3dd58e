package trace

import (
	"fmt"
	"strings"

	"dirsize/internal/model"
)

// GenerateReport renders a plain-text report. verbose adds the hierarchy
// with every file.
func GenerateReport(result model.AnalysisResult, verbose bool) string {
	var b strings.Builder

	b.WriteString("DIRECTORY SIZE REPORT\n")
	b.WriteString("=====================\n\n")

	fmt.Fprintf(&b, "Directories:            %d\n", len(result.Directories))
	fmt.Fprintf(&b, "Used:                   %d\n", result.Used)
	fmt.Fprintf(&b, "Capacity:               %d\n", result.Capacity)
	fmt.Fprintf(&b, "Unused:                 %d\n", result.Unused)
	fmt.Fprintf(&b, "Required free:          %d\n", result.RequiredFree)
	fmt.Fprintf(&b, "Deficit:                %d\n\n", result.Deficit)

	fmt.Fprintf(&b, "Total of directories <= %d: %d\n", result.Threshold, result.TotalAtMost)
	fmt.Fprintf(&b, "Smallest directory to delete: %s (%d)\n", result.Candidate.Path, result.MinToDelete)
	for _, c := range result.Runners {
		fmt.Fprintf(&b, "  also large enough:          %s (%d)\n", c.Path, c.Size)
	}

	if len(result.Diagnostics) > 0 {
		b.WriteString("\nDiagnostics:\n")
		for _, d := range result.Diagnostics {
			fmt.Fprintf(&b, "  - %s\n", d)
		}
	}

	if verbose {
		b.WriteString("\nHierarchy:\n")
		for _, d := range result.Directories {
			indent := model.Indent(d.Depth)
			icon := model.IconOK
			switch {
			case d.Candidate:
				icon = model.IconCandidate
			case d.AtMost:
				icon = model.IconAtMost
			}
			fmt.Fprintf(&b, "%s %s%s %s - %d\n", icon, indent, model.IconDir, d.Name, d.Size)
			for _, f := range d.Files {
				fmt.Fprintf(&b, "  %s  %s %s - %d\n", indent, model.IconFile, f.Name, f.Size)
			}
		}
	}

	return b.String()
}

// GenerateErrorReport describes a failed analysis, with the surrounding
// trace lines when the error points at one.
func GenerateErrorReport(err error, lines []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %v\n", err)
	if n := ErrorLine(err); n > 0 && len(lines) > 0 {
		b.WriteString("\n")
		b.WriteString(model.GetLineContext(lines, n).String())
	}
	return b.String()
}
