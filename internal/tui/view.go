package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"dirsize/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	candidateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")). // Orange
			Bold(true)

	atMostStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")) // Sky Blue/Cyan

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (m AppModel) View() string {
	if m.Loading {
		return "\n  Replaying trace... please wait.\n"
	}
	if m.Err != nil {
		return "\n" + errorStyle.Render(m.ErrReport) + "\n  Press q to quit.\n"
	}
	if m.ShowHelp {
		return m.renderDialog("Keys", helpText)
	}
	if m.ShowDiagnostics {
		body := "No diagnostics."
		if len(m.Result.Diagnostics) > 0 {
			body = "- " + strings.Join(m.Result.Diagnostics, "\n- ")
		}
		return m.renderDialog("Diagnostics", body)
	}

	width := m.WindowSize.Width
	height := m.WindowSize.Height

	netWidth := width - 6
	if netWidth < 20 {
		netWidth = 20
	}
	leftWidth := netWidth / 2
	rightWidth := netWidth - leftWidth

	boxHeight := height - 6
	if boxHeight < 6 {
		boxHeight = 6
	}
	interiorHeight := boxHeight - 2

	// LEFT PANEL: directory tree
	var leftView strings.Builder
	leftView.WriteString(titleStyle.Render("Directories"))
	leftView.WriteString("\n\n")

	visibleItems := interiorHeight - 2
	if visibleItems < 1 {
		visibleItems = 1
	}
	startIdx, endIdx := window(m.SelectedIdx, len(m.FilteredIndices), visibleItems)

	for i := startIdx; i < endIdx; i++ {
		idx := m.FilteredIndices[i]
		d := m.Result.Directories[idx]
		line := ansi.Truncate(m.dirLine(idx), leftWidth-2, "...")

		style := normalStyle
		switch {
		case i == m.SelectedIdx:
			style = selectedStyle
		case d.Candidate:
			style = candidateStyle
		case d.AtMost:
			style = atMostStyle
		}
		leftView.WriteString(style.Render(line))
		leftView.WriteString("\n")
	}
	if len(m.FilteredIndices) == 0 {
		leftView.WriteString(dimStyle.Render("  (no matching directories)"))
	}

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("205")).
		Render(strings.TrimSuffix(leftView.String(), "\n"))

	// RIGHT PANEL: summary + selected directory
	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(m.details(interiorHeight))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right) + "\n" + m.footer()
}

// window returns the [start, end) slice of n rows that keeps selected centred.
func window(selected, n, visible int) (int, int) {
	if n <= visible {
		return 0, n
	}
	start := 0
	if selected >= visible/2 {
		start = selected - visible/2
	}
	if start+visible > n {
		start = n - visible
	}
	return start, start + visible
}

func (m AppModel) dirLine(idx int) string {
	d := m.Result.Directories[idx]
	icon := model.IconOK
	switch {
	case d.Candidate:
		icon = model.IconCandidate
	case d.AtMost:
		icon = model.IconAtMost
	}
	if m.SearchActive {
		return fmt.Sprintf("%s %s %s  %d", icon, model.IconDir, m.Result.DirPath(idx), d.Size)
	}
	return fmt.Sprintf("%s %s%s %s  %d", icon, model.Indent(d.Depth), model.IconDir, d.Name, d.Size)
}

func (m AppModel) details(height int) string {
	var b strings.Builder
	r := m.Result

	b.WriteString(titleStyle.Render("Summary"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Used %d of %d (free %d, need %d)\n", r.Used, r.Capacity, r.Unused, r.RequiredFree)
	fmt.Fprintf(&b, "%s Total of dirs <= %d: %d\n", model.IconAtMost, r.Threshold, r.TotalAtMost)
	fmt.Fprintf(&b, "%s Delete %s to free %d (deficit %d)\n\n", model.IconCandidate, r.Candidate.Path, r.MinToDelete, r.Deficit)

	d, ok := m.Selected()
	if !ok {
		return b.String()
	}
	b.WriteString(titleStyle.Render(m.SelectedPath()))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Size:  %d\n", d.Size)
	fmt.Fprintf(&b, "Own:   %d in %d files\n", d.OwnSize, len(d.Files))
	fmt.Fprintf(&b, "Tree:  %d files, %d subdirectories\n\n", d.FileCount, d.ChildCount)

	room := height - strings.Count(b.String(), "\n") - 1
	for i, f := range d.Files {
		if i >= room-1 && len(d.Files) > room {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more", len(d.Files)-i)))
			break
		}
		fmt.Fprintf(&b, "  %s %s  %d\n", model.IconFile, f.Name, f.Size)
	}
	return b.String()
}

func (m AppModel) footer() string {
	if m.InputMode {
		return " Filter: " + m.InputBuffer.View()
	}
	hint := "↑/↓ move • / filter • t ≤threshold • c candidate • d diagnostics • ? help • q quit"
	if m.SearchActive {
		hint = fmt.Sprintf("filter %q • esc clear • ", m.InputBuffer.Value()) + hint
	}
	return dimStyle.Render(" " + hint)
}

const helpText = `↑/k, ↓/j   move
g / G      first / last directory
/ or w     filter directories by name (enter to keep, esc to clear)
t          only show directories counted by the threshold total
c          jump to the deletion candidate
d          diagnostics
q          quit`

func (m AppModel) renderDialog(title, body string) string {
	w, h := m.WindowSize.Width, m.WindowSize.Height
	if w < 20 || h < 10 {
		return title + "\n\n" + body
	}

	dialogWidth := w * 80 / 100
	if dialogWidth < 40 {
		dialogWidth = 40
	}
	if dialogWidth > w-4 {
		dialogWidth = w - 4
	}

	footer := dimStyle.Render("\nEsc to close")
	dialog := lipgloss.NewStyle().
		Width(dialogWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1).
		Render(titleStyle.Render(title) + "\n\n" + body + footer)

	return lipgloss.Place(w, h,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, InitAnalyzeCmd(m.TracePath, m.Options))
}
