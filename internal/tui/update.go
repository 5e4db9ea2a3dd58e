package tui

import (
	"strings"

	"dirsize/internal/model"
	"dirsize/internal/trace"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// MsgAnalysisReady indicates that the trace has been analyzed.
type MsgAnalysisReady model.AnalysisResult

// MsgError indicates the analysis failed. Lines holds the trace, if it was read.
type MsgError struct {
	Err   error
	Lines []string
}

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.DetailsViewport.Width = msg.Width / 2
		m.DetailsViewport.Height = msg.Height - 4 // minus footer/header
		return m, nil

	case MsgAnalysisReady:
		m.Loading = false
		m.Result = model.AnalysisResult(msg)
		m.applyFilter()
		m.selectCandidate()
		return m, nil

	case MsgError:
		m.Err = msg.Err
		m.ErrReport = trace.GenerateErrorReport(msg.Err, msg.Lines)
		m.Loading = false
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.applyFilter()
				return m, nil
			case tea.KeyEsc:
				m.clearSearch()
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		if m.ShowHelp || m.ShowDiagnostics {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "esc", "?", "d":
				m.ShowHelp = false
				m.ShowDiagnostics = false
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.SearchActive {
				m.clearSearch()
			}
		case "up", "k":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
			}
		case "down", "j":
			if m.SelectedIdx < len(m.FilteredIndices)-1 {
				m.SelectedIdx++
			}
		case "home", "g":
			m.SelectedIdx = 0
		case "end", "G":
			if len(m.FilteredIndices) > 0 {
				m.SelectedIdx = len(m.FilteredIndices) - 1
			}
		case "c":
			m.selectCandidate()
		case "t":
			m.OnlyAtMost = !m.OnlyAtMost
			m.applyFilter()
		case "d":
			m.ShowDiagnostics = true
		case "?":
			m.ShowHelp = true
		case "/", "w":
			m.InputMode = true
			m.InputBuffer.Focus()
			m.InputBuffer.SetValue("")
			return m, textinput.Blink
		}
	}

	return m, cmd
}

func (m *AppModel) clearSearch() {
	m.InputMode = false
	m.InputBuffer.Blur()
	m.InputBuffer.SetValue("")
	m.applyFilter()
}

// applyFilter rebuilds FilteredIndices from the search term and the threshold toggle.
func (m *AppModel) applyFilter() {
	term := strings.ToLower(m.InputBuffer.Value())
	m.SearchActive = term != ""

	selectedID := -1
	if d, ok := m.Selected(); ok {
		selectedID = d.ID
	}

	var filtered []int
	for i, d := range m.Result.Directories {
		if m.OnlyAtMost && !d.AtMost {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(d.Name), term) {
			continue
		}
		filtered = append(filtered, i)
	}
	m.FilteredIndices = filtered

	// Keep the same directory selected when it is still visible
	for i, idx := range m.FilteredIndices {
		if m.Result.Directories[idx].ID == selectedID {
			m.SelectedIdx = i
			return
		}
	}
	if m.SelectedIdx >= len(m.FilteredIndices) {
		if len(m.FilteredIndices) > 0 {
			m.SelectedIdx = len(m.FilteredIndices) - 1
		} else {
			m.SelectedIdx = 0
		}
	}
}

// selectCandidate moves the cursor onto the deletion candidate if it is visible.
func (m *AppModel) selectCandidate() {
	for i, idx := range m.FilteredIndices {
		if m.Result.Directories[idx].Candidate {
			m.SelectedIdx = i
			return
		}
	}
}

// InitAnalyzeCmd reads and analyzes the trace in background.
func InitAnalyzeCmd(path string, opts trace.Options) tea.Cmd {
	return func() tea.Msg {
		// The TUI owns the terminal, so analysis logs are discarded.
		res, lines, err := trace.NewAnalyzer(opts, discardLogger()).AnalyzeFile(path)
		if err != nil {
			return MsgError{Err: err, Lines: lines}
		}
		return MsgAnalysisReady(res)
	}
}
