package tui

import (
	"dirsize/internal/model"
	"dirsize/internal/trace"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// AppModel holds the TUI state.
type AppModel struct {
	// Source
	TracePath string
	Options   trace.Options

	// Data
	Result    model.AnalysisResult
	Loading   bool
	Err       error
	ErrReport string // error with surrounding trace lines

	// UI State
	SelectedIdx int // Index into FilteredIndices
	WindowSize  tea.WindowSizeMsg

	// View Modes
	ShowDiagnostics bool
	OnlyAtMost      bool // Show only directories counted by TotalAtMost ('t')
	ShowHelp        bool

	// Search State
	InputMode       bool
	InputBuffer     textinput.Model
	FilteredIndices []int // Indices of Directories to show
	SearchActive    bool

	// Components
	DetailsViewport viewport.Model
}

// InitialModel returns the initial state for analyzing the trace at path.
func InitialModel(path string, opts trace.Options) AppModel {
	ti := textinput.New()
	ti.Placeholder = "Directory name..."
	ti.CharLimit = 64
	ti.Width = 24

	return AppModel{
		TracePath:   path,
		Options:     opts,
		Loading:     true,
		InputBuffer: ti,
		SelectedIdx: 0,
	}
}

// Selected returns the highlighted directory, if any.
func (m AppModel) Selected() (model.DirSummary, bool) {
	if m.SelectedIdx < 0 || m.SelectedIdx >= len(m.FilteredIndices) {
		return model.DirSummary{}, false
	}
	return m.Result.Directories[m.FilteredIndices[m.SelectedIdx]], true
}

// SelectedPath returns the absolute path of the selected directory, "" if none.
func (m AppModel) SelectedPath() string {
	if m.SelectedIdx < 0 || m.SelectedIdx >= len(m.FilteredIndices) {
		return ""
	}
	return m.Result.DirPath(m.FilteredIndices[m.SelectedIdx])
}
