package model

// Centralized icons for the UI components
// Using simple single-width characters for consistent terminal rendering
const (
	IconDir       = "▸" // Directory row
	IconFile      = "·" // File row
	IconAtMost    = "≤" // Directory counted by TotalAtMost
	IconCandidate = "✗" // Directory chosen for deletion
	IconOK        = " " // Space (no icon to reduce noise)
)
