package model

import "fmt"

// ParseError reports a trace line that matches no known shape,
// or a listing line whose size is not a non-negative integer.
type ParseError struct {
	Line   int    // 1-based, 0 if unknown
	Text   string // offending line
	Reason string
	Err    error // underlying cause, e.g. from strconv
}

func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d (%q): %s", e.Line, e.Text, msg)
	}
	return fmt.Sprintf("parse error (%q): %s", e.Text, msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NavigationError reports an attempt to move above the root.
type NavigationError struct {
	Line int
	Path string // cursor path when the move was attempted
}

func (e *NavigationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("navigation error at line %d: cannot cd .. from %s", e.Line, e.Path)
	}
	return fmt.Sprintf("navigation error: cannot cd .. from %s", e.Path)
}

// NoCandidateError reports that no directory is large enough to cover the deficit.
type NoCandidateError struct {
	Deficit  int64
	RootSize int64
}

func (e *NoCandidateError) Error() string {
	return fmt.Sprintf("no directory frees %d bytes (root holds only %d)", e.Deficit, e.RootSize)
}
