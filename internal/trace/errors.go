package trace

import (
	"errors"

	"dirsize/internal/model"
)

// ErrReadTrace wraps failures to open or read a trace.
var ErrReadTrace = errors.New("read trace")

// ErrorLine returns the trace line an error points at, or 0.
func ErrorLine(err error) int {
	var parseErr *model.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Line
	}
	var navErr *model.NavigationError
	if errors.As(err, &navErr) {
		return navErr.Line
	}
	return 0
}

// IsTraceError reports whether err comes from a malformed trace rather
// than from the capacity inputs or I/O.
func IsTraceError(err error) bool {
	var parseErr *model.ParseError
	var navErr *model.NavigationError
	return errors.As(err, &parseErr) || errors.As(err, &navErr)
}
