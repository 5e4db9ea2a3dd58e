package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// StdinPath selects standard input as the trace source.
const StdinPath = "-"

// OpenTrace opens the trace at path, or standard input for "" and "-".
// The caller closes the returned reader.
func OpenTrace(path string) (io.ReadCloser, error) {
	if path == "" || path == StdinPath {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	return f, nil
}

// ReadLines reads the whole trace, used when an error needs line context.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	// Increase buffer size in case of very long lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
