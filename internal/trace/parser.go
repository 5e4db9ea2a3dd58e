package trace

import (
	"regexp"
	"strconv"
	"strings"

	"dirsize/internal/model"
)

var (
	cdRe   = regexp.MustCompile(`^cd\s+(\S.*)$`)
	lsRe   = regexp.MustCompile(`^ls\s*$`)
	dirRe  = regexp.MustCompile(`^dir\s+(\S.*)$`)
	fileRe = regexp.MustCompile(`^(\S+)\s+(\S.*)$`)
)

// Parser turns trace lines into commands.
type Parser struct {
	shell Shell
}

// NewParser creates a parser for the given prompt. A nil shell is detected
// from the first non-blank line of the trace.
func NewParser(shell Shell) *Parser {
	return &Parser{shell: shell}
}

// Shell returns the prompt in use, nil until detected.
func (p *Parser) Shell() Shell {
	return p.shell
}

// ParseLine parses a single trace line. lineNum is only used for errors.
// Blank lines yield ok == false and no error.
func (p *Parser) ParseLine(line string, lineNum int) (cmd model.Command, ok bool, err error) {
	trimmed := strings.TrimRight(line, " \t\r")
	if strings.TrimSpace(trimmed) == "" {
		return model.Command{}, false, nil
	}
	if p.shell == nil {
		p.shell = DetectShell(trimmed)
	}

	fail := func(reason string, cause error) (model.Command, bool, error) {
		return model.Command{}, false, &model.ParseError{Line: lineNum, Text: line, Reason: reason, Err: cause}
	}

	if rest, isCmd := strings.CutPrefix(trimmed, p.shell.Prompt()); isCmd {
		rest = strings.TrimSpace(rest)
		if m := cdRe.FindStringSubmatch(rest); m != nil {
			switch name := m[1]; name {
			case "..":
				return model.ChangeToParent().At(lineNum), true, nil
			case "/":
				return model.ChangeToRoot().At(lineNum), true, nil
			default:
				return model.ChangeDirectory(name).At(lineNum), true, nil
			}
		}
		if lsRe.MatchString(rest) {
			return model.List().At(lineNum), true, nil
		}
		return fail("unknown command", nil)
	}

	if m := dirRe.FindStringSubmatch(trimmed); m != nil {
		return model.DirEntry(m[1]).At(lineNum), true, nil
	}

	m := fileRe.FindStringSubmatch(trimmed)
	if m == nil {
		return fail("unrecognized line", nil)
	}
	size, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return fail("invalid file size", err)
	}
	if size < 0 {
		return fail("file size must not be negative", nil)
	}
	return model.FileEntry(m[2], size).At(lineNum), true, nil
}

// ParseLines parses an in-memory trace and stops at the first malformed
// line. Line numbers are 1-based positions in lines.
func (p *Parser) ParseLines(lines []string) ([]model.Command, error) {
	var all []model.Command
	for i, line := range lines {
		cmd, ok, err := p.ParseLine(line, i+1)
		if err != nil {
			return nil, err
		}
		if ok {
			all = append(all, cmd)
		}
	}
	return all, nil
}
