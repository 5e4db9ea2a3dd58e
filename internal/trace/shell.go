package trace

import (
	"strings"
)

// Shell describes the prompt a trace was captured under.
type Shell interface {
	Prompt() string
	Name() string
}

// BashShell is the default `$ ` prompt.
type BashShell struct{}

func (s *BashShell) Prompt() string {
	return "$ "
}

func (s *BashShell) Name() string {
	return "bash"
}

// ZshShell implements Shell for the zsh `% ` prompt.
type ZshShell struct{}

func (s *ZshShell) Prompt() string {
	return "% "
}

func (s *ZshShell) Name() string {
	return "zsh"
}

// RootShell implements Shell for a superuser `# ` prompt.
type RootShell struct{}

func (s *RootShell) Prompt() string {
	return "# "
}

func (s *RootShell) Name() string {
	return "root"
}

var knownShells = []Shell{&BashShell{}, &ZshShell{}, &RootShell{}}

// DetectShell identifies the prompt from the first command line of a trace,
// defaulting to Bash.
func DetectShell(firstLine string) Shell {
	for _, s := range knownShells {
		if strings.HasPrefix(firstLine, s.Prompt()) {
			return s
		}
	}
	return &BashShell{}
}

// ShellByName returns the shell called name ("bash", "zsh", "root"), or nil.
func ShellByName(name string) Shell {
	for _, s := range knownShells {
		if s.Name() == name {
			return s
		}
	}
	return nil
}
