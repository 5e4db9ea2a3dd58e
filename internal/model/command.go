package model

import "fmt"

// CommandKind identifies which variant of Command is populated.
type CommandKind int

const (
	CmdChangeDirectory CommandKind = iota // cd <name>
	CmdChangeToParent                     // cd ..
	CmdChangeToRoot                       // cd /
	CmdList                               // ls
	CmdDirEntry                           // dir <name> (listing line)
	CmdFileEntry                          // <size> <name> (listing line)
)

func (k CommandKind) String() string {
	switch k {
	case CmdChangeDirectory:
		return "cd"
	case CmdChangeToParent:
		return "cd .."
	case CmdChangeToRoot:
		return "cd /"
	case CmdList:
		return "ls"
	case CmdDirEntry:
		return "dir"
	case CmdFileEntry:
		return "file"
	default:
		return fmt.Sprintf("CommandKind(%d)", int(k))
	}
}

// Command is a single parsed trace line.
// Name is set for CmdChangeDirectory, CmdDirEntry and CmdFileEntry; Size only for CmdFileEntry.
type Command struct {
	Kind CommandKind
	Name string
	Size int64
	Line int // 1-based line number in the trace, 0 if synthesized
}

// ChangeDirectory builds a `cd <name>` command.
func ChangeDirectory(name string) Command {
	return Command{Kind: CmdChangeDirectory, Name: name}
}

// ChangeToParent builds a `cd ..` command.
func ChangeToParent() Command {
	return Command{Kind: CmdChangeToParent}
}

// ChangeToRoot builds a `cd /` command.
func ChangeToRoot() Command {
	return Command{Kind: CmdChangeToRoot}
}

// List builds an `ls` marker.
func List() Command {
	return Command{Kind: CmdList}
}

// DirEntry builds a `dir <name>` listing line.
func DirEntry(name string) Command {
	return Command{Kind: CmdDirEntry, Name: name}
}

// FileEntry builds a `<size> <name>` listing line.
func FileEntry(name string, size int64) Command {
	return Command{Kind: CmdFileEntry, Name: name, Size: size}
}

// At returns a copy of c tagged with a trace line number.
func (c Command) At(line int) Command {
	c.Line = line
	return c
}
