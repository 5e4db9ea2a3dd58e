package fstree

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"dirsize/internal/model"
)

// ErrFrozen is returned by Apply after Finish.
var ErrFrozen = errors.New("tree is frozen")

// RootName is the name given to the root directory.
const RootName = "/"

type childKey struct {
	parent NodeID
	name   string
}

// Builder replays trace commands against a cursor.
type Builder struct {
	arena      *Arena
	root       NodeID
	cursor     NodeID
	children   map[childKey]NodeID // first child with a given name under a parent
	total      int64               // sum of every file so far; bounds every aggregate
	listedDirs bool
	frozen     bool
	logger     *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithListedDirs controls whether `dir <name>` listing lines create the child
// up front. When disabled, directories only appear once they are entered.
func WithListedDirs(enabled bool) Option {
	return func(b *Builder) {
		b.listedDirs = enabled
	}
}

// WithLogger sets the logger used for debug output. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder returns a builder whose cursor is on a freshly created root.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		arena:      &Arena{},
		children:   make(map[childKey]NodeID),
		listedDirs: true,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.root = b.arena.add(RootName, NoParent)
	b.cursor = b.root
	return b
}

// Cursor returns the current directory.
func (b *Builder) Cursor() NodeID { return b.cursor }

// Apply replays one command.
func (b *Builder) Apply(cmd model.Command) error {
	if b.frozen {
		return ErrFrozen
	}

	switch cmd.Kind {
	case model.CmdChangeToParent:
		parent := b.arena.nodes[b.cursor].Parent
		if parent == NoParent {
			return &model.NavigationError{Line: cmd.Line, Path: b.path(b.cursor)}
		}
		b.cursor = parent

	case model.CmdChangeToRoot:
		b.cursor = b.root

	case model.CmdChangeDirectory:
		b.cursor = b.child(b.cursor, cmd.Name)

	case model.CmdList:
		// Marker only; following listing lines belong to the cursor.

	case model.CmdDirEntry:
		if b.listedDirs {
			b.child(b.cursor, cmd.Name)
		}

	case model.CmdFileEntry:
		if cmd.Size < 0 {
			return &model.ParseError{
				Line:   cmd.Line,
				Text:   fmt.Sprintf("%d %s", cmd.Size, cmd.Name),
				Reason: "file size must not be negative",
			}
		}
		if cmd.Size > math.MaxInt64-b.total {
			return &model.ParseError{
				Line:   cmd.Line,
				Text:   fmt.Sprintf("%d %s", cmd.Size, cmd.Name),
				Reason: "total size exceeds the int64 range",
			}
		}
		b.total += cmd.Size
		node := &b.arena.nodes[b.cursor]
		node.Files = append(node.Files, model.File{Name: cmd.Name, Size: cmd.Size})

	default:
		return fmt.Errorf("unknown command kind %v at line %d", cmd.Kind, cmd.Line)
	}
	return nil
}

// ApplyAll replays cmds in order and stops at the first error.
func (b *Builder) ApplyAll(cmds []model.Command) error {
	for _, cmd := range cmds {
		if err := b.Apply(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Finish freezes the builder and returns the tree.
func (b *Builder) Finish() (*Tree, error) {
	if b.frozen {
		return nil, ErrFrozen
	}
	b.frozen = true
	b.children = nil
	b.logger.Debug("tree frozen",
		slog.Int("directories", b.arena.Len()),
		slog.String("cursor", b.path(b.cursor)))
	return &Tree{arena: b.arena, root: b.root}, nil
}

// child returns the first child of parent called name, creating it if needed.
func (b *Builder) child(parent NodeID, name string) NodeID {
	key := childKey{parent: parent, name: name}
	if id, ok := b.children[key]; ok {
		return id
	}
	id := b.arena.add(name, parent)
	b.children[key] = id
	return id
}

func (b *Builder) path(id NodeID) string {
	t := Tree{arena: b.arena, root: b.root}
	return t.Path(id)
}
