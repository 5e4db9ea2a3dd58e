package fstree

import (
	"testing"

	"dirsize/internal/model"
	"github.com/stretchr/testify/require"
)

// sampleCommands is the canonical small trace: / holds a, d and two files,
// a holds e and three files, e holds one file, d holds four files.
func sampleCommands() []model.Command {
	return []model.Command{
		model.ChangeToRoot(),
		model.List(),
		model.DirEntry("a"),
		model.FileEntry("b.txt", 14848514),
		model.FileEntry("c.dat", 8504156),
		model.DirEntry("d"),
		model.ChangeDirectory("a"),
		model.List(),
		model.DirEntry("e"),
		model.FileEntry("f", 29116),
		model.FileEntry("g", 2557),
		model.FileEntry("h.lst", 62596),
		model.ChangeDirectory("e"),
		model.List(),
		model.FileEntry("i", 584),
		model.ChangeToParent(),
		model.ChangeToParent(),
		model.ChangeDirectory("d"),
		model.List(),
		model.FileEntry("j", 4060174),
		model.FileEntry("d.log", 8033020),
		model.FileEntry("d.ext", 5626152),
		model.FileEntry("k", 7214296),
	}
}

func buildTree(t *testing.T, cmds []model.Command, opts ...Option) *Tree {
	t.Helper()
	b := NewBuilder(opts...)
	require.NoError(t, b.ApplyAll(cmds))
	tree, err := b.Finish()
	require.NoError(t, err)
	return tree
}

// findByPath returns the node with the given absolute path.
func findByPath(t *testing.T, tree *Tree, path string) NodeID {
	t.Helper()
	found := NoParent
	tree.Walk(func(id NodeID, _ int) bool {
		if tree.Path(id) == path {
			found = id
			return false
		}
		return true
	})
	require.NotEqual(t, NoParent, found, "no directory at %s", path)
	return found
}
