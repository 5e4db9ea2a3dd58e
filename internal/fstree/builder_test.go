package fstree

import (
	"errors"
	"math"
	"testing"

	"dirsize/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuilder_Sample verifies the shape of the canonical tree.
func TestBuilder_Sample(t *testing.T) {
	tree := buildTree(t, sampleCommands())

	assert.Equal(t, 4, tree.Len())
	root := tree.Node(tree.Root())
	assert.Equal(t, RootName, root.Name)
	assert.Equal(t, NoParent, root.Parent)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "a", tree.Node(root.Children[0]).Name)
	assert.Equal(t, "d", tree.Node(root.Children[1]).Name)

	e := findByPath(t, tree, "/a/e")
	assert.Equal(t, 2, tree.Depth(e))
	assert.Equal(t, []model.File{{Name: "i", Size: 584}}, tree.Node(e).Files)
}

// TestBuilder_RevisitDoesNotDuplicate verifies cd a, cd .., cd a keeps one child.
func TestBuilder_RevisitDoesNotDuplicate(t *testing.T) {
	tree := buildTree(t, []model.Command{
		model.ChangeDirectory("a"),
		model.ChangeToParent(),
		model.ChangeDirectory("a"),
	})

	root := tree.Node(tree.Root())
	require.Len(t, root.Children, 1)
	assert.Equal(t, "a", tree.Node(root.Children[0]).Name)
	assert.Equal(t, 2, tree.Len())
}

// TestBuilder_SameNameDifferentParents verifies names are only unique per parent.
func TestBuilder_SameNameDifferentParents(t *testing.T) {
	tree := buildTree(t, []model.Command{
		model.ChangeDirectory("x"),
		model.ChangeDirectory("x"),
		model.ChangeToRoot(),
		model.ChangeDirectory("x"),
	})

	assert.Equal(t, 3, tree.Len())
	findByPath(t, tree, "/x/x")
}

// TestBuilder_RelistAppendsFiles verifies listing twice keeps both copies.
func TestBuilder_RelistAppendsFiles(t *testing.T) {
	tree := buildTree(t, []model.Command{
		model.List(),
		model.FileEntry("a", 10),
		model.List(),
		model.FileEntry("a", 10),
	})

	root := tree.Node(tree.Root())
	assert.Len(t, root.Files, 2)
	assert.Equal(t, int64(20), root.OwnSize())
}

// TestBuilder_ParentOfRoot verifies cd .. at the root fails with a NavigationError.
func TestBuilder_ParentOfRoot(t *testing.T) {
	b := NewBuilder()
	err := b.Apply(model.ChangeToParent().At(7))

	var navErr *model.NavigationError
	require.True(t, errors.As(err, &navErr))
	assert.Equal(t, 7, navErr.Line)
	assert.Equal(t, "/", navErr.Path)
	assert.Equal(t, b.Cursor(), NodeID(0), "cursor must stay on the root")
}

// TestBuilder_NegativeSize verifies negative sizes are rejected, not clamped.
func TestBuilder_NegativeSize(t *testing.T) {
	b := NewBuilder()
	err := b.Apply(model.FileEntry("x", -1).At(3))

	var parseErr *model.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 3, parseErr.Line)
}

// TestBuilder_ListedDirs verifies `dir` lines pre-register children only when enabled.
func TestBuilder_ListedDirs(t *testing.T) {
	cmds := []model.Command{
		model.List(),
		model.DirEntry("never-entered"),
		model.DirEntry("entered"),
		model.ChangeDirectory("entered"),
	}

	tree := buildTree(t, cmds)
	root := tree.Node(tree.Root())
	require.Len(t, root.Children, 2)
	assert.Equal(t, "never-entered", tree.Node(root.Children[0]).Name)
	assert.Equal(t, "entered", tree.Node(root.Children[1]).Name)

	lazy := buildTree(t, cmds, WithListedDirs(false))
	root = lazy.Node(lazy.Root())
	require.Len(t, root.Children, 1)
	assert.Equal(t, "entered", lazy.Node(root.Children[0]).Name)
}

// TestBuilder_Frozen verifies no command is accepted after Finish.
func TestBuilder_Frozen(t *testing.T) {
	b := NewBuilder()
	_, err := b.Finish()
	require.NoError(t, err)

	assert.ErrorIs(t, b.Apply(model.List()), ErrFrozen)
	_, err = b.Finish()
	assert.ErrorIs(t, err, ErrFrozen)
}

// TestBuilder_UnknownKind verifies the switch rejects unknown variants.
func TestBuilder_UnknownKind(t *testing.T) {
	b := NewBuilder()
	assert.Error(t, b.Apply(model.Command{Kind: model.CommandKind(99)}))
}

// TestTree_Path verifies paths are rebuilt from parent links.
func TestTree_Path(t *testing.T) {
	tree := buildTree(t, sampleCommands())

	assert.Equal(t, "/", tree.Path(tree.Root()))
	assert.Equal(t, "/a/e", tree.Path(findByPath(t, tree, "/a/e")))
	assert.Equal(t, "/d", tree.Path(findByPath(t, tree, "/d")))
}

// TestTree_WalkPreOrder verifies parents come before children, siblings in arrival order.
func TestTree_WalkPreOrder(t *testing.T) {
	tree := buildTree(t, sampleCommands())

	var paths []string
	var depths []int
	tree.Walk(func(id NodeID, depth int) bool {
		paths = append(paths, tree.Path(id))
		depths = append(depths, depth)
		return true
	})
	assert.Equal(t, []string{"/", "/a", "/a/e", "/d"}, paths)
	assert.Equal(t, []int{0, 1, 2, 1}, depths)
}

// TestBuilder_TotalOverflow verifies a trace whose sizes no longer fit in int64 is rejected.
func TestBuilder_TotalOverflow(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Apply(model.FileEntry("a", math.MaxInt64).At(3)))
	err := b.Apply(model.FileEntry("b", 1).At(4))

	var parseErr *model.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 4, parseErr.Line)
	assert.Equal(t, "total size exceeds the int64 range", parseErr.Reason)

	tree, err := b.Finish()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), ComputeAll(tree).Size(tree.Root()))
}
