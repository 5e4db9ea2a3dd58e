// Package fstree holds the directory tree rebuilt from a shell trace.
//
// All nodes live in a single Arena and refer to each other by NodeID, so a
// child's link to its parent is a plain index rather than an owning pointer.
package fstree

import (
	"strings"

	"dirsize/internal/model"
)

// NodeID is a stable index into an Arena.
type NodeID int

// NoParent is the Parent of the root node.
const NoParent NodeID = -1

// Node is one directory.
type Node struct {
	Name     string
	Files    []model.File
	Children []NodeID
	Parent   NodeID
}

// OwnSize is the sum of the files listed directly in n.
func (n *Node) OwnSize() int64 {
	var sum int64
	for _, f := range n.Files {
		sum += f.Size
	}
	return sum
}

// Arena owns every node. Nodes are never freed individually.
type Arena struct {
	nodes []Node
}

func (a *Arena) add(name string, parent NodeID) NodeID {
	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, Node{Name: name, Parent: parent})
	if parent != NoParent {
		p := &a.nodes[parent]
		p.Children = append(p.Children, id)
	}
	return id
}

// Len returns the number of nodes.
func (a *Arena) Len() int {
	if a == nil {
		return 0
	}
	return len(a.nodes)
}

// Tree is a frozen arena plus its root.
type Tree struct {
	arena *Arena
	root  NodeID
}

// Root returns the root identity.
func (t *Tree) Root() NodeID { return t.root }

// Len returns the number of directories, 0 for a nil tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return t.arena.Len()
}

// Node returns the node for id. The returned value must not be modified.
func (t *Tree) Node(id NodeID) *Node {
	return &t.arena.nodes[id]
}

// Depth returns the number of parent hops from id to the root.
func (t *Tree) Depth(id NodeID) int {
	depth := 0
	for p := t.arena.nodes[id].Parent; p != NoParent; p = t.arena.nodes[p].Parent {
		depth++
	}
	return depth
}

// Path returns the absolute path of id, "/" for the root.
func (t *Tree) Path(id NodeID) string {
	var parts []string
	for cur := id; cur != t.root && cur != NoParent; cur = t.arena.nodes[cur].Parent {
		parts = append(parts, t.arena.nodes[cur].Name)
	}
	if len(parts) == 0 {
		return "/"
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return "/" + strings.Join(parts, "/")
}

// Walk visits every node in pre-order, children in arrival order.
// It stops early when fn returns false.
func (t *Tree) Walk(fn func(id NodeID, depth int) bool) {
	if t.Len() == 0 {
		return
	}
	type frame struct {
		id    NodeID
		depth int
	}
	stack := []frame{{t.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(f.id, f.depth) {
			return
		}
		children := t.arena.nodes[f.id].Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{children[i], f.depth + 1})
		}
	}
}
