package fstree

// SizeTable maps every node to its aggregate size. Read-only once computed.
type SizeTable struct {
	sizes []int64
	files []int
}

// Size returns the aggregate size of id.
func (s *SizeTable) Size(id NodeID) int64 { return s.sizes[id] }

// FileCount returns the number of files in the subtree of id.
func (s *SizeTable) FileCount(id NodeID) int { return s.files[id] }

// Len returns the number of entries.
func (s *SizeTable) Len() int { return len(s.sizes) }

// ComputeAll sums every subtree in one post-order pass. Each node is finished
// exactly once, after all of its children, using an explicit stack so that
// arbitrarily deep traces do not grow the goroutine stack.
func ComputeAll(t *Tree) *SizeTable {
	n := t.Len()
	table := &SizeTable{
		sizes: make([]int64, n),
		files: make([]int, n),
	}
	if n == 0 {
		return table
	}

	type frame struct {
		id       NodeID
		expanded bool
	}
	stack := []frame{{id: t.root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		node := &t.arena.nodes[top.id]

		if !top.expanded {
			top.expanded = true
			for _, c := range node.Children {
				stack = append(stack, frame{id: c})
			}
			continue
		}

		id := top.id
		stack = stack[:len(stack)-1]

		size := node.OwnSize()
		files := len(node.Files)
		for _, c := range node.Children {
			size += table.sizes[c]
			files += table.files[c]
		}
		table.sizes[id] = size
		table.files[id] = files
	}
	return table
}
