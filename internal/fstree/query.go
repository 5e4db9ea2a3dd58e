package fstree

import (
	"sort"

	"dirsize/internal/model"
)

// Query answers threshold questions over a frozen tree and its sizes.
type Query struct {
	tree  *Tree
	sizes *SizeTable
}

// NewQuery pairs a tree with the table computed from it.
func NewQuery(t *Tree, sizes *SizeTable) *Query {
	return &Query{tree: t, sizes: sizes}
}

// Used is the aggregate size of the root, 0 for an empty tree.
func (q *Query) Used() int64 {
	if q.sizes.Len() == 0 {
		return 0
	}
	return q.sizes.Size(q.tree.Root())
}

// TotalAtMost sums the sizes of all directories, root included, whose
// aggregate size is <= threshold.
func (q *Query) TotalAtMost(threshold int64) int64 {
	var total int64
	for i := 0; i < q.sizes.Len(); i++ {
		if s := q.sizes.Size(NodeID(i)); s <= threshold {
			total += s
		}
	}
	return total
}

// Deficit is the space that still has to be reclaimed so that at least
// minFree of capacity is unused: max(0, minFree - (capacity - used)).
func (q *Query) Deficit(capacity, minFree int64) int64 {
	deficit := minFree - (capacity - q.Used())
	if deficit < 0 {
		return 0
	}
	return deficit
}

// Candidate is a directory that frees at least the deficit.
type Candidate struct {
	ID   NodeID
	Size int64
}

// MinToDelete returns the smallest directory whose size covers the deficit.
// Ties go to the directory created first.
func (q *Query) MinToDelete(capacity, minFree int64) (Candidate, error) {
	deficit := q.Deficit(capacity, minFree)

	best := Candidate{ID: NoParent}
	for i := 0; i < q.sizes.Len(); i++ {
		s := q.sizes.Size(NodeID(i))
		if s < deficit {
			continue
		}
		if best.ID == NoParent || s < best.Size {
			best = Candidate{ID: NodeID(i), Size: s}
		}
	}
	if best.ID == NoParent {
		return Candidate{}, &model.NoCandidateError{Deficit: deficit, RootSize: q.Used()}
	}
	return best, nil
}

// Candidates lists every directory of at least deficit bytes, smallest first.
func (q *Query) Candidates(deficit int64) []Candidate {
	var out []Candidate
	for i := 0; i < q.sizes.Len(); i++ {
		if s := q.sizes.Size(NodeID(i)); s >= deficit {
			out = append(out, Candidate{ID: NodeID(i), Size: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Size < out[j].Size })
	return out
}
