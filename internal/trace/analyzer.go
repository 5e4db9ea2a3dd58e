package trace

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"dirsize/internal/fstree"
	"dirsize/internal/model"
)

const (
	// maxRunners caps the alternative deletion candidates kept in a result.
	maxRunners = 3
	// maxDirNotes caps the per-directory diagnostics kept in a result.
	maxDirNotes = 20
)

// Options are the query inputs of an analysis.
type Options struct {
	Threshold    int64 // TotalAtMost threshold
	Capacity     int64 // Total disk capacity
	RequiredFree int64 // Free space that must be available after deletion
	ListedDirs   bool  // Register `dir <name>` entries that are never entered
	Shell        Shell // Prompt; nil to detect from the trace
}

// DefaultOptions mirror the classic puzzle numbers.
func DefaultOptions() Options {
	return Options{
		Threshold:    100000,
		Capacity:     70000000,
		RequiredFree: 30000000,
		ListedDirs:   true,
	}
}

// Analyzer replays commands into a tree and answers the size queries.
type Analyzer struct {
	opts   Options
	logger *slog.Logger
}

// NewAnalyzer returns an analyzer. A nil logger uses slog.Default().
func NewAnalyzer(opts Options, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{opts: opts, logger: logger}
}

// AnalyzeFile analyzes the trace at path ("-" for stdin). The trace lines
// are returned even on failure so errors can be shown in context.
func (a *Analyzer) AnalyzeFile(path string) (model.AnalysisResult, []string, error) {
	r, err := OpenTrace(path)
	if err != nil {
		return model.AnalysisResult{}, nil, fmt.Errorf("%w: %w", ErrReadTrace, err)
	}
	defer r.Close()
	return a.AnalyzeReader(r)
}

// AnalyzeReader reads the whole trace from r and analyzes it, returning the
// lines read alongside the result.
func (a *Analyzer) AnalyzeReader(r io.Reader) (model.AnalysisResult, []string, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return model.AnalysisResult{}, lines, fmt.Errorf("%w: %w", ErrReadTrace, err)
	}
	result, err := a.AnalyzeLines(lines)
	return result, lines, err
}

// AnalyzeLines parses an in-memory trace and analyzes it.
func (a *Analyzer) AnalyzeLines(lines []string) (model.AnalysisResult, error) {
	parser := NewParser(a.opts.Shell)
	cmds, err := parser.ParseLines(lines)
	if err != nil {
		return model.AnalysisResult{}, err
	}
	if s := parser.Shell(); s != nil {
		a.logger.Debug("trace parsed",
			slog.String("prompt", s.Name()),
			slog.Int("lines", len(lines)),
			slog.Int("commands", len(cmds)))
	}
	return a.Analyze(cmds)
}

// Analyze builds the tree from cmds, aggregates it and runs both queries.
func (a *Analyzer) Analyze(cmds []model.Command) (model.AnalysisResult, error) {
	start := time.Now()

	b := fstree.NewBuilder(fstree.WithListedDirs(a.opts.ListedDirs), fstree.WithLogger(a.logger))
	if err := b.ApplyAll(cmds); err != nil {
		return model.AnalysisResult{}, err
	}
	tree, err := b.Finish()
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("finish tree: %w", err)
	}

	sizes := fstree.ComputeAll(tree)
	q := fstree.NewQuery(tree, sizes)

	result := model.AnalysisResult{
		Threshold:    a.opts.Threshold,
		Capacity:     a.opts.Capacity,
		RequiredFree: a.opts.RequiredFree,
		TotalAtMost:  q.TotalAtMost(a.opts.Threshold),
		Used:         q.Used(),
		Unused:       a.opts.Capacity - q.Used(),
		Deficit:      q.Deficit(a.opts.Capacity, a.opts.RequiredFree),
	}
	if n := len(cmds); n > 0 {
		result.Lines = cmds[n-1].Line
	}

	cand, err := q.MinToDelete(a.opts.Capacity, a.opts.RequiredFree)
	if err != nil {
		return model.AnalysisResult{}, err
	}
	result.MinToDelete = cand.Size
	result.Candidate = model.Candidate{ID: int(cand.ID), Path: tree.Path(cand.ID), Size: cand.Size}
	for _, c := range q.Candidates(result.Deficit) {
		if c.ID == cand.ID {
			continue
		}
		if len(result.Runners) == maxRunners {
			break
		}
		result.Runners = append(result.Runners, model.Candidate{ID: int(c.ID), Path: tree.Path(c.ID), Size: c.Size})
	}

	result.Directories = summarize(tree, sizes, a.opts.Threshold, cand.ID)
	result.Diagnostics = diagnose(result)

	a.logger.Debug("analysis complete",
		slog.Int("directories", len(result.Directories)),
		slog.Int64("used", result.Used),
		slog.Int64("total_at_most", result.TotalAtMost),
		slog.Int64("min_to_delete", result.MinToDelete),
		slog.Duration("duration", time.Since(start)))

	return result, nil
}

// summarize flattens the tree in pre-order. Paths are not stored; each
// summary points at its parent's position instead.
func summarize(tree *fstree.Tree, sizes *fstree.SizeTable, threshold int64, candidate fstree.NodeID) []model.DirSummary {
	dirs := make([]model.DirSummary, 0, tree.Len())
	pos := make([]int, tree.Len())
	tree.Walk(func(id fstree.NodeID, depth int) bool {
		node := tree.Node(id)
		size := sizes.Size(id)
		parent := -1
		if node.Parent != fstree.NoParent {
			parent = pos[node.Parent]
		}
		pos[id] = len(dirs)
		dirs = append(dirs, model.DirSummary{
			ID:         int(id),
			Parent:     parent,
			Name:       node.Name,
			Depth:      depth,
			Size:       size,
			OwnSize:    node.OwnSize(),
			FileCount:  sizes.FileCount(id),
			ChildCount: len(node.Children),
			Files:      append([]model.File(nil), node.Files...),
			AtMost:     size <= threshold,
			Candidate:  id == candidate,
		})
		return true
	})
	return dirs
}

func diagnose(result model.AnalysisResult) []string {
	var diags []string

	if result.Deficit == 0 {
		diags = append(diags, fmt.Sprintf(
			"%d bytes are already free, which satisfies the %d byte requirement; nothing needs deleting",
			result.Unused, result.RequiredFree))
	}
	if result.Unused < 0 {
		diags = append(diags, fmt.Sprintf(
			"used space %d exceeds capacity %d", result.Used, result.Capacity))
	}

	notes, hidden := 0, 0
	note := func(i int, format string, args ...any) {
		if notes == maxDirNotes {
			hidden++
			return
		}
		notes++
		diags = append(diags, result.DirPath(i)+" "+fmt.Sprintf(format, args...))
	}

	for i, d := range result.Directories {
		seen := make(map[string]int, len(d.Files))
		for _, f := range d.Files {
			seen[f.Name]++
		}
		for _, f := range d.Files {
			if n := seen[f.Name]; n > 1 {
				note(i, "lists %q %d times; was the directory listed more than once?", f.Name, n)
				seen[f.Name] = 0
			}
		}
		if d.ChildCount == 0 && len(d.Files) == 0 && d.Parent >= 0 {
			note(i, "is empty or was never listed")
		}
	}
	if hidden > 0 {
		diags = append(diags, fmt.Sprintf("%d more directory notes not shown", hidden))
	}
	return diags
}
