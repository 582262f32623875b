package zoomtree

// Summarizer defines how a pluggable aggregate type is computed from raw
// entries and combined up the resolution ladder.
//
// For summaries s, t, u, MergeChild must be associative with Zero as the
// neutral element, so that a node's aggregate does not depend on bucket
// grouping. MergeEntry folds a single raw entry into an accumulator;
// ExtractFrom recovers an aggregate embedded in a bulk-loaded summary
// interval; AttachTo embeds an aggregate into an interval for emission
// during short-circuited traversal.
type Summarizer[S any] interface {
	Zero() S
	ExtractFrom(entry Interval) (S, bool)
	MergeChild(acc S, child S) S
	MergeEntry(acc S, entry Interval) S
	AttachTo(summary S, iv Interval) Interval
}

// LeafData is the finest-tier payload of a tree: raw intervals anchored at
// one start coordinate, plus a carry-over list of entries that started in
// an earlier cell but extend into this one. Package cell provides the
// standard implementation.
//
// Resolution must return 1: leaves hold unbinned data by definition.
type LeafData interface {
	Insert(data *EntryQueue, rng Range, props *InsertProps) error
	Remove(target Interval, exactMatch bool, props *RemoveProps) bool
	Traverse(rng Range, onEntry, filter func(Interval) bool, breakOnFalse bool) bool
	ForEachEntry(fn func(Interval) bool) bool
	HasData() bool
	Start() int64
	Resolution() int64
}

// LeafFactory creates a leaf payload for a cell starting at the given
// coordinate, pre-seeded with carry-over entries.
type LeafFactory func(start int64, carryOver []Interval) LeafData

// Config configures a zoomtree. Both scaling factors are fixed for the
// tree's lifetime.
type Config[S any] struct {
	// Chr names the chromosome (linear coordinate space) this tree covers.
	Chr string
	// Start and End delimit the covered coordinate window [Start, End).
	Start, End int64
	// ScalingFactor is the branching ratio between adjacent resolution
	// tiers; must be at least 2.
	ScalingFactor int64
	// LeafScalingFactor is the coordinate width of the finest non-leaf
	// tier; must be at least 1.
	LeafScalingFactor int64
	// Summarizer aggregates data up the resolution ladder.
	Summarizer Summarizer[S]
	// LeafFactory creates leaf payloads; cell.Factory is the standard one.
	LeafFactory LeafFactory
	// LifeSpan enables withering when positive: cached subtrees untouched
	// for more than LifeSpan mutation generations become eligible for
	// eviction by Wither.
	LifeSpan int
}

func (cfg Config[S]) validate() error {
	if cfg.Chr == "" {
		return ErrInvalidConfig
	}
	if cfg.Start < 0 || cfg.End <= cfg.Start {
		return ErrInvalidConfig
	}
	// A ratio of 1 would make every tier the same width and recursion
	// depth unbounded.
	if cfg.ScalingFactor < 2 {
		return ErrInvalidConfig
	}
	if cfg.LeafScalingFactor < 1 {
		return ErrInvalidConfig
	}
	if cfg.Summarizer == nil || cfg.LeafFactory == nil {
		return ErrInvalidConfig
	}
	return nil
}

// InsertProps is the shared mutable context threaded through a recursive
// insertion. It is never stored on a node.
type InsertProps struct {
	// ContList collects entries that span across cell boundaries and must
	// be carried into subsequent cells as carry-over.
	ContList []Interval
	// Callback, if set, is invoked once for every entry consumed from the
	// data queue.
	Callback func(Interval)
	// LeafFactory optionally overrides the tree's configured factory for
	// this insertion.
	LeafFactory LeafFactory
}

// RemoveProps is the optional context for removal operations.
type RemoveProps struct {
	// Callback, if set, is invoked with every value removed from the tree.
	Callback func(Interval)
}
