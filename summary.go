package zoomtree

// Summary lifecycle per node. The cached aggregate is a derived value:
// it is recomputed wholesale on each structural change, never patched
// incrementally.

// refreshSummary installs or recomputes the cached aggregate of n.
//
// When a precomputed summary interval is supplied (bulk loads at summary
// granularity deliver one per window), its embedded aggregate replaces any
// stale value directly. A payload of the wrong runtime shape is a
// recoverable anomaly: it is discarded and a full recomputation attempted
// instead.
//
// Recomputation folds all buckets left to right: KnownEmpty contributes
// the neutral element, a present child its cached aggregate, a present
// leaf its raw entries. An Unknown bucket, or a child/leaf without data of
// its own, aborts the recomputation and leaves the summary absent; a
// previously cached value is discarded, never left half-updated.
func (t *Tree[S]) refreshSummary(n *node[S], precomputed *Interval) {
	if precomputed != nil {
		if s, ok := t.cfg.Summarizer.ExtractFrom(*precomputed); ok {
			t.installSummary(n, s, true)
			return
		}
		T().Infof("zoomtree: precomputed summary for [%d,%d) unusable, recomputing", n.start(), n.end())
	}
	acc := t.cfg.Summarizer.Zero()
	for i := range n.values {
		b := n.values[i]
		switch b.kind {
		case emptyBucket:
			// neutral element
		case branchBucket:
			if !b.child.hasSummary {
				t.dropSummary(n)
				return
			}
			acc = t.cfg.Summarizer.MergeChild(acc, b.child.summary)
		case leafBucket:
			// A leaf only exists where an insertion determined the window, so
			// it never aborts; carry-over-only leaves contribute nothing here
			// because spanning entries are folded at their start cell.
			b.leaf.ForEachEntry(func(e Interval) bool {
				acc = t.cfg.Summarizer.MergeEntry(acc, e)
				return true
			})
		default: // unknownBucket
			t.dropSummary(n)
			return
		}
	}
	t.installSummary(n, acc, false)
}

func (t *Tree[S]) installSummary(n *node[S], s S, direct bool) {
	n.summary = s
	n.hasSummary = true
	n.direct = direct
	w := t.cfg.Summarizer.AttachTo(s, Interval{
		Range: Range{
			Chr:        t.cfg.Chr,
			Start:      n.start(),
			End:        n.end(),
			Resolution: t.resolutionAt(n.revDepth),
		},
	})
	n.wrapper = &w
}

func (t *Tree[S]) dropSummary(n *node[S]) {
	var zero S
	n.summary = zero
	n.hasSummary = false
	n.direct = false
	n.wrapper = nil
}

// childHasData reports whether bucket i of n holds determined data:
// KnownEmpty counts as data ("confirmed nothing"), Unknown does not. A
// leaf counts through its own HasData, so a leaf payload drained by some
// external means reads as undetermined again.
func (n *node[S]) childHasData(i int) bool {
	switch b := n.values[i]; b.kind {
	case emptyBucket:
		return true
	case leafBucket:
		return b.leaf.HasData()
	case branchBucket:
		return b.child.hasSummary
	default:
		return false
	}
}
