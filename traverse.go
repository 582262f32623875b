package zoomtree

// Traversal engine: a depth-first walk over cached values, short-circuited
// wherever a node's own resolution already satisfies the request. The
// short-circuit is what bounds rendering cost at coarse zoom levels by the
// number of summary-tier nodes instead of the number of raw entries.

// traverseNode walks the subtree rooted at n. Returns false when the walk
// was stopped early by the entry callback.
func (t *Tree[S]) traverseNode(n *node[S], rng Range, onEntry, filter func(Interval) bool, breakOnFalse bool) bool {
	if rng.Start >= n.end() || rng.End <= n.start() {
		return true
	}
	if n.hasSummary && resolutionEnough(t.resolutionAt(n.revDepth), rng.resolutionOrFinest()) {
		return VisitEntry(*n.wrapper, onEntry, filter, breakOnFalse)
	}
	for i := 0; i < len(n.values); i++ {
		if n.keys[i] >= rng.End {
			break
		}
		if n.keys[i+1] <= rng.Start {
			continue
		}
		switch b := n.values[i]; b.kind {
		case branchBucket:
			if !t.traverseNode(b.child, rng, onEntry, filter, breakOnFalse) {
				return false
			}
		case leafBucket:
			if !b.leaf.Traverse(rng, onEntry, filter, breakOnFalse) {
				return false
			}
		}
	}
	return true
}
