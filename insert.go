package zoomtree

import "math"

// Insertion engine: recursive partitioning of a sorted entry queue across
// the tier ladder. A node dispatches on its own resolution versus the
// resolution implied by the target range:
//
//  1. resolution sufficient: this node *is* the summary granularity
//     requested; install a summary directly or confirm the window empty,
//  2. reverse depth > 0: fan out over child-tier windows,
//  3. reverse depth 0: fan out over leaf cells keyed by entry starts.
//
// The queue and the continuation list in props are shared across the whole
// descent; every node consumes what belongs to its window.

// insertNode inserts into the subtree rooted at n. rng must be pre-clipped
// to n's window and non-empty; data must be sorted and pre-filtered to
// rng. Returns whether n is still worth keeping in its parent's bucket
// array (false means: replace me with a sentinel).
func (t *Tree[S]) insertNode(n *node[S], data *EntryQueue, rng Range, props *InsertProps) (bool, error) {
	assert(data != nil, "insertNode called without data queue")
	assert(!rng.IsEmpty(), "insertNode called with empty target range")
	n.stamp = t.generation
	if resolutionEnough(t.resolutionAt(n.revDepth), rng.resolutionOrFinest()) {
		// summary granularity: handles its own refresh
		if err := t.insertSummary(n, data, rng, props); err != nil {
			return false, err
		}
		return n.restructure(), nil
	}
	var err error
	if n.revDepth > 0 {
		err = t.insertBranches(n, data, rng, props)
	} else {
		err = t.insertCells(n, data, rng, props)
	}
	if err != nil {
		return false, err
	}
	t.refreshSummary(n, nil)
	return n.restructure(), nil
}

// insertSummary handles a node whose own resolution already satisfies the
// request: the matching entry, if any, carries this window's precomputed
// aggregate. Without one, the window becomes a confirmed-empty summary,
// permitted only if no queued entry overlaps it, since the insertion
// contract requires all overlapping data to be in the queue or already
// folded into the continuation list.
func (t *Tree[S]) insertSummary(n *node[S], data *EntryQueue, rng Range, props *InsertProps) error {
	// Upstream misalignment can leave entries behind the cursor; drop them.
	for !data.Empty() && data.Front().Start < n.start() {
		e := data.Pop()
		T().Debugf("zoomtree: dropping desynced entry [%d,%d) before window %d", e.Start, e.End, n.start())
	}
	if !data.Empty() {
		e := data.Front()
		if e.Start == n.start() && e.End == n.end() {
			data.Pop()
			t.refreshSummary(n, &e)
			if props.Callback != nil {
				props.Callback(e)
			}
			return nil
		}
		if e.Start < n.end() {
			T().Errorf("zoomtree: entry [%d,%d) overlaps window [%d,%d) confirmed empty",
				e.Start, e.End, n.start(), n.end())
			return ErrDataConflict
		}
	}
	n.keys = []int64{n.start(), n.end()}
	n.values = []bucket[S]{{kind: emptyBucket}}
	t.refreshSummary(n, nil)
	return nil
}

// insertBranches fans the target range out over child-tier windows.
func (t *Tree[S]) insertBranches(n *node[S], data *EntryQueue, rng Range, props *InsertProps) error {
	childRes := t.resolutionAt(n.revDepth - 1)
	for rng.Start < rng.End {
		winStart := fitToBin(rng.Start, childRes, roundDown)
		winEnd := min(n.end(), fitToBin(rng.End, childRes, roundUp), winStart+childRes)
		i := t.carveBucket(n, winStart, winEnd)

		// The window needs a live child if data or carried entries reach
		// into it, or if the request covers it only partially. Partial
		// coverage must be recorded one tier finer, the rest of the window
		// stays Unknown.
		live := (!data.Empty() && data.Front().Start < winEnd) ||
			contListExtendsPast(props.ContList, winStart) ||
			winStart < rng.Start || winEnd > rng.End
		collapse := !live
		if live {
			if n.values[i].kind != branchBucket {
				child := newNode[S](n.revDepth-1, winStart, winEnd)
				child.values[0] = n.values[i] // keep KnownEmpty knowledge
				child.stamp = t.generation
				n.values[i] = bucket[S]{kind: branchBucket, child: child}
			}
			childRng := Range{
				Chr:        rng.Chr,
				Start:      max(winStart, rng.Start),
				End:        min(winEnd, rng.End),
				Resolution: rng.Resolution,
			}
			valid, err := t.insertNode(n.values[i].child, data, childRng, props)
			if err != nil {
				return err
			}
			collapse = !valid
		}
		if collapse {
			n.values[i] = bucket[S]{kind: emptyBucket}
			if n.mergeBucket(i, false, false) {
				i--
			}
		}
		rng.Start = winEnd
	}
	return nil
}

// insertCells fans the target range out over leaf cells at reverse depth
// 0. Cell boundaries are the entry start positions: each cell holds the
// entries starting at its first coordinate plus carry-over from earlier
// cells. Gaps between entries become KnownEmpty (or carry-over-only
// leaves while spanning entries are still live).
func (t *Tree[S]) insertCells(n *node[S], data *EntryQueue, rng Range, props *InsertProps) error {
	factory := props.LeafFactory
	if factory == nil {
		factory = t.cfg.LeafFactory
	}
	for rng.Start < rng.End {
		cellStart := rng.Start
		// Entries starting before this cell were consumed by earlier
		// cells of this walk or belong to the caller's carry-over; fold
		// the ones still extending into later coordinates.
		for !data.Empty() && data.Front().Start < cellStart {
			e := data.Pop()
			if e.End > cellStart {
				props.ContList = append(props.ContList, e)
			}
		}
		props.ContList = pruneContList(props.ContList, cellStart)

		cellEnd := rng.End
		if next, ok := data.NextStartAfter(cellStart); ok && next < cellEnd {
			cellEnd = next
		}
		i := t.carveBucket(n, cellStart, cellEnd)
		// Splitting a leaf bucket duplicates the payload; a duplicate left
		// beyond the walk keeps a wrong anchor and must be re-based.
		if tail := n.values[i+1:]; len(tail) > 0 && tail[0].kind == leafBucket && tail[0].leaf.Start() != cellEnd {
			n.values[i+1] = t.rebasedCell(tail[0].leaf, cellEnd, factory)
		}

		startsHere := !data.Empty() && data.Front().Start == cellStart
		if startsHere || len(props.ContList) > 0 {
			if n.values[i].kind != leafBucket || n.values[i].leaf.Start() != cellStart {
				n.values[i] = bucket[S]{kind: leafBucket, leaf: factory(cellStart, nil)}
			}
			cellRng := Range{Chr: rng.Chr, Start: cellStart, End: cellEnd, Resolution: rng.Resolution}
			if err := n.values[i].leaf.Insert(data, cellRng, props); err != nil {
				return err
			}
		} else {
			n.values[i] = bucket[S]{kind: emptyBucket}
			if n.mergeBucket(i, false, false) {
				i--
			}
		}
		rng.Start = cellEnd
	}
	return nil
}

// rebasedCell rebuilds a mis-anchored leaf duplicate as a proper cell
// starting at boundary: entries still spanning the boundary become its
// carry-over, everything else was accounted for by earlier cells. Without
// spanning entries the window is simply confirmed empty.
func (t *Tree[S]) rebasedCell(leaf LeafData, boundary int64, factory LeafFactory) bucket[S] {
	var carry []Interval
	leaf.Traverse(Range{Start: boundary, End: math.MaxInt64}, func(e Interval) bool {
		carry = append(carry, e)
		return true
	}, nil, false)
	if len(carry) == 0 {
		return bucket[S]{kind: emptyBucket}
	}
	return bucket[S]{kind: leafBucket, leaf: factory(boundary, carry)}
}

// carveBucket splits surrounding buckets of n so that a bucket exactly
// matching [winStart, winEnd) exists, and returns its index.
func (t *Tree[S]) carveBucket(n *node[S], winStart, winEnd int64) int {
	i := n.findBucket(winStart)
	assert(i >= 0, "insertion window outside node range")
	if n.keys[i] < winStart {
		n.splitBucketAt(i, winStart)
		i++
	}
	if n.keys[i+1] > winEnd {
		n.splitBucketAt(i, winEnd)
	}
	return i
}

func contListExtendsPast(contList []Interval, coord int64) bool {
	for _, e := range contList {
		if e.End > coord {
			return true
		}
	}
	return false
}

// pruneContList drops carried entries that no longer extend past coord.
func pruneContList(contList []Interval, coord int64) []Interval {
	kept := contList[:0]
	for _, e := range contList {
		if e.End > coord {
			kept = append(kept, e)
		}
	}
	return kept
}
