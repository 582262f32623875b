package zoomtree

// Removal engine. Removal is the inverse of a confirmed insertion: the
// target value no longer exists in the underlying data set, so vacated
// buckets become KnownEmpty (the fill kind), not Unknown, and coalesce
// with same-kind neighbors. Summary maintenance is deliberately lazy:
// only nodes whose bucket array changed directly recompute their
// aggregate, ancestors reached purely by recursion do not.

// removeNode removes target from the subtree rooted at n. found reports
// whether anything matched; valid is the keep-me verdict for the parent
// (false means: replace my bucket with the fill sentinel).
func (t *Tree[S]) removeNode(n *node[S], target Interval, exactMatch bool, fill bucketKind, props *RemoveProps) (found, valid bool) {
	n.stamp = t.generation
	if target.Start == n.start() && target.End == n.end() &&
		(!exactMatch || (n.wrapper != nil && payloadEqual(n.wrapper.Data, target.Data))) {
		// whole-window match: wipe the node's contents wholesale
		if props != nil && props.Callback != nil {
			w := Interval{Range: Range{Chr: t.cfg.Chr, Start: n.start(), End: n.end()}}
			if n.wrapper != nil {
				w = *n.wrapper
			}
			props.Callback(w)
		}
		n.keys = []int64{target.Start, target.End}
		n.values = []bucket[S]{{kind: fill}}
		t.dropSummary(n)
		if fill == emptyBucket {
			// the window is still determined, just holds nothing anymore
			t.refreshSummary(n, nil)
		}
		return true, false
	}
	changed := false
	for i := 0; i < len(n.values); i++ {
		if n.keys[i] >= target.End {
			break
		}
		if n.keys[i+1] <= target.Start {
			continue
		}
		switch b := n.values[i]; b.kind {
		case branchBucket:
			f, v := t.removeNode(b.child, target, exactMatch, fill, props)
			found = found || f
			if !v {
				n.values[i] = bucket[S]{kind: fill}
				changed = true
				if n.mergeBucket(i, false, false) {
					i--
				}
				n.mergeBucket(i, true, false)
			}
		case leafBucket:
			// visits every overlapping cell, so carry-over copies of a
			// spanning entry vanish together with the entry itself
			if b.leaf.Remove(target, exactMatch, props) {
				found = true
				changed = true
				if !b.leaf.HasData() {
					n.values[i] = bucket[S]{kind: fill}
					if n.mergeBucket(i, false, false) {
						i--
					}
					n.mergeBucket(i, true, false)
				}
			}
		}
	}
	if changed {
		t.refreshSummary(n, nil)
	}
	return found, n.restructure()
}
