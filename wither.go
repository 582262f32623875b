package zoomtree

// Withering is the eviction half of the cache: subtrees untouched by a
// mutation for more than LifeSpan generations are reset to Unknown, so a
// later cache query reports them as fetchable again. Eviction granularity
// is the branch bucket; leaves live and die with their enclosing node.
//
// Wither mutates the tree and follows the same exclusive-access rules as
// Insert and Remove.

// Wither evicts all stale subtrees and returns the number of evicted
// branch buckets. A no-op unless the configuration enables a LifeSpan.
//
// The root itself is never evicted: every mutation enters through it, so
// its stamp always carries the current generation.
func (t *Tree[S]) Wither() int {
	if t.cfg.LifeSpan <= 0 || t.generation < uint64(t.cfg.LifeSpan) {
		return 0
	}
	return t.witherNode(t.root, t.generation-uint64(t.cfg.LifeSpan))
}

func (t *Tree[S]) witherNode(n *node[S], horizon uint64) int {
	evicted := 0
	for i := 0; i < len(n.values); i++ {
		b := n.values[i]
		if b.kind != branchBucket {
			continue
		}
		if b.child.stamp >= horizon {
			evicted += t.witherNode(b.child, horizon)
			continue
		}
		n.values[i] = bucket[S]{} // Unknown
		evicted++
		if n.mergeBucket(i, false, false) {
			i--
		}
		n.mergeBucket(i, true, false)
	}
	if evicted > 0 {
		// evicted or partially evicted children invalidate the aggregate
		t.refreshSummary(n, nil)
	}
	return evicted
}
