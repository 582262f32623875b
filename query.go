package zoomtree

// Cache queries answer "which parts of this window would a renderer still
// have to fetch?". A window counts as cached when a summary at sufficient
// resolution, a leaf, or a KnownEmpty sentinel covers it; Unknown regions
// and summaries that are too coarse produce fetch requests.

// prepareQuery validates and clips the query range and derives the ladder
// resolution a caller should fetch. The effective resolution, written back
// into the range's tag, is the requested one divided by the buffering
// ratio: deliberately finer than needed, so that moderate zoom-ins hit the
// cache.
func (t *Tree[S]) prepareQuery(rng Range, bufferingRatio float64) (Range, int64, error) {
	if rng.IsEmpty() {
		return Range{}, 0, ErrNoRange
	}
	if rng.Chr != "" && rng.Chr != t.cfg.Chr {
		return Range{}, 0, ErrIllegalArguments
	}
	if bufferingRatio < 1 {
		T().Errorf("zoomtree: buffering ratio %g is below 1, corrected to 1", bufferingRatio)
		bufferingRatio = 1
	}
	rng.Chr = t.cfg.Chr
	rng = rng.Clip(t.Range())
	effective := int64(float64(rng.resolutionOrFinest()) / bufferingRatio)
	if effective < 1 {
		effective = 1
	}
	rng.Resolution = effective
	return rng, t.ClosestResolution(effective), nil
}

// gapList accumulates uncached sub-ranges in coordinate order, extending
// the previous entry in place when the next gap is contiguous (or
// overlapping, after outward grid alignment) and tagged with the same
// fetch resolution.
type gapList struct {
	chr    string
	ranges []Range
}

func (g *gapList) push(s, e, res int64) {
	if s >= e {
		return
	}
	if k := len(g.ranges); k > 0 {
		last := &g.ranges[k-1]
		if last.End >= s && last.Resolution == res {
			if e > last.End {
				last.End = e
			}
			return
		}
	}
	g.ranges = append(g.ranges, Range{Chr: g.chr, Start: s, End: e, Resolution: res})
}

// collectGaps appends the uncached sub-ranges of rng below n to acc. Gaps
// are aligned outward to the fetch-resolution grid, clipped to rng.
func (t *Tree[S]) collectGaps(n *node[S], rng Range, fetchRes int64, acc *gapList) {
	if n.hasSummary && resolutionEnough(t.resolutionAt(n.revDepth), rng.Resolution) {
		return
	}
	for i := 0; i < len(n.values); i++ {
		if n.keys[i] >= rng.End {
			break
		}
		if n.keys[i+1] <= rng.Start {
			continue
		}
		if b := n.values[i]; b.kind == branchBucket &&
			!resolutionEnough(t.resolutionAt(b.child.revDepth), rng.Resolution) {
			// a summary at the child's tier would be too coarse anyway,
			// only finer data further down can satisfy the request
			t.collectGaps(b.child, rng, fetchRes, acc)
			continue
		}
		if n.childHasData(i) {
			continue
		}
		ovStart := max(n.keys[i], rng.Start)
		ovEnd := min(n.keys[i+1], rng.End)
		s := max(fitToBin(ovStart, fetchRes, roundDown), rng.Start)
		e := min(fitToBin(ovEnd, fetchRes, roundUp), rng.End)
		acc.push(s, e, fetchRes)
	}
}

// findGap is the boolean twin of collectGaps: it reports the first gap
// without building a list.
func (t *Tree[S]) findGap(n *node[S], rng Range) bool {
	if n.hasSummary && resolutionEnough(t.resolutionAt(n.revDepth), rng.Resolution) {
		return false
	}
	for i := 0; i < len(n.values); i++ {
		if n.keys[i] >= rng.End {
			break
		}
		if n.keys[i+1] <= rng.Start {
			continue
		}
		if b := n.values[i]; b.kind == branchBucket &&
			!resolutionEnough(t.resolutionAt(b.child.revDepth), rng.Resolution) {
			if t.findGap(b.child, rng) {
				return true
			}
			continue
		}
		if !n.childHasData(i) {
			return true
		}
	}
	return false
}
