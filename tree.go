package zoomtree

/*
BSD 3-Clause License

Copyright (c) 2024, Norbert Pillmayer

Please refer to the License file in the repository root.
*/

// Tree is a multi-resolution summary cache over one chromosome. Create
// trees with New; the zero value is not usable.
//
// One tree instance covers exactly one linear coordinate space. Callers
// coordinating multiple chromosomes hold one tree per chromosome.
type Tree[S any] struct {
	cfg        Config[S]
	ladder     []int64 // tier resolutions, index = reverse depth
	root       *node[S]
	generation uint64 // bumped on every mutation, drives withering
}

// New creates an empty tree with validated configuration.
func New[S any](cfg Config[S]) (*Tree[S], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	t := &Tree[S]{cfg: cfg}
	depth := cfg.tierFor(cfg.End - cfg.Start)
	t.ladder = cfg.buildLadder(depth)
	t.root = t.freshRoot()
	return t, nil
}

func (t *Tree[S]) freshRoot() *node[S] {
	n := newNode[S](len(t.ladder)-1, t.cfg.Start, t.cfg.End)
	n.isRoot = true
	n.stamp = t.generation
	return n
}

// Config returns a copy of the tree configuration.
func (t *Tree[S]) Config() Config[S] {
	return t.cfg
}

// Range returns the coordinate window covered by the tree.
func (t *Tree[S]) Range() Range {
	return Range{Chr: t.cfg.Chr, Start: t.cfg.Start, End: t.cfg.End}
}

// Summary returns the root aggregate, if the whole window is determined.
func (t *Tree[S]) Summary() (S, bool) {
	return t.root.summary, t.root.hasSummary
}

// Insert loads a batch of entries, sorted by start position, into the
// tree and marks the target range as determined at the range's resolution:
// sub-windows of rng not covered by any entry become KnownEmpty. Callers
// must therefore pass *all* data they hold for rng: inserting a partial
// batch confirms the gaps as empty.
//
// Entries may be raw intervals (rng.Resolution ≤ 1) or precomputed
// summary intervals aligned to a ladder tier (rng.Resolution = that
// tier's resolution). An empty batch marks the whole range KnownEmpty.
//
// A failed insert may leave the already-processed part of the range
// modified; there is no rollback.
func (t *Tree[S]) Insert(entries []Interval, rng Range, props *InsertProps) error {
	if rng.IsEmpty() {
		return ErrNoRange
	}
	if rng.Chr != "" && rng.Chr != t.cfg.Chr {
		return ErrIllegalArguments
	}
	rng.Chr = t.cfg.Chr
	rng = rng.Clip(t.Range())
	if rng.IsEmpty() {
		return nil
	}
	relevant, err := filterSorted(entries, rng)
	if err != nil {
		return err
	}
	if props == nil {
		props = &InsertProps{}
	}
	t.generation++
	// The root cannot collapse into a parent, so its keep-me verdict is
	// irrelevant; a collapsed root stays physically in place.
	_, err = t.insertNode(t.root, NewEntryQueue(relevant), rng, props)
	return err
}

// filterSorted keeps the entries overlapping rng and verifies start order.
func filterSorted(entries []Interval, rng Range) ([]Interval, error) {
	out := make([]Interval, 0, len(entries))
	last := int64(-1)
	for _, e := range entries {
		if e.Start < last {
			return nil, ErrUnsortedData
		}
		last = e.Start
		if e.Range.Intersects(rng) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Remove deletes a cached value. The target is matched by coordinates;
// with exactMatch also by payload value-equality. Vacated buckets become
// KnownEmpty and coalesce with adjacent KnownEmpty buckets. A target not
// found under an existing bucket is a logged no-op.
func (t *Tree[S]) Remove(target Interval, exactMatch bool, props *RemoveProps) error {
	if target.IsEmpty() {
		return ErrNoRange
	}
	if target.Chr != "" && target.Chr != t.cfg.Chr {
		return ErrIllegalArguments
	}
	if !target.Range.Intersects(t.Range()) {
		return nil
	}
	t.generation++
	// A collapsed root stays physically in place; its bucket array already
	// reflects the cleared state.
	found, _ := t.removeNode(t.root, target, exactMatch, emptyBucket, props)
	if !found {
		T().Infof("zoomtree: removal target [%d,%d) not found, ignoring", target.Start, target.End)
	}
	return nil
}

// Traverse visits all cached values intersecting rng. If a subtree's
// resolution already satisfies rng.Resolution and its aggregate is
// cached, onEntry receives the single summary interval of that subtree
// instead of anything beneath it. This bounds coarse-zoom rendering cost
// by summary-tier node count rather than raw-entry count.
//
// filter, when non-nil, screens values before onEntry sees them. When
// breakOnFalse is set, a false return from onEntry stops the traversal.
func (t *Tree[S]) Traverse(rng Range, onEntry, filter func(Interval) bool, breakOnFalse bool) error {
	if rng.IsEmpty() {
		return ErrNoRange
	}
	if onEntry == nil {
		return ErrIllegalArguments
	}
	if rng.Chr != "" && rng.Chr != t.cfg.Chr {
		return nil
	}
	t.traverseNode(t.root, rng, onEntry, filter, breakOnFalse)
	return nil
}

// UncachedRanges computes the ordered, disjoint list of sub-ranges of rng
// that are not cached at (or finer than) rng.Resolution. Each result range
// is tagged with the ladder resolution that should be fetched for it and
// is aligned outward to that resolution's grid.
//
// bufferingRatio ≥ 1 deliberately requests finer-than-needed data to
// amortize future zoom-ins; a ratio below 1 is invalid and corrected to 1
// with a diagnostic.
func (t *Tree[S]) UncachedRanges(rng Range, bufferingRatio float64) ([]Range, error) {
	rng, fetchRes, err := t.prepareQuery(rng, bufferingRatio)
	if err != nil || rng.IsEmpty() {
		return nil, err
	}
	acc := &gapList{chr: t.cfg.Chr}
	t.collectGaps(t.root, rng, fetchRes, acc)
	return acc.ranges, nil
}

// HasUncachedRange reports whether any part of rng is not cached at (or
// finer than) rng.Resolution, without building a list.
func (t *Tree[S]) HasUncachedRange(rng Range, bufferingRatio float64) (bool, error) {
	rng, _, err := t.prepareQuery(rng, bufferingRatio)
	if err != nil || rng.IsEmpty() {
		return false, err
	}
	return t.findGap(t.root, rng), nil
}
