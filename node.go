package zoomtree

import (
	"slices"
	"sort"
)

// bucketKind tags the four states a bucket can be in. The distinction
// between unknownBucket and emptyBucket is load-bearing: KnownEmpty is a
// positive statement ("there is confirmed to be no data here") while
// Unknown means the window has never been determined.
type bucketKind uint8

const (
	unknownBucket bucketKind = iota
	emptyBucket
	branchBucket
	leafBucket
)

// bucket is one slot of a node's values array; a tagged union of
// {Unknown, KnownEmpty, Branch, Leaf}. The zero value is Unknown.
type bucket[S any] struct {
	kind  bucketKind
	child *node[S]
	leaf  LeafData
}

// isSentinel reports whether the bucket carries no payload.
func (b bucket[S]) isSentinel() bool {
	return b.kind == unknownBucket || b.kind == emptyBucket
}

// node owns a contiguous coordinate window [keys[0], keys[last]) and
// partitions it into len(values) buckets: bucket i covers
// [keys[i], keys[i+1]). keys is strictly increasing.
//
// summary caches the aggregate over the node's window. It is present iff
// every bucket is KnownEmpty or a present child/leaf whose own data is
// present (recursively), with one exception: bulk loads may install a
// precomputed aggregate directly, without materialized children. wrapper
// caches the interval carrying the summary for traversal emission.
type node[S any] struct {
	isRoot     bool
	revDepth   int
	keys       []int64
	values     []bucket[S]
	summary    S
	hasSummary bool
	direct     bool // summary was installed from a precomputed value, not derived
	wrapper    *Interval
	stamp      uint64 // mutation generation of the last touch, for withering
}

func newNode[S any](revDepth int, start, end int64) *node[S] {
	assert(revDepth >= 0, "node reverse depth must not be negative")
	assert(start < end, "node window must not be empty")
	return &node[S]{
		revDepth: revDepth,
		keys:     []int64{start, end},
		values:   make([]bucket[S], 1),
	}
}

func (n *node[S]) start() int64 {
	return n.keys[0]
}

func (n *node[S]) end() int64 {
	return n.keys[len(n.keys)-1]
}

// findBucket returns the index of the bucket whose window contains coord,
// or -1 if coord lies outside the node's window.
func (n *node[S]) findBucket(coord int64) int {
	if coord < n.start() || coord >= n.end() {
		return -1
	}
	return sort.Search(len(n.values), func(i int) bool {
		return n.keys[i+1] > coord
	})
}

// splitBucketAt subdivides bucket i at an interior coordinate. The payload
// is preserved on both halves; callers overwrite the half they are about
// to repopulate.
func (n *node[S]) splitBucketAt(i int, coord int64) {
	assert(i >= 0 && i < len(n.values), "bucket index out of range")
	assert(n.keys[i] < coord && coord < n.keys[i+1], "split coordinate not interior to bucket")
	n.keys = slices.Insert(n.keys, i+1, coord)
	n.values = slices.Insert(n.values, i+1, n.values[i])
}

// mergeBucket coalesces bucket i with a neighbor: the predecessor, or the
// successor when forward is set. Without force, only two sentinel buckets
// of the same kind merge. Reports whether a merge happened.
func (n *node[S]) mergeBucket(i int, forward, force bool) bool {
	if forward {
		i++
	}
	if i <= 0 || i >= len(n.values) {
		return false
	}
	left, right := n.values[i-1], n.values[i]
	if !force && !(left.isSentinel() && left.kind == right.kind) {
		return false
	}
	n.keys = slices.Delete(n.keys, i, i+1)
	n.values = slices.Delete(n.values, i, i+1)
	return true
}

// restructure normalizes the bucket array after structural edits (a sweep
// merge of adjacent same-kind sentinels) and reports whether the node is
// still worth keeping. A node degenerated to a single sentinel bucket is
// only kept if it carries a directly installed summary: a derived summary
// over sentinels is the neutral element and survives a collapse into the
// parent's bucket array, a bulk-loaded aggregate does not.
func (n *node[S]) restructure() bool {
	for i := 1; i < len(n.values); {
		if n.values[i].isSentinel() && n.values[i].kind == n.values[i-1].kind {
			n.keys = slices.Delete(n.keys, i, i+1)
			n.values = slices.Delete(n.values, i, i+1)
		} else {
			i++
		}
	}
	if len(n.values) > 1 || !n.values[0].isSentinel() {
		return true
	}
	return n.hasSummary && n.direct
}

// collapsed reports whether the node degenerated to a single sentinel
// bucket, regardless of an installed summary. Removal uses this stricter
// verdict so vacated subtrees fold back into their parent's bucket array.
func (n *node[S]) collapsed() bool {
	return len(n.values) == 1 && n.values[0].isSentinel()
}
