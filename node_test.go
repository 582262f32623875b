package zoomtree

import "testing"

func TestFindBucket(t *testing.T) {
	n := newNode[int64](1, 0, 1000)
	n.splitBucketAt(0, 300)
	n.splitBucketAt(1, 700)
	cases := []struct {
		coord int64
		want  int
	}{
		{0, 0}, {299, 0}, {300, 1}, {699, 1}, {700, 2}, {999, 2},
		{-1, -1}, {1000, -1},
	}
	for _, c := range cases {
		if got := n.findBucket(c.coord); got != c.want {
			t.Errorf("findBucket(%d) = %d, want %d", c.coord, got, c.want)
		}
	}
}

func TestSplitPreservesPayload(t *testing.T) {
	n := newNode[int64](0, 0, 1000)
	n.values[0] = bucket[int64]{kind: leafBucket, leaf: stubFactory(0, nil)}
	n.splitBucketAt(0, 400)
	if len(n.values) != 2 {
		t.Fatalf("expected 2 buckets after split, have %d", len(n.values))
	}
	for i := range n.values {
		if n.values[i].kind != leafBucket || n.values[i].leaf == nil {
			t.Errorf("bucket %d lost its payload on split", i)
		}
	}
	if n.keys[1] != 400 {
		t.Errorf("split boundary = %d, want 400", n.keys[1])
	}
}

func TestMergeBucketOnlySameKindSentinels(t *testing.T) {
	n := newNode[int64](1, 0, 1000)
	n.splitBucketAt(0, 500)
	n.values[0] = bucket[int64]{kind: emptyBucket}
	// empty + unknown must not merge
	if n.mergeBucket(1, false, false) {
		t.Fatal("merged buckets of different kinds without force")
	}
	n.values[1] = bucket[int64]{kind: emptyBucket}
	if !n.mergeBucket(1, false, false) {
		t.Fatal("expected merge of two KnownEmpty buckets")
	}
	if len(n.values) != 1 || n.start() != 0 || n.end() != 1000 {
		t.Errorf("unexpected node shape after merge: keys = %v", n.keys)
	}
}

func TestMergeBucketForced(t *testing.T) {
	n := newNode[int64](1, 0, 1000)
	n.splitBucketAt(0, 500)
	n.values[1] = bucket[int64]{kind: leafBucket, leaf: stubFactory(500, nil)}
	if n.mergeBucket(1, false, false) {
		t.Fatal("merged a payload bucket without force")
	}
	if !n.mergeBucket(1, false, true) {
		t.Fatal("expected forced merge")
	}
	if len(n.values) != 1 {
		t.Errorf("expected a single bucket after forced merge, have %d", len(n.values))
	}
}

func TestRestructureSweepsSentinelRuns(t *testing.T) {
	n := newNode[int64](1, 0, 1000)
	n.splitBucketAt(0, 250)
	n.splitBucketAt(1, 500)
	n.splitBucketAt(2, 750)
	n.values[1] = bucket[int64]{kind: emptyBucket}
	n.values[2] = bucket[int64]{kind: emptyBucket}
	if !n.restructure() {
		t.Fatal("node with mixed buckets must stay valid")
	}
	// unknown | empty+empty | unknown -> three buckets
	if len(n.values) != 3 {
		t.Fatalf("expected 3 buckets after restructure, have %d", len(n.values))
	}
	if n.keys[1] != 250 || n.keys[2] != 750 {
		t.Errorf("unexpected boundaries after sweep: %v", n.keys)
	}
}

func TestChildHasDataConsultsLeaf(t *testing.T) {
	n := newNode[int64](0, 0, 1000)
	n.values[0] = bucket[int64]{kind: leafBucket, leaf: &stubLeaf{start: 0}}
	if n.childHasData(0) {
		t.Error("leaf without entries must not count as determined data")
	}
	n.values[0].leaf.(*stubLeaf).entries = []Interval{{Range: Range{Start: 10, End: 20}}}
	if !n.childHasData(0) {
		t.Error("leaf with entries must count as determined data")
	}
	n.values[0] = bucket[int64]{kind: emptyBucket}
	if !n.childHasData(0) {
		t.Error("KnownEmpty must count as determined data")
	}
	n.values[0] = bucket[int64]{}
	if n.childHasData(0) {
		t.Error("Unknown must not count as determined data")
	}
}

func TestRestructureCollapseVerdict(t *testing.T) {
	n := newNode[int64](1, 0, 1000)
	if n.restructure() {
		t.Error("single Unknown bucket without summary must be collapsible")
	}
	n.hasSummary = true
	if n.restructure() {
		t.Error("derived summary must not save a degenerated node")
	}
	n.direct = true
	if !n.restructure() {
		t.Error("a directly installed summary must keep the node alive")
	}
	if !n.collapsed() {
		t.Error("collapsed() must stay true regardless of summaries")
	}
}
