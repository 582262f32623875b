package zoomtree

import "testing"

// entryCounter is a minimal summarizer for internal tests: the aggregate
// is the number of entries below a node.
type entryCounter struct{}

func (entryCounter) Zero() int64 { return 0 }

func (entryCounter) ExtractFrom(entry Interval) (int64, bool) {
	v, ok := entry.Data.(int64)
	return v, ok
}

func (entryCounter) MergeChild(acc, child int64) int64 { return acc + child }

func (entryCounter) MergeEntry(acc int64, entry Interval) int64 { return acc + 1 }

func (entryCounter) AttachTo(summary int64, iv Interval) Interval {
	iv.Data = summary
	return iv
}

// stubLeaf is a bare-bones leaf payload for internal tests.
type stubLeaf struct {
	start   int64
	entries []Interval
}

func stubFactory(start int64, carryOver []Interval) LeafData {
	return &stubLeaf{start: start, entries: carryOver}
}

func (l *stubLeaf) Start() int64      { return l.start }
func (l *stubLeaf) Resolution() int64 { return 1 }
func (l *stubLeaf) HasData() bool     { return len(l.entries) > 0 }

func (l *stubLeaf) Insert(data *EntryQueue, rng Range, props *InsertProps) error {
	for data != nil && !data.Empty() && data.Front().Start < rng.End {
		e := data.Pop()
		l.entries = append(l.entries, e)
		if props != nil && e.End > rng.End {
			props.ContList = append(props.ContList, e)
		}
	}
	return nil
}

func (l *stubLeaf) Remove(target Interval, exactMatch bool, props *RemoveProps) bool {
	for i, e := range l.entries {
		if e.Start == target.Start && e.End == target.End {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (l *stubLeaf) Traverse(rng Range, onEntry, filter func(Interval) bool, breakOnFalse bool) bool {
	for _, e := range l.entries {
		if e.Start < rng.End && e.End > rng.Start {
			if !VisitEntry(e, onEntry, filter, breakOnFalse) {
				return false
			}
		}
	}
	return true
}

func (l *stubLeaf) ForEachEntry(fn func(Interval) bool) bool {
	for _, e := range l.entries {
		if !fn(e) {
			return false
		}
	}
	return true
}

func newTestTree(t *testing.T) *Tree[int64] {
	t.Helper()
	tree, err := New(Config[int64]{
		Chr:               "chr1",
		Start:             0,
		End:               100000,
		ScalingFactor:     10,
		LeafScalingFactor: 100,
		Summarizer:        entryCounter{},
		LeafFactory:       stubFactory,
	})
	if err != nil {
		t.Fatalf("unexpected New error: %v", err)
	}
	return tree
}
