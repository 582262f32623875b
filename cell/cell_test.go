package cell

import (
	"testing"

	"github.com/npillmayer/zoomtree"
)

func iv(start, end int64, data any) zoomtree.Interval {
	return zoomtree.Interval{
		Range: zoomtree.Range{Start: start, End: end},
		Data:  data,
	}
}

func rng(start, end int64) zoomtree.Range {
	return zoomtree.Range{Start: start, End: end}
}

func TestNewDropsExpiredCarryOver(t *testing.T) {
	c := New(500, []zoomtree.Interval{
		iv(100, 400, nil), // ends before the anchor
		iv(200, 700, nil),
	})
	if len(c.carryOver) != 1 || c.carryOver[0].End != 700 {
		t.Fatalf("unexpected carry-over: %v", c.carryOver)
	}
	if !c.HasData() {
		t.Error("cell with carry-over must report data")
	}
	if c.Start() != 500 || c.Resolution() != 1 {
		t.Errorf("unexpected anchor/resolution: %d/%d", c.Start(), c.Resolution())
	}
}

func TestInsertKeepsOrderAndDedupes(t *testing.T) {
	c := New(100, nil)
	props := &zoomtree.InsertProps{}
	q := zoomtree.NewEntryQueue([]zoomtree.Interval{
		iv(100, 150, "a"), iv(100, 300, "b"), iv(120, 130, "c"),
	})
	if err := c.Insert(q, rng(100, 200), props); err != nil {
		t.Fatalf("unexpected Insert error: %v", err)
	}
	if len(c.entries) != 3 {
		t.Fatalf("expected 3 entries, have %v", c.entries)
	}
	if c.entries[0].End != 150 || c.entries[1].End != 300 || c.entries[2].Start != 120 {
		t.Errorf("entries out of order: %v", c.entries)
	}
	// the entry extending past the cell went onto the continuation list
	if len(props.ContList) != 1 || props.ContList[0].End != 300 {
		t.Errorf("unexpected continuation list: %v", props.ContList)
	}
	// re-insertion with a changed payload overwrites, never duplicates
	props = &zoomtree.InsertProps{}
	q = zoomtree.NewEntryQueue([]zoomtree.Interval{iv(100, 150, "a2")})
	if err := c.Insert(q, rng(100, 200), props); err != nil {
		t.Fatalf("unexpected Insert error: %v", err)
	}
	if len(c.entries) != 3 || c.entries[0].Data != "a2" {
		t.Errorf("re-insertion did not overwrite in place: %v", c.entries)
	}
}

func TestInsertRejectsDesyncedEntry(t *testing.T) {
	c := New(100, nil)
	q := zoomtree.NewEntryQueue([]zoomtree.Interval{iv(50, 150, nil)})
	if err := c.Insert(q, rng(100, 200), &zoomtree.InsertProps{}); err != ErrEntryOutsideCell {
		t.Fatalf("expected ErrEntryOutsideCell, got %v", err)
	}
}

func TestInsertFiresCallback(t *testing.T) {
	c := New(100, nil)
	var seen []zoomtree.Interval
	props := &zoomtree.InsertProps{Callback: func(e zoomtree.Interval) {
		seen = append(seen, e)
	}}
	q := zoomtree.NewEntryQueue([]zoomtree.Interval{iv(100, 150, nil), iv(110, 160, nil)})
	if err := c.Insert(q, rng(100, 200), props); err != nil {
		t.Fatalf("unexpected Insert error: %v", err)
	}
	if len(seen) != 2 {
		t.Errorf("callback fired %d times, want 2", len(seen))
	}
}

func TestTraverseCarryRule(t *testing.T) {
	c := New(200, []zoomtree.Interval{iv(150, 450, "span")})
	q := zoomtree.NewEntryQueue([]zoomtree.Interval{iv(200, 250, "own")})
	if err := c.Insert(q, rng(200, 300), &zoomtree.InsertProps{ContList: []zoomtree.Interval{iv(150, 450, "span")}}); err != nil {
		t.Fatalf("unexpected Insert error: %v", err)
	}
	count := func(r zoomtree.Range) int {
		n := 0
		c.Traverse(r, func(zoomtree.Interval) bool {
			n++
			return true
		}, nil, false)
		return n
	}
	// walk starting at or behind the anchor sees carry + own
	if n := count(rng(200, 300)); n != 2 {
		t.Errorf("anchored walk visited %d entries, want 2", n)
	}
	if n := count(rng(250, 300)); n != 1 {
		t.Errorf("mid-cell walk visited %d entries, want 1 (carry only)", n)
	}
	// walk starting before the anchor: an earlier cell owns the carry
	if n := count(rng(0, 300)); n != 1 {
		t.Errorf("wide walk visited %d entries, want 1 (own only)", n)
	}
}

func TestRemoveOwnAndCarried(t *testing.T) {
	c := New(200, []zoomtree.Interval{iv(150, 450, "span")})
	q := zoomtree.NewEntryQueue([]zoomtree.Interval{iv(200, 250, "own")})
	if err := c.Insert(q, rng(200, 300), &zoomtree.InsertProps{ContList: []zoomtree.Interval{iv(150, 450, "span")}}); err != nil {
		t.Fatalf("unexpected Insert error: %v", err)
	}
	var cb int
	props := &zoomtree.RemoveProps{Callback: func(zoomtree.Interval) { cb++ }}
	if !c.Remove(iv(150, 450, nil), false, props) {
		t.Fatal("expected carried entry to be removed")
	}
	if cb != 0 {
		t.Error("carried removal must not fire the callback")
	}
	if !c.Remove(iv(200, 250, nil), false, props) {
		t.Fatal("expected own entry to be removed")
	}
	if cb != 1 {
		t.Errorf("own removal fired callback %d times, want 1", cb)
	}
	if c.HasData() {
		t.Error("cell still reports data after removing everything")
	}
	// exact-match with wrong payload is a no-op
	c.store(iv(200, 250, "own"))
	if c.Remove(iv(200, 250, "other"), true, nil) {
		t.Error("exact-match removal with wrong payload must not remove")
	}
}
