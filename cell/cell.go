package cell

import (
	"slices"
	"sort"

	"github.com/npillmayer/zoomtree"
)

// Cell is the standard leaf payload of a zoomtree: raw intervals at
// resolution 1, anchored at one start coordinate. Entries are kept sorted
// by (start, end); entries that began in an earlier cell but extend into
// this one live in a separate carry-over list, so that a traversal starting
// mid-entry still sees them exactly once.
type Cell struct {
	start     int64
	entries   []zoomtree.Interval
	carryOver []zoomtree.Interval
}

// New creates a cell anchored at start. Carry-over entries not extending
// past the anchor are dropped.
func New(start int64, carryOver []zoomtree.Interval) *Cell {
	c := &Cell{start: start}
	for _, e := range carryOver {
		if e.End > start {
			c.carryOver = append(c.carryOver, e)
		}
	}
	return c
}

// Factory adapts New to the leaf-factory signature expected by a tree
// configuration.
func Factory(start int64, carryOver []zoomtree.Interval) zoomtree.LeafData {
	return New(start, carryOver)
}

// Start returns the cell's anchor coordinate.
func (c *Cell) Start() int64 {
	return c.start
}

// Resolution returns 1: cells hold raw, unbinned entries.
func (c *Cell) Resolution() int64 {
	return 1
}

// HasData reports whether the cell holds any entries, own or carried.
func (c *Cell) HasData() bool {
	return len(c.entries) > 0 || len(c.carryOver) > 0
}

// Insert consumes the queued entries starting inside [rng.Start, rng.End)
// and stores them in the cell. Entries extending past rng.End are appended
// to the continuation list in props for subsequent cells to pick up; the
// cell's own carry-over is replaced by the current continuation list, which
// makes re-insertion of unchanged data idempotent.
func (c *Cell) Insert(data *zoomtree.EntryQueue, rng zoomtree.Range, props *zoomtree.InsertProps) error {
	if props != nil {
		c.carryOver = append(c.carryOver[:0], props.ContList...)
	}
	for data != nil && !data.Empty() && data.Front().Start < rng.End {
		e := data.Pop()
		if e.Start < c.start {
			return ErrEntryOutsideCell
		}
		c.store(e)
		if props != nil {
			if e.End > rng.End {
				props.ContList = append(props.ContList, e)
			}
			if props.Callback != nil {
				props.Callback(e)
			}
		}
	}
	return nil
}

// store inserts e keeping (start, end) order; an entry with identical
// coordinates is overwritten instead of duplicated.
func (c *Cell) store(e zoomtree.Interval) {
	i := sort.Search(len(c.entries), func(i int) bool {
		if c.entries[i].Start != e.Start {
			return c.entries[i].Start > e.Start
		}
		return c.entries[i].End >= e.End
	})
	if i < len(c.entries) && c.entries[i].Start == e.Start && c.entries[i].End == e.End {
		c.entries[i] = e
		return
	}
	c.entries = slices.Insert(c.entries, i, e)
}

// Remove deletes entries with target's coordinates; with exactMatch only
// value-equal ones. Carried copies of a matching entry are deleted too, but
// only own entries fire the removal callback. Reports whether anything was
// deleted.
func (c *Cell) Remove(target zoomtree.Interval, exactMatch bool, props *zoomtree.RemoveProps) bool {
	removed := false
	for i := 0; i < len(c.entries); i++ {
		e := c.entries[i]
		if e.Start != target.Start || e.End != target.End {
			continue
		}
		if exactMatch && !e.Equal(target) {
			continue
		}
		c.entries = slices.Delete(c.entries, i, i+1)
		i--
		removed = true
		if props != nil && props.Callback != nil {
			props.Callback(e)
		}
	}
	for i := 0; i < len(c.carryOver); i++ {
		e := c.carryOver[i]
		if e.Start != target.Start || e.End != target.End {
			continue
		}
		if exactMatch && !e.Equal(target) {
			continue
		}
		c.carryOver = slices.Delete(c.carryOver, i, i+1)
		i--
		removed = true
	}
	return removed
}

// Traverse visits all entries intersecting rng in start order. Carried
// entries are visited only when the walk starts at or behind this cell's
// anchor: earlier cells of the same walk already emitted them as their own.
// Returns false when stopped early by the callback.
func (c *Cell) Traverse(rng zoomtree.Range, onEntry, filter func(zoomtree.Interval) bool, breakOnFalse bool) bool {
	if rng.Start >= c.start {
		for _, e := range c.carryOver {
			if e.Start < rng.End && e.End > rng.Start {
				if !zoomtree.VisitEntry(e, onEntry, filter, breakOnFalse) {
					return false
				}
			}
		}
	}
	for _, e := range c.entries {
		if e.Start >= rng.End {
			break
		}
		if e.End > rng.Start {
			if !zoomtree.VisitEntry(e, onEntry, filter, breakOnFalse) {
				return false
			}
		}
	}
	return true
}

// ForEachEntry visits the cell's own entries, without carry-over. This is
// the fold summaries are computed from: spanning entries count at their
// start cell only.
func (c *Cell) ForEachEntry(fn func(zoomtree.Interval) bool) bool {
	for _, e := range c.entries {
		if !fn(e) {
			return false
		}
	}
	return true
}
