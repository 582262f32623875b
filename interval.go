package zoomtree

/*
BSD 3-Clause License

Copyright (c) 2024, Norbert Pillmayer

Please refer to the License file in the repository root.
*/

import "reflect"

// Range is a half-open coordinate window [Start, End) on a chromosome.
//
// Resolution optionally tags the range with a target resolution: the
// coordinate span one summary unit is allowed to represent. 0 and 1 both
// mean "finest", i.e. raw entries.
type Range struct {
	Chr        string
	Start, End int64
	Resolution int64
}

// IsEmpty reports whether the range spans no coordinates.
func (r Range) IsEmpty() bool {
	return r.End <= r.Start
}

// Span returns the width of the range.
func (r Range) Span() int64 {
	if r.IsEmpty() {
		return 0
	}
	return r.End - r.Start
}

// Intersects reports whether two ranges overlap in at least one coordinate.
// Chromosome names are compared only if both are set.
func (r Range) Intersects(other Range) bool {
	if r.Chr != "" && other.Chr != "" && r.Chr != other.Chr {
		return false
	}
	return r.Start < other.End && other.Start < r.End
}

// Clip intersects r with a clip window, keeping r's chromosome and
// resolution tag. The result may be empty.
func (r Range) Clip(to Range) Range {
	if to.Start > r.Start {
		r.Start = to.Start
	}
	if to.End < r.End {
		r.End = to.End
	}
	return r
}

// resolutionOrFinest maps the optional resolution tag to an effective
// resolution, treating "unset" as raw data.
func (r Range) resolutionOrFinest() int64 {
	if r.Resolution < 1 {
		return 1
	}
	return r.Resolution
}

// Interval is a range carrying a data payload. For raw entries the payload
// is track data (e.g. a wiggle value); for summary entries delivered by a
// bulk load it is a precomputed aggregate which a Summarizer can extract.
type Interval struct {
	Range
	Data any
}

// Clip returns the interval clipped to a window. The payload is shared,
// not copied.
func (iv Interval) Clip(to Range) Interval {
	iv.Range = iv.Range.Clip(to)
	return iv
}

// Equal compares coordinates and payload. The resolution tag does not
// participate in value equality; chromosome names are compared only if
// both are set, like in Range.Intersects.
func (iv Interval) Equal(other Interval) bool {
	if iv.Chr != "" && other.Chr != "" && iv.Chr != other.Chr {
		return false
	}
	if iv.Start != other.Start || iv.End != other.End {
		return false
	}
	return payloadEqual(iv.Data, other.Data)
}

func payloadEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	type equaler interface{ Equal(any) bool }
	if eq, ok := a.(equaler); ok {
		return eq.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}

// VisitEntry runs a traversal callback for a single entry, honoring the
// optional filter and the break-on-false contract. It reports whether the
// traversal should continue.
func VisitEntry(iv Interval, onEntry, filter func(Interval) bool, breakOnFalse bool) bool {
	if filter != nil && !filter(iv) {
		return true
	}
	if !onEntry(iv) && breakOnFalse {
		return false
	}
	return true
}

// --- Entry queue -----------------------------------------------------------

// EntryQueue is a consuming cursor over a batch of intervals sorted by
// start position. Insertion threads a single queue through the whole
// recursive descent; every node consumes the entries belonging to its
// window from the front.
type EntryQueue struct {
	entries []Interval
	head    int
}

// NewEntryQueue wraps a sorted entry batch. The slice is not copied.
func NewEntryQueue(entries []Interval) *EntryQueue {
	return &EntryQueue{entries: entries}
}

// Len returns the number of unconsumed entries.
func (q *EntryQueue) Len() int {
	return len(q.entries) - q.head
}

// Empty reports whether all entries have been consumed.
func (q *EntryQueue) Empty() bool {
	return q.head >= len(q.entries)
}

// Front returns the next unconsumed entry without consuming it.
func (q *EntryQueue) Front() Interval {
	assert(!q.Empty(), "Front called on drained entry queue")
	return q.entries[q.head]
}

// Pop consumes and returns the next entry.
func (q *EntryQueue) Pop() Interval {
	assert(!q.Empty(), "Pop called on drained entry queue")
	e := q.entries[q.head]
	q.head++
	return e
}

// NextStartAfter returns the start position of the first unconsumed entry
// with a start strictly greater than coord, if any.
func (q *EntryQueue) NextStartAfter(coord int64) (int64, bool) {
	for i := q.head; i < len(q.entries); i++ {
		if q.entries[i].Start > coord {
			return q.entries[i].Start, true
		}
	}
	return 0, false
}
