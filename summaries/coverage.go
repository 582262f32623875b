package summaries

import (
	"github.com/npillmayer/zoomtree"
)

// Coverage counts entries and the coordinate span they occupy. Spans of
// overlapping entries are summed, not unioned.
type Coverage struct {
	Count int64
	Bases int64
}

// CoverageSummarizer aggregates Coverage values. Its zero value is ready
// to use.
type CoverageSummarizer struct{}

var _ zoomtree.Summarizer[Coverage] = CoverageSummarizer{}

func (CoverageSummarizer) Zero() Coverage {
	return Coverage{}
}

func (CoverageSummarizer) ExtractFrom(entry zoomtree.Interval) (Coverage, bool) {
	cov, ok := entry.Data.(Coverage)
	return cov, ok
}

func (CoverageSummarizer) MergeChild(acc, child Coverage) Coverage {
	acc.Count += child.Count
	acc.Bases += child.Bases
	return acc
}

func (CoverageSummarizer) MergeEntry(acc Coverage, entry zoomtree.Interval) Coverage {
	acc.Count++
	acc.Bases += entry.Span()
	return acc
}

func (CoverageSummarizer) AttachTo(summary Coverage, iv zoomtree.Interval) zoomtree.Interval {
	iv.Data = summary
	return iv
}
