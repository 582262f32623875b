package summaries

import (
	"math"

	"github.com/npillmayer/zoomtree"
)

// Stats aggregates a numeric track value (e.g. a wiggle score) over a
// window: count, sum, sum of squares and extrema of all valid entries.
type Stats struct {
	ValidCount int64
	Sum        float64
	SumSq      float64
	Min        float64
	Max        float64
}

// Mean returns the arithmetic mean of all valid entries, 0 without any.
func (s Stats) Mean() float64 {
	if s.ValidCount == 0 {
		return 0
	}
	return s.Sum / float64(s.ValidCount)
}

// Variance returns the population variance of all valid entries.
func (s Stats) Variance() float64 {
	if s.ValidCount == 0 {
		return 0
	}
	m := s.Mean()
	return s.SumSq/float64(s.ValidCount) - m*m
}

// StatsSummarizer aggregates Stats values from entries carrying a numeric
// payload. Entries with a non-numeric payload are counted as invalid, with
// a diagnostic.
type StatsSummarizer struct{}

var _ zoomtree.Summarizer[Stats] = StatsSummarizer{}

func (StatsSummarizer) Zero() Stats {
	return Stats{Min: math.Inf(1), Max: math.Inf(-1)}
}

func (StatsSummarizer) ExtractFrom(entry zoomtree.Interval) (Stats, bool) {
	s, ok := entry.Data.(Stats)
	return s, ok
}

func (StatsSummarizer) MergeChild(acc, child Stats) Stats {
	acc.ValidCount += child.ValidCount
	acc.Sum += child.Sum
	acc.SumSq += child.SumSq
	acc.Min = math.Min(acc.Min, child.Min)
	acc.Max = math.Max(acc.Max, child.Max)
	return acc
}

func (StatsSummarizer) MergeEntry(acc Stats, entry zoomtree.Interval) Stats {
	v, ok := numericPayload(entry.Data)
	if !ok {
		tracer().Errorf("summaries: entry [%d,%d) carries non-numeric payload %T",
			entry.Start, entry.End, entry.Data)
		return acc
	}
	acc.ValidCount++
	acc.Sum += v
	acc.SumSq += v * v
	acc.Min = math.Min(acc.Min, v)
	acc.Max = math.Max(acc.Max, v)
	return acc
}

func (StatsSummarizer) AttachTo(summary Stats, iv zoomtree.Interval) zoomtree.Interval {
	iv.Data = summary
	return iv
}

func numericPayload(data any) (float64, bool) {
	switch v := data.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
