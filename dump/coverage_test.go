package dump

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/zoomtree"
	"github.com/npillmayer/zoomtree/cell"
	"github.com/npillmayer/zoomtree/summaries"
)

func testTree(t *testing.T) *zoomtree.Tree[summaries.Coverage] {
	t.Helper()
	tree, err := zoomtree.New(zoomtree.Config[summaries.Coverage]{
		Chr:               "chr1",
		Start:             0,
		End:               100000,
		ScalingFactor:     10,
		LeafScalingFactor: 100,
		Summarizer:        summaries.CoverageSummarizer{},
		LeafFactory:       cell.Factory,
	})
	if err != nil {
		t.Fatalf("unexpected New error: %v", err)
	}
	return tree
}

func TestCoverageMapStates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t)
	defer teardown()
	color.NoColor = true // glyphs only, no escape sequences
	//
	tree := testTree(t)
	err := tree.Insert([]zoomtree.Interval{{
		Range: zoomtree.Range{Chr: "chr1", Start: 0, End: 5000},
	}}, zoomtree.Range{Chr: "chr1", Start: 0, End: 10000}, nil)
	if err != nil {
		t.Fatalf("unexpected Insert error: %v", err)
	}
	var buf bytes.Buffer
	rng := zoomtree.Range{Start: 0, End: 20000, Resolution: 1}
	if err := CoverageMap(tree, rng, &buf, 20, nil); err != nil {
		t.Fatalf("unexpected CoverageMap error: %v", err)
	}
	out := buf.String()
	line := strings.SplitN(out, "\n", 2)[0]
	// 20 columns à 1000 coordinates: data, confirmed empty, uncached
	want := strings.Repeat("█", 5) + strings.Repeat("·", 5) + strings.Repeat("?", 10)
	if line != want {
		t.Errorf("coverage line = %q, want %q", line, want)
	}
	if !strings.Contains(out, "chr1:0") || !strings.Contains(out, "20000") {
		t.Errorf("missing coordinate ruler in %q", out)
	}
}

func TestCoverageMapRejectsDisjointRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t)
	defer teardown()
	//
	tree := testTree(t)
	var buf bytes.Buffer
	rng := zoomtree.Range{Start: 200000, End: 300000}
	if err := CoverageMap(tree, rng, &buf, 20, nil); err != zoomtree.ErrNoRange {
		t.Fatalf("expected ErrNoRange, got %v", err)
	}
}
