// Package htmlreport renders the cache state of a zoomtree as a small
// standalone HTML document, one table row per contiguous cached or
// uncached segment. The inverse direction, parsing segments back out of a
// report, is provided for tooling that post-processes reports.
package htmlreport

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/zoomtree"
	"golang.org/x/net/html"
)

// Segment is one contiguous run of uniform cache state within a report.
type Segment struct {
	Range  zoomtree.Range
	Cached bool
}

// Segments computes the alternating cached/uncached segments of rng. The
// range's resolution tag decides what counts as cached, exactly as in
// Tree.UncachedRanges.
func Segments[S any](t *zoomtree.Tree[S], rng zoomtree.Range) ([]Segment, error) {
	rng.Chr = t.Range().Chr
	rng = rng.Clip(t.Range())
	if rng.IsEmpty() {
		return nil, zoomtree.ErrNoRange
	}
	gaps, err := t.UncachedRanges(rng, 1)
	if err != nil {
		return nil, err
	}
	var segs []Segment
	pos := rng.Start
	for _, g := range gaps {
		if g.Start > pos {
			segs = append(segs, Segment{
				Range:  zoomtree.Range{Chr: rng.Chr, Start: pos, End: g.Start},
				Cached: true,
			})
		}
		segs = append(segs, Segment{Range: g})
		pos = g.End
	}
	if pos < rng.End {
		segs = append(segs, Segment{
			Range:  zoomtree.Range{Chr: rng.Chr, Start: pos, End: rng.End},
			Cached: true,
		})
	}
	return segs, nil
}

// Write renders an HTML cache report for rng.
func Write[S any](t *zoomtree.Tree[S], rng zoomtree.Range, w io.Writer) error {
	segs, err := Segments(t, rng)
	if err != nil {
		return err
	}
	chr := html.EscapeString(t.Config().Chr)
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head><title>zoomtree cache report %s</title></head>\n<body>\n", chr)
	fmt.Fprintf(w, "<h1>Cache report for %s:%d-%d</h1>\n", chr, rng.Start, rng.End)
	io.WriteString(w, "<table>\n<tr><th>chr</th><th>start</th><th>end</th><th>state</th><th>fetch resolution</th></tr>\n")
	for _, s := range segs {
		state, res := "cached", ""
		if !s.Cached {
			state = "uncached"
			res = strconv.FormatInt(s.Range.Resolution, 10)
		}
		fmt.Fprintf(w, "<tr class=%q><td>%s</td><td>%d</td><td>%d</td><td>%s</td><td>%s</td></tr>\n",
			state, html.EscapeString(s.Range.Chr), s.Range.Start, s.Range.End, state, res)
	}
	io.WriteString(w, "</table>\n</body>\n</html>\n")
	return err
}

// Parse extracts the segments from a report previously produced by Write.
func Parse(r io.Reader) ([]Segment, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	var segs []Segment
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			if seg, ok := segmentFromRow(n); ok {
				segs = append(segs, seg)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return segs, nil
}

// segmentFromRow reads the cells of a table row; header rows and rows with
// unparsable coordinates report false.
func segmentFromRow(tr *html.Node) (Segment, bool) {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "td" {
			cells = append(cells, innerText(c))
		}
	}
	if len(cells) < 4 {
		return Segment{}, false
	}
	start, err1 := strconv.ParseInt(strings.TrimSpace(cells[1]), 10, 64)
	end, err2 := strconv.ParseInt(strings.TrimSpace(cells[2]), 10, 64)
	if err1 != nil || err2 != nil {
		return Segment{}, false
	}
	seg := Segment{
		Range:  zoomtree.Range{Chr: strings.TrimSpace(cells[0]), Start: start, End: end},
		Cached: strings.TrimSpace(cells[3]) == "cached",
	}
	if !seg.Cached && len(cells) >= 5 {
		if res, err := strconv.ParseInt(strings.TrimSpace(cells[4]), 10, 64); err == nil {
			seg.Range.Resolution = res
		}
	}
	return seg, true
}

func innerText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(innerText(c))
	}
	return sb.String()
}
