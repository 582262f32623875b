package dump

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/npillmayer/zoomtree"
	"golang.org/x/term"
)

// State classifies one column of a coverage map.
type State uint8

const (
	// Empty marks a column cached as holding no data.
	Empty State = iota
	// Data marks a column overlapped by at least one cached value.
	Data
	// Uncached marks a column that a renderer would still have to fetch.
	Uncached
)

// Palette maps column states to colors and glyphs.
type Palette struct {
	Colors map[State]*color.Color
	Glyphs map[State]rune
}

// DefaultPalette is used when no palette is given: green blocks for data,
// dim dots for confirmed-empty regions, red question marks for uncached
// ones.
func DefaultPalette() *Palette {
	return &Palette{
		Colors: map[State]*color.Color{
			Empty:    color.New(color.FgHiBlack),
			Data:     color.New(color.FgGreen),
			Uncached: color.New(color.FgRed),
		},
		Glyphs: map[State]rune{
			Empty:    '·',
			Data:     '█',
			Uncached: '?',
		},
	}
}

// CoverageMap renders the cache state of rng as a single line of width
// glyphs, followed by a coordinate ruler. The range's resolution tag
// decides what counts as cached, exactly as in Tree.UncachedRanges.
func CoverageMap[S any](t *zoomtree.Tree[S], rng zoomtree.Range, w io.Writer, width int, palette *Palette) error {
	rng.Chr = t.Range().Chr
	rng = rng.Clip(t.Range())
	if rng.IsEmpty() {
		return zoomtree.ErrNoRange
	}
	if width < 10 {
		width = 10
	}
	if palette == nil {
		palette = DefaultPalette()
	}
	states := make([]State, width)
	err := t.Traverse(rng, func(e zoomtree.Interval) bool {
		markColumns(states, rng, e.Start, e.End, Data)
		return true
	}, nil, false)
	if err != nil {
		return err
	}
	gaps, err := t.UncachedRanges(rng, 1)
	if err != nil {
		return err
	}
	for _, g := range gaps {
		markColumns(states, rng, g.Start, g.End, Uncached)
	}
	for _, s := range states {
		glyph := string(palette.Glyphs[s])
		if c := palette.Colors[s]; c != nil {
			c.Fprint(w, glyph)
		} else {
			io.WriteString(w, glyph)
		}
	}
	fmt.Fprintf(w, "\n%s:%d", rng.Chr, rng.Start)
	fmt.Fprintf(w, "%*d\n", width-posWidth(rng), rng.End)
	return nil
}

// Print renders a coverage map to stdout, sized to the terminal width.
func Print[S any](t *zoomtree.Tree[S], rng zoomtree.Range) error {
	return CoverageMap(t, rng, os.Stdout, widthFromTerminal(), nil)
}

// markColumns paints the columns covered by [s,e) with the given state;
// Uncached wins over Data.
func markColumns(states []State, rng zoomtree.Range, s, e int64, st State) {
	span := rng.Span()
	width := int64(len(states))
	if s < rng.Start {
		s = rng.Start
	}
	if e > rng.End {
		e = rng.End
	}
	if s >= e {
		return
	}
	lo := (s - rng.Start) * width / span
	hi := ((e-rng.Start)*width + span - 1) / span
	for i := lo; i < hi && i < width; i++ {
		if st > states[i] {
			states[i] = st
		}
	}
}

func posWidth(rng zoomtree.Range) int {
	return len(fmt.Sprintf("%s:%d", rng.Chr, rng.Start))
}

// widthFromTerminal checks whether stdout is a terminal, and if so reads
// the terminal's width to size the map accordingly.
func widthFromTerminal() int {
	width := 65
	if term.IsTerminal(0) {
		if w, _, err := term.GetSize(0); err == nil {
			switch {
			case w > 65:
				width = w - 10
			case w > 30:
				width = w - 5
			case w > 10:
				width = w
			default:
				width = 10
			}
		}
	}
	tracer().P("format", "dump").Infof("setting coverage map width to %d columns", width)
	return width
}
