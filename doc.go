/*
Package zoomtree implements a hierarchical, multi-resolution summary cache
for one-dimensional interval data, i.e. genomic coordinates along a single
chromosome.

Genome browsers render tracks at wildly varying zoom levels. At base-pair
zoom a client needs the raw intervals; zoomed out to a whole chromosome it
only needs aggregate summaries, and refetching raw data on every zoom change
is prohibitively expensive. A zoomtree keeps both in one structure:

  - raw intervals at the finest resolution, where they have been loaded,
  - precomputed aggregates at a fixed geometric ladder of coarser
    resolutions, so that coarse-zoom rendering touches O(summary nodes)
    rather than O(raw entries),
  - per region and per requested resolution, a record of what has *not*
    been loaded yet, so a caller can issue exactly the fetches needed
    ("buffered loading").

Every node of the tree owns a contiguous coordinate window and partitions
it into buckets. A bucket is a tagged value: Unknown (never loaded),
KnownEmpty (confirmed to hold no data), a child node one tier finer, or a
leaf cell with raw entries. The resolution of a node at reverse depth d is

	leafScalingFactor · scalingFactor^d

with reverse depth 0 being the finest non-leaf tier. The aggregate type is
pluggable through the Summarizer interface; package summaries provides
ready-made implementations, package cell the standard leaf payload.

A tree is single-threaded: mutating operations require exclusive access,
read-only operations may run concurrently with each other but not with a
mutation on the same subtree.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2024, Norbert Pillmayer

Please refer to the License file in the repository root.
*/
package zoomtree

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
