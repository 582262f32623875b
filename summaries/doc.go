/*
Package summaries provides some pre-manufactured summarizers for zoomtrees.

A summarizer turns raw genomic intervals into a per-window aggregate and
merges aggregates up the resolution ladder. Clients with custom track
payloads will usually write their own; the ones in this package cover the
common cases of coverage counting and numeric track statistics.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2024, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package summaries

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'zoomtree'
func tracer() tracing.Trace {
	return tracing.Select("zoomtree")
}
