/*
Package bedfile reads genomic intervals from BED files, ready for
insertion into a zoomtree.

BED3 (chrom, start, end) and BED4 (plus a name column) records are
supported; further columns are ignored. Files may be loaded synchronously
with Load, or asynchronously in per-chromosome batches with LoadAsync.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2024, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package bedfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'zoomtree'
func tracer() tracing.Trace {
	return tracing.Select("zoomtree")
}
