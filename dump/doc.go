/*
Package dump visualizes the cache state of a zoomtree on a terminal.

A coverage map renders a coordinate window as one line of colored glyphs,
showing at a glance which parts of the window hold data, which are
confirmed empty, and which would still have to be fetched.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2024, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package dump

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'zoomtree'
func tracer() tracing.Trace {
	return tracing.Select("zoomtree")
}
