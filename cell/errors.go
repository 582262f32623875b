package cell

import "errors"

var (
	// ErrEntryOutsideCell signals an entry starting before the cell anchor;
	// such entries belong to an earlier cell or to the carry-over list.
	ErrEntryOutsideCell = errors.New("cell: entry starts before cell anchor")
)
