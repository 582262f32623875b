package zoomtree

// TreeError is an error type for the zoomtree module.
type TreeError string

func (e TreeError) Error() string {
	return string(e)
}

// ErrInvalidConfig signals an invalid tree configuration.
const ErrInvalidConfig = TreeError("invalid tree configuration")

// ErrNoRange is flagged whenever an operation is called without a usable
// chromosome range.
const ErrNoRange = TreeError("missing or empty chromosome range")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = TreeError("illegal arguments")

// ErrUnsortedData signals that a batch of entries is not sorted by start
// position. Insertion requires sorted input.
const ErrUnsortedData = TreeError("data entries not sorted by start position")

// ErrDataConflict signals that incoming data overlaps a window which the
// same call tries to confirm as empty. This means the caller violated the
// insertion contract: all data overlapping the target range must be present
// in the data queue or already folded into the continuation list.
const ErrDataConflict = TreeError("incoming data contradicts confirmed-empty window")
