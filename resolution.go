package zoomtree

// Resolution arithmetic on the geometric tier ladder. A tier's resolution
// is the coordinate span one of its summary units represents:
//
//	resolution(d) = leafScalingFactor · scalingFactor^d
//
// for reverse depth d ≥ 0. All functions work on exact integers; the
// ladder is precomputed once per tree so hot paths never exponentiate.

// roundMode selects how fitToBin snaps a coordinate to a bin boundary.
type roundMode uint8

const (
	roundDown    roundMode = iota // lower bin boundary
	roundUp                       // upper bin boundary
	roundNearest                  // boundary closest to the coordinate
)

// fitToBin snaps a non-negative coordinate to a boundary of the grid with
// the given bin size.
func fitToBin(coord, binSize int64, mode roundMode) int64 {
	assert(binSize > 0, "fitToBin requires a positive bin size")
	assert(coord >= 0, "fitToBin requires a non-negative coordinate")
	switch mode {
	case roundUp:
		return (coord + binSize - 1) / binSize * binSize
	case roundNearest:
		return (coord + binSize/2) / binSize * binSize
	default:
		return coord / binSize * binSize
	}
}

// resolutionEnough reports whether an available resolution satisfies a
// requested one. Smaller is finer; equality suffices.
func resolutionEnough(have, need int64) bool {
	return have <= need
}

// resolutionAt returns the resolution of the tier at the given reverse
// depth; strictly increasing in revDepth.
func (t *Tree[S]) resolutionAt(revDepth int) int64 {
	assert(revDepth >= 0 && revDepth < len(t.ladder), "reverse depth outside tier ladder")
	return t.ladder[revDepth]
}

// tierFor returns the lowest reverse depth whose resolution covers span,
// i.e. ceil(log_scalingFactor(span / leafScalingFactor)) clamped at 0.
func (cfg Config[S]) tierFor(span int64) int {
	if span <= cfg.LeafScalingFactor {
		return 0
	}
	tier := 0
	res := cfg.LeafScalingFactor
	for res < span {
		res *= cfg.ScalingFactor
		tier++
	}
	return tier
}

// buildLadder precomputes tier resolutions up to and including revDepth.
func (cfg Config[S]) buildLadder(revDepth int) []int64 {
	ladder := make([]int64, revDepth+1)
	res := cfg.LeafScalingFactor
	for d := 0; d <= revDepth; d++ {
		ladder[d] = res
		res *= cfg.ScalingFactor
	}
	return ladder
}

// ClosestResolution returns the largest ladder resolution that is at most
// the requested one, or 1 (raw, unbinned data) if the request is finer
// than the finest tier. This is the resolution a caller should actually
// fetch to satisfy a request. Requests coarser than the whole-tree tier
// are capped at it.
func (t *Tree[S]) ClosestResolution(requested int64) int64 {
	if requested < t.cfg.LeafScalingFactor {
		return 1
	}
	res := t.cfg.LeafScalingFactor
	top := t.ladder[len(t.ladder)-1]
	for res*t.cfg.ScalingFactor <= requested && res < top {
		res *= t.cfg.ScalingFactor
	}
	return res
}
