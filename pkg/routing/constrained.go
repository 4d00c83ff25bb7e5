package routing

// ConstrainedShortestPath computes the shortest path origin -> checkpoint ->
// destination as the concatenation of two unconstrained segments. The
// checkpoint node appears exactly once at the seam. found is false when
// either segment has no path.
func (rt *RouteAlgorithm) ConstrainedShortestPath(origin, checkpoint, dest int32) (float64, []int32, bool) {
	dist1, path1, ok := rt.ShortestPath(origin, checkpoint)
	if !ok {
		return 0, nil, false
	}
	dist2, path2, ok := rt.ShortestPath(checkpoint, dest)
	if !ok {
		return 0, nil, false
	}

	combined := make([]int32, 0, len(path1)+len(path2)-1)
	combined = append(combined, path1...)
	combined = append(combined, path2[1:]...)

	return dist1 + dist2, combined, true
}

// PassesInterior reports whether checkpoint is strictly interior to path
// (not the first or last node). First occurrence only.
func PassesInterior(path []int32, checkpoint int32) bool {
	for i, n := range path {
		if n == checkpoint {
			return i > 0 && i < len(path)-1
		}
	}
	return false
}
