package twopath

import "github.com/gilchrisn/ergm-estimnet/internal/graph"

// Disabled computes two-path contributions on demand by intersecting
// neighbor lists, per SPEC_FULL.md §3's third mode. It stores nothing and
// has no methods, so it does not implement Index; callers use a nil Index
// and call QueryLive(rel, g, i, j) directly, since a live count needs the
// graph, which Index.Query's signature does not carry.
type Disabled struct{}

// QueryLive computes the two-path count for (i,j) by intersecting the
// appropriate neighbor lists of g, with no stored state.
func QueryLive(rel Relation, g *graph.Digraph, i, j int32) int32 {
	switch rel {
	case Mixed:
		return intersectCount(g.OutNeighbors(i), g.InNeighbors(j))
	case In:
		return intersectCount(g.InNeighbors(i), g.InNeighbors(j))
	default:
		return intersectCount(g.OutNeighbors(i), g.OutNeighbors(j))
	}
}

// intersectCount counts shared elements between two small neighbor slices
// by building a set from a and probing it with b. Directed ERGM graphs are
// sparse, so both slices are small and the map overhead is cheap in
// practice.
func intersectCount(a, b []int32) int32 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[int32]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	var count int32
	for _, v := range b {
		if _, ok := set[v]; ok {
			count++
		}
	}
	return count
}
