// Package twopath implements the optional two-path accelerator described in
// SPEC_FULL.md §4.2/§12.2: three relations (Mixed, In, Out) over ordered
// node pairs, counting paths through a shared third node k. Two stored
// back-ends (Dense, Sparse) implement the Index interface; the third,
// disabled mode is a nil Index with counts computed by QueryLive. The
// mode is selected at graph construction time (SPEC_FULL.md §9's "runtime
// strategy selection").
package twopath

import "github.com/gilchrisn/ergm-estimnet/internal/graph"

// Relation names the three two-path orientations.
type Relation int

const (
	// Mixed(i,j) counts k such that i->k and k->j (a directed path i->k->j).
	Mixed Relation = iota
	// In(i,j) counts k such that k->i and k->j (a shared in-neighbor); symmetric in i,j.
	In
	// Out(i,j) counts k such that i->k and j->k (a shared out-neighbor); symmetric in i,j.
	Out
)

// Index is the common interface the change-statistic library consults,
// per SPEC_FULL.md §9: "query(relation, i, j) -> integer and
// update(relation, i, j, delta)".
type Index interface {
	Query(rel Relation, i, j int32) int32
	Update(rel Relation, i, j int32, delta int32)
}

// OnArcToggled applies the fixed update pattern from SPEC_FULL.md §4.2 to
// idx: cells (i,k), (k,i), (k,j), (j,k) that change when arc i->j is
// toggled. Call with sign=+1 after InsertArc, or sign=-1 after RemoveArc;
// g must already reflect the toggle (the k==i / k==j self-matches below
// make the result correct either way).
func OnArcToggled(idx Index, g *graph.Digraph, i, j int32, sign int32) {
	if idx == nil {
		return
	}
	// k->i->j paths: adding/removing i->j changes Mixed(k, j) for every k
	// that points into i.
	for _, k := range g.InNeighbors(i) {
		if k == j {
			continue
		}
		idx.Update(Mixed, k, j, sign)
	}
	// i->j->k paths: Mixed(i, k) for every k that j points to.
	for _, k := range g.OutNeighbors(j) {
		if k == i {
			continue
		}
		idx.Update(Mixed, i, k, sign)
	}
	// i is now (or was) a shared in-neighbor of j and every other node i
	// points to.
	for _, k := range g.OutNeighbors(i) {
		if k == j {
			continue
		}
		idx.Update(In, j, k, sign)
		idx.Update(In, k, j, sign)
	}
	// j is now (or was) a shared out-neighbor of i and every other node
	// that points to j.
	for _, k := range g.InNeighbors(j) {
		if k == i {
			continue
		}
		idx.Update(Out, i, k, sign)
		idx.Update(Out, k, i, sign)
	}
}

// Recompute rebuilds a Dense index from scratch by brute-force neighbor
// intersection for every ordered pair; used only by the test-only
// consistency assertion in SPEC_FULL.md §4.2 ("A test-only assertion may
// recompute the index from scratch and compare").
func Recompute(g *graph.Digraph) *Dense {
	d := NewDense(g.N())
	n := int32(g.N())
	for i := int32(0); i < n; i++ {
		for j := int32(0); j < n; j++ {
			if i == j {
				continue
			}
			if c := QueryLive(Mixed, g, i, j); c != 0 {
				d.Update(Mixed, i, j, c)
			}
			if c := QueryLive(In, g, i, j); c != 0 {
				d.Update(In, i, j, c)
			}
			if c := QueryLive(Out, g, i, j); c != 0 {
				d.Update(Out, i, j, c)
			}
		}
	}
	return d
}
