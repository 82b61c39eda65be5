package twopath

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gilchrisn/ergm-estimnet/internal/graph"
)

func buildStar(t *testing.T) *graph.Digraph {
	t.Helper()
	g := graph.New(4)
	require.NoError(t, g.InsertArc(0, 1))
	require.NoError(t, g.InsertArc(0, 2))
	require.NoError(t, g.InsertArc(0, 3))
	return g
}

func TestDenseMatchesLiveQuery(t *testing.T) {
	g := buildStar(t)
	dense := NewDense(g.N())
	for _, a := range g.Arcs() {
		OnArcToggled(dense, g, a.Tail, a.Head, 1)
	}

	for i := int32(0); i < 4; i++ {
		for j := int32(0); j < 4; j++ {
			if i == j {
				continue
			}
			require.Equal(t, QueryLive(Mixed, g, i, j), dense.Query(Mixed, i, j), "mixed %d,%d", i, j)
			require.Equal(t, QueryLive(In, g, i, j), dense.Query(In, i, j), "in %d,%d", i, j)
			require.Equal(t, QueryLive(Out, g, i, j), dense.Query(Out, i, j), "out %d,%d", i, j)
		}
	}
}

func TestSparsePurgesZeroEntries(t *testing.T) {
	g := buildStar(t)
	sp := NewSparse()
	for _, a := range g.Arcs() {
		OnArcToggled(sp, g, a.Tail, a.Head, 1)
	}
	require.NotZero(t, sp.Query(Out, 1, 2))

	// Removing 0->1 should zero out the shared-out-neighbor relation
	// between 1 and 2 and purge the backing map entries.
	require.NoError(t, g.RemoveArc(0, 1, g.ArcPosition(0, 1)))
	OnArcToggled(sp, g, 0, 1, -1)
	require.Zero(t, sp.Query(Out, 1, 2))
	require.Zero(t, sp.Query(Out, 2, 1))
	_, present := sp.outRel[sparseKey(1, 2)]
	require.False(t, present)
}

func TestRecomputeMatchesIncrementalMaintenance(t *testing.T) {
	g := graph.New(6)
	arcs := [][2]int32{{0, 1}, {1, 2}, {2, 0}, {0, 3}, {3, 4}, {4, 0}, {2, 4}}
	sp := NewSparse()
	for _, a := range arcs {
		require.NoError(t, g.InsertArc(a[0], a[1]))
		OnArcToggled(sp, g, a[0], a[1], 1)
	}

	fresh := Recompute(g)
	for i := int32(0); i < 6; i++ {
		for j := int32(0); j < 6; j++ {
			if i == j {
				continue
			}
			require.Equal(t, fresh.Query(Mixed, i, j), sp.Query(Mixed, i, j), "mixed %d,%d", i, j)
			require.Equal(t, fresh.Query(In, i, j), sp.Query(In, i, j), "in %d,%d", i, j)
			require.Equal(t, fresh.Query(Out, i, j), sp.Query(Out, i, j), "out %d,%d", i, j)
		}
	}
}
