package sampler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gilchrisn/ergm-estimnet/internal/changestat"
	"github.com/gilchrisn/ergm-estimnet/internal/graph"
	"github.com/gilchrisn/ergm-estimnet/internal/rng"
)

func TestTNTEmptyGraphOnlyProposesAdds(t *testing.T) {
	g, ctx := newTestContext(5)
	sel := changestat.Selection{{Kind: changestat.Arc}}
	theta := []float64{0.0}
	rs := rng.New(10, 0)

	res, err := TNT(g, ctx, theta, sel, 50, Flags{PerformMove: false}, rs)
	require.NoError(t, err)
	// The dry run keeps the graph empty, and an empty graph has no arc to
	// delete, so TNT must always fall back to an add; no accepted move can
	// ever have been a delete, so the delete accumulator stays exactly zero
	// regardless of which adds were accepted.
	for _, v := range res.DelChangeStats {
		require.Zero(t, v)
	}
}

func TestTNTCompleteGraphOnlyProposesDeletes(t *testing.T) {
	n := 4
	g := graph.New(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				require.NoError(t, g.InsertArc(int32(i), int32(j)))
			}
		}
	}
	ctx := &changestat.Context{G: g, Lambda: 2.0}
	sel := changestat.Selection{{Kind: changestat.Arc}}
	theta := []float64{0.0}
	rs := rng.New(11, 0)

	res, err := TNT(g, ctx, theta, sel, 50, Flags{PerformMove: false}, rs)
	require.NoError(t, err)
	// The dry run restores every delete, so the graph stays complete, and a
	// complete graph has no free dyad to add to, so TNT must always fall
	// back to a delete; no accepted move can ever have been an add, so the
	// add accumulator stays exactly zero regardless of which deletes were
	// accepted.
	for _, v := range res.AddChangeStats {
		require.Zero(t, v)
	}
}

func TestTNTDryRunLeavesGraphUnchanged(t *testing.T) {
	g, ctx := newTestContext(6)
	require.NoError(t, g.InsertArc(0, 1))
	require.NoError(t, g.InsertArc(2, 3))
	sel := changestat.Selection{{Kind: changestat.Arc}}
	theta := []float64{0.0}
	rs := rng.New(12, 0)

	before := g.M()
	_, err := TNT(g, ctx, theta, sel, 100, Flags{PerformMove: false}, rs)
	require.NoError(t, err)
	require.Equal(t, before, g.M())
}

func TestTNTForbidReciprocityInvariant(t *testing.T) {
	g, ctx := newTestContext(5)
	sel := changestat.Selection{{Kind: changestat.Arc}}
	theta := []float64{3.0}
	rs := rng.New(13, 0)

	_, err := TNT(g, ctx, theta, sel, 400, Flags{PerformMove: true, ForbidReciprocity: true}, rs)
	require.NoError(t, err)

	for _, arc := range g.Arcs() {
		require.False(t, g.IsArc(arc.Head, arc.Tail))
	}
}

func TestTNTConditionalEstimationRespectsZoneAdjacency(t *testing.T) {
	// 6 nodes: zones 0,0,1,1,2,2; max_zone = 3, so every node is inner and
	// the zone-adjacency / prev-wave-degree rules are exercised across all
	// three waves.
	zone := []int32{0, 0, 1, 1, 2, 2}
	g := graph.New(6)
	g.Zones = graph.NewZoneInfo(zone, 3)
	require.NoError(t, g.InsertInnerArc(0, 2))
	require.NoError(t, g.InsertInnerArc(1, 2))
	require.NoError(t, g.InsertInnerArc(2, 4))

	ctx := &changestat.Context{G: g, Lambda: 2.0}
	sel := changestat.Selection{{Kind: changestat.Arc}}
	theta := []float64{3.0}
	rs := rng.New(14, 0)

	_, err := TNT(g, ctx, theta, sel, 200, Flags{PerformMove: true, UseConditionalEstimation: true}, rs)
	require.NoError(t, err)

	for _, arc := range g.Zones.AllInnerArcs {
		d := g.Zones.Zone[arc.Tail] - g.Zones.Zone[arc.Head]
		require.True(t, d >= -1 && d <= 1, "inner arc %d->%d skips a wave", arc.Tail, arc.Head)
	}
}

func TestTNTHastingsCorrectionRunsWithoutError(t *testing.T) {
	g, ctx := newTestContext(8)
	sel := changestat.Selection{{Kind: changestat.Arc}}
	theta := []float64{-0.5}
	rs := rng.New(16, 0)

	res, err := TNT(g, ctx, theta, sel, 300, Flags{PerformMove: true, TNTHastingsCorrection: true}, rs)
	require.NoError(t, err)
	require.GreaterOrEqual(t, res.AcceptanceRate, 0.0)
	require.LessOrEqual(t, res.AcceptanceRate, 1.0)
}

func TestTNTConditionalEstimationForbidsReciprocityError(t *testing.T) {
	g, ctx := newTestContext(4)
	g.Zones = graph.NewZoneInfo([]int32{0, 0, 1, 1}, 1)
	sel := changestat.Selection{{Kind: changestat.Arc}}
	theta := []float64{0.0}
	rs := rng.New(15, 0)

	_, err := TNT(g, ctx, theta, sel, 10, Flags{UseConditionalEstimation: true, ForbidReciprocity: true}, rs)
	require.Error(t, err)
}
