package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZoneInfoLastTieToPreviousWaveBlocksDelete(t *testing.T) {
	// node 2 is the only inner-wave neighbor of node 5 (zone 1), so removing
	// that single arc would drop PrevWaveDegree[5] to zero and must be
	// forbidden.
	zone := []int32{0, 0, 0, 1, 1, 1}
	z := NewZoneInfo(zone, 2)
	g := New(6)
	g.Zones = z

	require.NoError(t, g.InsertInnerArc(2, 5))
	require.Equal(t, int32(1), z.PrevWaveDegree[5])
	require.False(t, z.CanDeleteInnerArc(2, 5))

	require.NoError(t, g.InsertInnerArc(1, 5))
	require.Equal(t, int32(2), z.PrevWaveDegree[5])
	require.True(t, z.CanDeleteInnerArc(2, 5))
}

func TestZoneInfoAdjacencyConstraint(t *testing.T) {
	zone := []int32{0, 1, 2}
	z := NewZoneInfo(zone, 5)
	require.True(t, z.CanAddInnerArc(0, 1))
	require.False(t, z.CanAddInnerArc(0, 2))
}

func TestInsertRemoveInnerArcRoundTrip(t *testing.T) {
	zone := []int32{0, 0, 1}
	z := NewZoneInfo(zone, 5)
	g := New(3)
	g.Zones = z

	require.NoError(t, g.InsertInnerArc(0, 2))
	require.NoError(t, g.InsertInnerArc(1, 2))
	require.Equal(t, 2, z.NumInnerArcs())

	require.NoError(t, g.RemoveInnerArc(0, 2, z.arcIndex[pack(0, 2)]))
	require.Equal(t, 1, z.NumInnerArcs())
	require.False(t, g.IsArc(0, 2))
	require.Equal(t, int32(1), z.PrevWaveDegree[2])
}

func TestBuildZoneInfoFromExistingArcsMatchesIncrementalInsert(t *testing.T) {
	zone := []int32{0, 0, 1, 2}
	g := New(4)
	require.NoError(t, g.InsertArc(0, 2))
	require.NoError(t, g.InsertArc(1, 2))
	require.NoError(t, g.InsertArc(2, 3)) // zone[3]=2=maxZone, excluded
	require.NoError(t, g.InsertArc(0, 1)) // same-zone arc, not counted by PrevWaveDegree

	z := BuildZoneInfo(g, zone, 2)
	g.Zones = z
	require.Equal(t, 3, z.NumInnerArcs())
	require.Equal(t, int32(2), z.PrevWaveDegree[2])

	pos := z.InnerArcPosition(0, 2)
	require.GreaterOrEqual(t, pos, int32(0))
	require.NoError(t, g.RemoveInnerArc(0, 2, pos))
	require.Equal(t, 2, z.NumInnerArcs())
}
