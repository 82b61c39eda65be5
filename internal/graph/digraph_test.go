package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertRemoveRoundTrip(t *testing.T) {
	g := New(5)
	require.NoError(t, g.InsertArc(0, 1))
	require.True(t, g.IsArc(0, 1))
	require.Equal(t, 1, g.M())

	pos := g.arcPosition(0, 1)
	require.NoError(t, g.RemoveArc(0, 1, pos))
	require.False(t, g.IsArc(0, 1))
	require.Equal(t, 0, g.M())
	require.Empty(t, g.OutNeighbors(0))
	require.Empty(t, g.InNeighbors(1))
}

func TestInsertRejectsSelfLoopAndDuplicate(t *testing.T) {
	g := New(3)
	require.Error(t, g.InsertArc(1, 1))
	require.NoError(t, g.InsertArc(0, 1))
	require.Error(t, g.InsertArc(0, 1))
}

func TestRemoveSwapsWithLastConsistently(t *testing.T) {
	g := New(4)
	require.NoError(t, g.InsertArc(0, 1))
	require.NoError(t, g.InsertArc(0, 2))
	require.NoError(t, g.InsertArc(0, 3))

	// Remove the first-inserted arc; the former last arc (0->3) should be
	// relocated into its slot and the reverse index kept in sync.
	pos := g.arcPosition(0, 1)
	require.NoError(t, g.RemoveArc(0, 1, pos))

	for _, a := range g.Arcs() {
		require.Equal(t, int32(a.Tail), g.Arcs()[g.arcPosition(a.Tail, a.Head)].Tail)
		require.Equal(t, a.Head, g.Arcs()[g.arcPosition(a.Tail, a.Head)].Head)
	}
	require.Equal(t, 2, g.M())
	require.True(t, g.IsArc(0, 2))
	require.True(t, g.IsArc(0, 3))
	require.False(t, g.IsArc(0, 1))
}

func TestRemoveStalePositionRejected(t *testing.T) {
	g := New(3)
	require.NoError(t, g.InsertArc(0, 1))
	require.NoError(t, g.InsertArc(1, 2))
	require.Error(t, g.RemoveArc(0, 1, 1)) // 0->1 is actually at position 0
}

func TestArcListLengthMatchesM(t *testing.T) {
	g := New(10)
	for i := int32(0); i < 9; i++ {
		require.NoError(t, g.InsertArc(i, i+1))
	}
	require.Equal(t, g.M(), len(g.Arcs()))
}

func TestDebugChecksPassesOnWellFormedMutations(t *testing.T) {
	DebugChecks = true
	defer func() { DebugChecks = false }()

	g := New(5)
	require.NoError(t, g.InsertArc(0, 1))
	require.NoError(t, g.InsertArc(1, 2))
	require.NoError(t, g.InsertArc(2, 3))
	pos := g.arcPosition(1, 2)
	require.NoError(t, g.RemoveArc(1, 2, pos))
}
