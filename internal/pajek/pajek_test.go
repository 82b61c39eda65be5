package pajek

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gilchrisn/ergm-estimnet/internal/graph"
)

func TestReadParsesVerticesAndArcs(t *testing.T) {
	src := `*vertices 3
1 "alice"
2 "bob"
3 "carol"
*arcs
1 2
2 3
3 1
`
	g, err := Read(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 3, g.G.N())
	require.Equal(t, 3, g.G.M())
	require.True(t, g.G.IsArc(0, 1))
	require.True(t, g.G.IsArc(1, 2))
	require.True(t, g.G.IsArc(2, 0))
	require.Equal(t, []string{"alice", "bob", "carol"}, g.Labels)
}

func TestReadWithoutLabels(t *testing.T) {
	src := "*vertices 2\n*arcs\n1 2\n"
	g, err := Read(strings.NewReader(src))
	require.NoError(t, err)
	require.Nil(t, g.Labels)
	require.True(t, g.G.IsArc(0, 1))
}

func TestReadRejectsOutOfRangeArc(t *testing.T) {
	src := "*vertices 2\n*arcs\n1 5\n"
	_, err := Read(strings.NewReader(src))
	require.Error(t, err)
	require.ErrorIs(t, err, graph.ErrInput)
}

func TestReadRejectsMissingVerticesHeader(t *testing.T) {
	src := "*arcs\n1 2\n"
	_, err := Read(strings.NewReader(src))
	require.Error(t, err)
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	g := graph.New(4)
	require.NoError(t, g.InsertArc(0, 1))
	require.NoError(t, g.InsertArc(1, 2))
	require.NoError(t, g.InsertArc(2, 3))
	require.NoError(t, g.InsertArc(3, 0))

	var buf strings.Builder
	require.NoError(t, Write(&buf, g, nil))

	reloaded, err := Read(strings.NewReader(buf.String()))
	require.NoError(t, err)
	require.Equal(t, g.N(), reloaded.G.N())
	require.Equal(t, g.M(), reloaded.G.M())
	for _, arc := range g.Arcs() {
		require.True(t, reloaded.G.IsArc(arc.Tail, arc.Head))
	}
}
