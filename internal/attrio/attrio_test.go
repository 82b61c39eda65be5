package attrio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gilchrisn/ergm-estimnet/internal/graph"
)

func TestReadBinaryParsesValuesAndMissing(t *testing.T) {
	src := "sex smoker\n0 1\n1 NA\n1 0\n"
	attrs := graph.NewAttributes()
	require.NoError(t, ReadBinary(strings.NewReader(src), 3, attrs))

	require.Equal(t, []int32{0, 1, 1}, attrs.Binary["sex"])
	require.Equal(t, int32(1), attrs.Binary["smoker"][0])
	require.True(t, attrs.BinaryMissing("smoker", 1))
	require.False(t, attrs.BinaryMissing("sex", 1))
}

func TestReadContinuousMissingIsNaN(t *testing.T) {
	src := "age\n20.5\nNA\n31\n"
	attrs := graph.NewAttributes()
	require.NoError(t, ReadContinuous(strings.NewReader(src), 3, attrs))

	require.InDelta(t, 20.5, attrs.Continuous["age"][0], 1e-12)
	require.True(t, attrs.ContinuousMissing("age", 1))
	require.InDelta(t, 31.0, attrs.Continuous["age"][2], 1e-12)
}

func TestReadCategoricalRejectsNonInteger(t *testing.T) {
	src := "group\nred\n"
	attrs := graph.NewAttributes()
	err := ReadCategorical(strings.NewReader(src), 1, attrs)
	require.Error(t, err)
	require.ErrorIs(t, err, graph.ErrInput)
}

func TestReadSetValuedParsesCommaLists(t *testing.T) {
	src := "tags\n1,2,3\nNA\n4\n"
	attrs := graph.NewAttributes()
	require.NoError(t, ReadSetValued(strings.NewReader(src), 3, attrs))

	require.Equal(t, []int32{1, 2, 3}, attrs.SetValued["tags"][0])
	require.True(t, attrs.SetMissing("tags", 1))
	require.True(t, attrs.SetContains("tags", 0, 2))
	require.False(t, attrs.SetContains("tags", 2, 2))
}

func TestReadZonesParsesMaxZoneAndAssignments(t *testing.T) {
	src := "2\n0\n0\n1\n1\n2\n2\n"
	zone, maxZone, err := ReadZones(strings.NewReader(src), 6)
	require.NoError(t, err)
	require.Equal(t, int32(2), maxZone)
	require.Equal(t, []int32{0, 0, 1, 1, 2, 2}, zone)
}

func TestReadZonesRejectsCountMismatch(t *testing.T) {
	src := "1\n0\n1\n"
	_, _, err := ReadZones(strings.NewReader(src), 5)
	require.Error(t, err)
}

func TestReadTableRejectsRowCountMismatch(t *testing.T) {
	src := "age\n20\n21\n"
	attrs := graph.NewAttributes()
	err := ReadContinuous(strings.NewReader(src), 3, attrs)
	require.Error(t, err)
}
