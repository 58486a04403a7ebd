package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildLine() *MemGraph {
	return NewMemGraph(2, []EdgeSpec{
		{From: 0, To: 1, Forward: true, Backward: false, Weight: 10, Duration: 10, Distance: 100},
	})
}

func TestForAdjacentEdges_OneWay(t *testing.T) {
	g := buildLine()
	var seen []EdgeRef
	g.ForAdjacentEdges(0, func(e EdgeRef) { seen = append(seen, e) })
	require.Len(t, seen, 1)
	require.Equal(t, NodeID(1), seen[0].Target)

	seen = nil
	g.ForAdjacentEdges(1, func(e EdgeRef) { seen = append(seen, e) })
	require.Empty(t, seen)
}

func TestForAdjacentEdges_TwoWay(t *testing.T) {
	g := NewMemGraph(2, []EdgeSpec{
		{From: 0, To: 1, Forward: true, Backward: true, Weight: 7, Duration: 7, Distance: 70},
	})
	var fromZero, fromOne []EdgeRef
	g.ForAdjacentEdges(0, func(e EdgeRef) { fromZero = append(fromZero, e) })
	g.ForAdjacentEdges(1, func(e EdgeRef) { fromOne = append(fromOne, e) })
	require.Len(t, fromZero, 1)
	require.Len(t, fromOne, 1)
	require.Equal(t, NodeID(1), fromZero[0].Target)
	require.Equal(t, NodeID(0), fromOne[0].Target)
	require.True(t, fromZero[0].Enabled(FORWARD))
	require.False(t, fromOne[0].Enabled(FORWARD))
	require.True(t, fromOne[0].Enabled(BACKWARD))
}

func TestForBorderEdges_LevelZeroIsFullAdjacency(t *testing.T) {
	g := buildLine()
	var viaBorder, viaAdjacent []EdgeRef
	g.ForBorderEdges(0, 0, func(e EdgeRef) { viaBorder = append(viaBorder, e) })
	g.ForAdjacentEdges(0, func(e EdgeRef) { viaAdjacent = append(viaAdjacent, e) })
	require.Equal(t, viaAdjacent, viaBorder)
}

func TestForBorderEdges_FiltersByCell(t *testing.T) {
	g := NewMemGraph(3, []EdgeSpec{
		{From: 0, To: 1, Forward: true, Backward: true, Weight: 1, Duration: 1},
		{From: 1, To: 2, Forward: true, Backward: true, Weight: 1, Duration: 1},
	})
	cellOf := map[NodeID]int32{0: 0, 1: 0, 2: 1}
	g.SetCellLookup(func(level int32, node NodeID) int32 { return cellOf[node] })

	var crossing []EdgeRef
	g.ForBorderEdges(1, 1, func(e EdgeRef) { crossing = append(crossing, e) })
	require.Len(t, crossing, 1)
	require.Equal(t, NodeID(2), crossing[0].Target)
}

func TestExcludeNode(t *testing.T) {
	g := buildLine()
	require.False(t, g.ExcludeNode(0))
	g.SetExcluded(0)
	require.True(t, g.ExcludeNode(0))
}

func TestEdgeDistance(t *testing.T) {
	g := buildLine()
	require.InDelta(t, 100.0, g.EdgeDistance(0), 1e-9)
}

func TestMaxBorderNodeID(t *testing.T) {
	g := NewMemGraph(5, nil)
	require.EqualValues(t, 4, g.MaxBorderNodeID())
	require.EqualValues(t, 5, g.NodeCount())
}
