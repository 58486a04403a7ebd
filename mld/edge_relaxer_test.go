package mld

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ttpr0/mldmatrix/graph"
	"github.com/ttpr0/mldmatrix/metric"
	"github.com/ttpr0/mldmatrix/partition"
	. "github.com/ttpr0/mldmatrix/util"
)

// twoSupercellPartition gives nodes 0 and 2 a highest-different-level
// of 1: they sit in different level-1 supercells ({0,1} and {2,3}),
// which by nesting also puts them in different level-0 cells, but the
// descending scan finds the coarser difference first.
func twoSupercellPartition() *partition.MultiLevelPartition {
	return partition.NewMultiLevelPartition(Array[Array[int32]]{
		Array[int32]{0, 1, 2, 3},
		Array[int32]{0, 0, 1, 1},
		Array[int32]{0, 0, 0, 0},
	})
}

func TestEdgeRelaxer_UsesShortcutAtResolvedLevel(t *testing.T) {
	part := twoSupercellPartition()
	g := graph.NewMemGraph(4, []graph.EdgeSpec{
		{From: 1, To: 2, Forward: true, Backward: true, Weight: 3, Duration: 3},
	})
	g.SetCellLookup(part.Cell)

	cm := metric.NewCellMetric()
	// level-1 cell 0 (supercell {0,1})'s boundary-to-boundary table: a
	// precomputed shortcut from 0 straight to 1 that does not exist as
	// a direct base edge at all.
	cm.AddCell(1, 0, Array[graph.NodeID]{0, 1}, Array[Array[int32]]{
		{metric.InvalidEdgeWeight, 8},
		{8, metric.InvalidEdgeWeight},
	}, Array[Array[int32]]{
		{0, 80},
		{80, 0},
	})

	relaxer := NewEdgeRelaxer(g, part, cm)
	heap := NewQueryHeap(g.MaxBorderNodeID())

	relaxer.Relax(1, 0, 0, 0, false, graph.FORWARD, heap)

	require.True(t, heap.WasInserted(1))
	require.EqualValues(t, 8, heap.GetKey(1))
	require.EqualValues(t, 80, heap.GetData(1).Duration)
	require.True(t, heap.GetData(1).FromShortcut)
}

func TestEdgeRelaxer_NoShortcutAfterShortcut(t *testing.T) {
	part := twoSupercellPartition()
	g := graph.NewMemGraph(4, nil)
	g.SetCellLookup(part.Cell)

	cm := metric.NewCellMetric()
	cm.AddCell(1, 0, Array[graph.NodeID]{0, 1}, Array[Array[int32]]{
		{metric.InvalidEdgeWeight, 8},
		{8, metric.InvalidEdgeWeight},
	}, Array[Array[int32]]{
		{0, 80},
		{80, 0},
	})

	relaxer := NewEdgeRelaxer(g, part, cm)
	heap := NewQueryHeap(g.MaxBorderNodeID())

	// fromShortcut=true disables the shortcut branch: no two shortcuts
	// in a row, since the overlay already encodes transitive
	// reachability within the cell.
	relaxer.Relax(1, 0, 0, 0, true, graph.FORWARD, heap)
	require.False(t, heap.WasInserted(1))
}

func TestEdgeRelaxer_InvalidLevelIsNoop(t *testing.T) {
	part := twoSupercellPartition()
	g := graph.NewMemGraph(4, []graph.EdgeSpec{
		{From: 0, To: 1, Forward: true, Weight: 1, Duration: 1},
	})
	cm := metric.NewCellMetric()
	relaxer := NewEdgeRelaxer(g, part, cm)
	heap := NewQueryHeap(g.MaxBorderNodeID())

	relaxer.Relax(partition.InvalidLevel, 0, 0, 0, false, graph.FORWARD, heap)
	require.False(t, heap.WasInserted(1))
}
