package mld

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ttpr0/mldmatrix/graph"
)

func TestQueryHeap_PopsInKeyOrder(t *testing.T) {
	h := NewQueryHeap(10)
	h.Insert(3, 30, HeapData{Parent: graph.SpecialNodeID})
	h.Insert(1, 10, HeapData{Parent: graph.SpecialNodeID})
	h.Insert(2, 20, HeapData{Parent: graph.SpecialNodeID})

	var order []graph.NodeID
	for !h.Empty() {
		n, _, _ := h.DeleteMin()
		order = append(order, n)
	}
	require.Equal(t, []graph.NodeID{1, 2, 3}, order)
}

func TestQueryHeap_DecreaseKeyReordersAndPreservesParent(t *testing.T) {
	h := NewQueryHeap(10)
	h.Insert(1, 100, HeapData{Parent: 9, Duration: 100})
	h.Insert(2, 5, HeapData{Parent: 8, Duration: 5})
	h.DecreaseKey(1, 1, HeapData{Parent: 7, Duration: 1})

	n, key, data := h.DeleteMin()
	require.Equal(t, graph.NodeID(1), n)
	require.EqualValues(t, 1, key)
	require.EqualValues(t, 7, data.Parent)
}

func TestQueryHeap_LabelSurvivesDeleteMin(t *testing.T) {
	h := NewQueryHeap(10)
	h.Insert(5, 42, HeapData{Parent: 4, Duration: 42})
	h.DeleteMin()

	require.True(t, h.WasInserted(5))
	require.EqualValues(t, 42, h.GetKey(5))
	require.EqualValues(t, 4, h.GetData(5).Parent)
}

func TestQueryHeap_WasInsertedFalseForUntouchedNode(t *testing.T) {
	h := NewQueryHeap(10)
	require.False(t, h.WasInserted(3))
}

func TestQueryHeap_ResetClearsOpenSetAndHasBits(t *testing.T) {
	h := NewQueryHeap(10)
	h.Insert(1, 1, HeapData{})
	h.Insert(2, 2, HeapData{})
	h.Reset()

	require.True(t, h.Empty())
	require.False(t, h.WasInserted(1))
	require.False(t, h.WasInserted(2))
}

func TestQueryHeap_TieBrokenByDuration(t *testing.T) {
	h := NewQueryHeap(10)
	h.Insert(1, 10, HeapData{Duration: 5})
	h.Insert(2, 10, HeapData{Duration: 1})

	n, _, _ := h.DeleteMin()
	require.Equal(t, graph.NodeID(2), n)
}
